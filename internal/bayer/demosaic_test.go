// SPDX-License-Identifier: Unlicense OR MIT

package bayer

import (
	"bytes"
	"testing"
)

var testFrame = []byte{
	10, 20, 30, 40,
	50, 60, 70, 80,
	90, 100, 110, 120,
	130, 140, 150, 160,
}

var testGeom = Geometry{Width: 4, Height: 4}

func TestDemosaicSize(t *testing.T) {
	out, err := Demosaic(testFrame, testGeom, RGGB)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(out), 4*len(testFrame); got != want {
		t.Fatalf("output is %d bytes, want %d", got, want)
	}
	for i := 3; i < len(out); i += 4 {
		if out[i] != 0xff {
			t.Fatalf("pixel %d has alpha %#x, want 0xff", i/4, out[i])
		}
	}
}

func TestDemosaicSizeMismatch(t *testing.T) {
	if _, err := Demosaic(testFrame[:15], testGeom, RGGB); err == nil {
		t.Error("short input accepted")
	}
	if _, err := Demosaic(append([]byte{0}, testFrame...), testGeom, RGGB); err == nil {
		t.Error("long input accepted")
	}
}

// rgbaAt returns the interpolated pixel at (x, y).
func rgbaAt(t *testing.T, order Order, x, y int) [4]byte {
	t.Helper()
	out, err := Demosaic(testFrame, testGeom, order)
	if err != nil {
		t.Fatal(err)
	}
	o := 4 * (y*testGeom.Width + x)
	return [4]byte{out[o], out[o+1], out[o+2], out[o+3]}
}

func TestDemosaicInterpolation(t *testing.T) {
	// RGGB corner (0, 0) is a red site with clamped neighbors:
	// G = (10+20+10+50+2)/4, B = (10+20+50+60+2)/4.
	if got, want := rgbaAt(t, RGGB, 0, 0), [4]byte{10, 23, 35, 255}; got != want {
		t.Errorf("RGGB (0,0) = %v, want %v", got, want)
	}
	// (1, 1) is a blue site with full diagonals; both averages
	// happen to land on 60.
	if got, want := rgbaAt(t, RGGB, 1, 1), [4]byte{60, 60, 60, 255}; got != want {
		t.Errorf("RGGB (1,1) = %v, want %v", got, want)
	}
	// (2, 1) is a green site on a blue row.
	if got, want := rgbaAt(t, RGGB, 2, 1), [4]byte{70, 70, 70, 255}; got != want {
		t.Errorf("RGGB (2,1) = %v, want %v", got, want)
	}
}

func TestDemosaicOrders(t *testing.T) {
	// The same corner interpreted under each CFA order. BGGR swaps
	// the red and blue roles of RGGB; GRBG/GBRG make it a green
	// site with row/column neighbors swapped.
	for _, tc := range []struct {
		order Order
		want  [4]byte
	}{
		{RGGB, [4]byte{10, 23, 35, 255}},
		{BGGR, [4]byte{35, 23, 10, 255}},
		{GRBG, [4]byte{15, 10, 30, 255}},
		{GBRG, [4]byte{30, 10, 15, 255}},
	} {
		if got := rgbaAt(t, tc.order, 0, 0); got != tc.want {
			t.Errorf("%v (0,0) = %v, want %v", tc.order, got, tc.want)
		}
	}
}

func TestDemosaicUniform(t *testing.T) {
	// A uniform sensor frame demosaics to the same uniform gray for
	// every CFA order; all interpolation averages collapse.
	raw := bytes.Repeat([]byte{0x77}, testGeom.Pixels())
	for _, order := range []Order{RGGB, BGGR, GRBG, GBRG} {
		out, err := Demosaic(raw, testGeom, order)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range out {
			want := byte(0x77)
			if i%4 == 3 {
				want = 0xff
			}
			if v != want {
				t.Fatalf("%v: byte %d = %#x, want %#x", order, i, v, want)
			}
		}
	}
}
