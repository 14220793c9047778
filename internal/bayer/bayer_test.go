// SPDX-License-Identifier: Unlicense OR MIT

package bayer

import (
	"strings"
	"testing"
)

func TestParseOrder(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Order
	}{
		{"rggb", RGGB},
		{"RGGB", RGGB},
		{"bggr", BGGR},
		{"GrBg", GRBG},
		{"gbrg", GBRG},
	} {
		got, err := ParseOrder(tc.in)
		if err != nil {
			t.Errorf("ParseOrder(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseOrder(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "rgbg", "bayer", "rggb "} {
		if _, err := ParseOrder(bad); err == nil {
			t.Errorf("ParseOrder(%q) did not fail", bad)
		}
	}
}

func TestParseGeometry(t *testing.T) {
	g, err := ParseGeometry("1920x1080")
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 1920 || g.Height != 1080 {
		t.Errorf("got %v, want 1920x1080", g)
	}
	for _, bad := range []string{"", "1920", "x1080", "0x1080", "1920x-2", "axb"} {
		if _, err := ParseGeometry(bad); err == nil {
			t.Errorf("ParseGeometry(%q) did not fail", bad)
		}
	}
}

func TestGeometryValidate(t *testing.T) {
	g := Geometry{Width: 64, Height: 48}
	wg := Workgroup{X: 32, Y: 8}
	if err := g.Validate(64*48, wg); err != nil {
		t.Errorf("valid frame rejected: %v", err)
	}
	if err := g.Validate(64*48-1, wg); err == nil {
		t.Error("short input accepted")
	}
	if err := g.Validate(64*48, Workgroup{X: 60, Y: 8}); err == nil {
		t.Error("non-divisible workgroup accepted")
	}
	if err := g.Validate(64*48, Workgroup{X: 0, Y: 8}); err == nil {
		t.Error("zero workgroup accepted")
	}
}

func TestShaderSource(t *testing.T) {
	src := ShaderSource(Geometry{Width: 1920, Height: 1080}, GRBG, Workgroup{X: 32, Y: 8})
	if !strings.HasPrefix(src, "#version 310 es\n") {
		t.Errorf("source does not start with a #version directive:\n%.80s", src)
	}
	for _, want := range []string{
		"#define WIDTH 1920",
		"#define HEIGHT 1080",
		"#define X_OFFSET 1",
		"#define Y_OFFSET 0",
		"#define LOCAL_X 32",
		"#define LOCAL_Y 8",
		"binding = 0",
		"binding = 1",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source is missing %q", want)
		}
	}
}
