// SPDX-License-Identifier: Unlicense OR MIT

// Package bayer describes 8-bit Bayer-pattern sensor frames: the CFA
// order, the frame geometry, and the demosaic that expands them to
// RGBA.
package bayer

import (
	"fmt"
	"strings"
)

// Order is the 2x2 color filter array layout of a sensor frame.
type Order int

const (
	RGGB Order = iota
	BGGR
	GRBG
	GBRG
)

// ParseOrder maps a CFA order name to its Order. Names are
// case-insensitive.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "rggb":
		return RGGB, nil
	case "bggr":
		return BGGR, nil
	case "grbg":
		return GRBG, nil
	case "gbrg":
		return GBRG, nil
	default:
		return 0, fmt.Errorf("bayer: unknown CFA order %q (want rggb, bggr, grbg or gbrg)", s)
	}
}

func (o Order) String() string {
	switch o {
	case RGGB:
		return "rggb"
	case BGGR:
		return "bggr"
	case GRBG:
		return "grbg"
	case GBRG:
		return "gbrg"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// offsets translates the order into column and row offsets relative to
// an RGGB tile.
func (o Order) offsets() (x, y int) {
	switch o {
	case RGGB:
		return 0, 0
	case GRBG:
		return 1, 0
	case GBRG:
		return 0, 1
	case BGGR:
		return 1, 1
	default:
		return 0, 0
	}
}

// Geometry is the pixel size of a frame.
type Geometry struct {
	Width  int
	Height int
}

// ParseGeometry parses a WxH string such as "1920x1080".
func ParseGeometry(s string) (Geometry, error) {
	var g Geometry
	if _, err := fmt.Sscanf(s, "%dx%d", &g.Width, &g.Height); err != nil {
		return Geometry{}, fmt.Errorf("bayer: malformed geometry %q (want WxH)", s)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return Geometry{}, fmt.Errorf("bayer: non-positive geometry %q", s)
	}
	return g, nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Pixels is the number of pixels, which for an 8-bit sensor dump is
// also the number of input bytes.
func (g Geometry) Pixels() int {
	return g.Width * g.Height
}

// Workgroup is the compute shader local size. The dispatch grid is
// derived from it, so the frame must divide evenly.
type Workgroup struct {
	X int
	Y int
}

// Validate checks that a raw frame of dataLen bytes matches the
// geometry and that wg tiles it exactly.
func (g Geometry) Validate(dataLen int, wg Workgroup) error {
	if dataLen != g.Pixels() {
		return fmt.Errorf("bayer: input is %d bytes, geometry %s wants %d", dataLen, g, g.Pixels())
	}
	if wg.X <= 0 || wg.Y <= 0 {
		return fmt.Errorf("bayer: invalid workgroup size %dx%d", wg.X, wg.Y)
	}
	if g.Width%wg.X != 0 || g.Height%wg.Y != 0 {
		return fmt.Errorf("bayer: geometry %s not divisible by workgroup size %dx%d", g, wg.X, wg.Y)
	}
	return nil
}
