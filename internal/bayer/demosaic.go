// SPDX-License-Identifier: Unlicense OR MIT

package bayer

// Demosaic expands an 8-bit Bayer frame to RGBA8 on the CPU using
// bilinear interpolation with clamped edge lookups. The result is
// 4x the input size with opaque alpha, matching the compute shader
// output bit for bit up to rounding.
//
// RGGB layout (row-major, 0-indexed):
//
//	(even row, even col) = R
//	(even row, odd  col) = G
//	(odd  row, even col) = G
//	(odd  row, odd  col) = B
//
// The other orders shift the tile by the column/row offsets from
// Order.offsets.
func Demosaic(raw []byte, g Geometry, order Order) ([]byte, error) {
	if err := g.Validate(len(raw), Workgroup{X: 1, Y: 1}); err != nil {
		return nil, err
	}
	w, h := g.Width, g.Height
	xOff, yOff := order.offsets()
	out := make([]byte, 4*len(raw))

	clampX := func(x int) int {
		if x < 0 {
			return 0
		}
		if x >= w {
			return w - 1
		}
		return x
	}
	clampY := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= h {
			return h - 1
		}
		return y
	}
	px := func(x, y int) int {
		return int(raw[clampY(y)*w+clampX(x)])
	}
	avg2 := func(a, b int) byte {
		return byte((a + b + 1) / 2)
	}
	avg4 := func(a, b, c, d int) byte {
		return byte((a + b + c + d + 2) / 4)
	}

	for y := 0; y < h; y++ {
		evenRow := (y+yOff)%2 == 0
		for x := 0; x < w; x++ {
			evenCol := (x+xOff)%2 == 0
			var r, gg, b byte

			switch {
			case evenRow && evenCol:
				// Red pixel; interpolate G and B.
				r = byte(px(x, y))
				gg = avg4(px(x-1, y), px(x+1, y), px(x, y-1), px(x, y+1))
				b = avg4(px(x-1, y-1), px(x+1, y-1), px(x-1, y+1), px(x+1, y+1))

			case evenRow && !evenCol:
				// Green on a red row.
				r = avg2(px(x-1, y), px(x+1, y))
				gg = byte(px(x, y))
				b = avg2(px(x, y-1), px(x, y+1))

			case !evenRow && evenCol:
				// Green on a blue row.
				r = avg2(px(x, y-1), px(x, y+1))
				gg = byte(px(x, y))
				b = avg2(px(x-1, y), px(x+1, y))

			default:
				// Blue pixel; interpolate R and G.
				r = avg4(px(x-1, y-1), px(x+1, y-1), px(x-1, y+1), px(x+1, y+1))
				gg = avg4(px(x-1, y), px(x+1, y), px(x, y-1), px(x, y+1))
				b = byte(px(x, y))
			}

			o := 4 * (y*w + x)
			out[o] = r
			out[o+1] = gg
			out[o+2] = b
			out[o+3] = 0xff
		}
	}
	return out, nil
}
