// SPDX-License-Identifier: Unlicense OR MIT

package bayer

import (
	_ "embed"
	"fmt"
)

//go:embed debayer.comp
var shaderBody string

// ShaderSource builds the compute shader source for a frame. The
// geometry, CFA offsets and local size are injected as preprocessor
// defines ahead of the embedded body; the shader's buffer bindings
// (0 = raw input, 1 = RGBA output) are part of its contract with the
// dispatch code.
func ShaderSource(g Geometry, order Order, wg Workgroup) string {
	xOff, yOff := order.offsets()
	return fmt.Sprintf(`#version 310 es
#define WIDTH %d
#define HEIGHT %d
#define X_OFFSET %d
#define Y_OFFSET %d
#define LOCAL_X %d
#define LOCAL_Y %d
%s`, g.Width, g.Height, xOff, yOff, wg.X, wg.Y, shaderBody)
}
