// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// CreateComputeProgram compiles src as a compute shader and links it
// into a program. The intermediate shader object is deleted once
// linked; its code stays alive inside the program.
func CreateComputeProgram(ctx *Functions, src string) (Program, error) {
	cs, err := createShader(ctx, COMPUTE_SHADER, src)
	if err != nil {
		return Program{}, err
	}
	defer ctx.DeleteShader(cs)
	prog := ctx.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("glCreateProgram failed")
	}
	ctx.AttachShader(prog, cs)
	ctx.LinkProgram(prog)
	if ctx.GetProgrami(prog, LINK_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(prog)
		ctx.DeleteProgram(prog)
		return Program{}, fmt.Errorf("program link failed: %s", strings.TrimSpace(log))
	}
	return prog, nil
}

func createShader(ctx *Functions, typ Enum, src string) (Shader, error) {
	sh := ctx.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("glCreateShader failed")
	}
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(sh)
		ctx.DeleteShader(sh)
		return Shader{}, fmt.Errorf("shader compilation failed: %s", strings.TrimSpace(log))
	}
	return sh, nil
}
