// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

// Package pipeline runs the demosaic compute shader on a render node.
// A Converter owns a surfaceless EGL context, the compiled program and
// the storage buffer pair for exactly one conversion per process.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bayerd/debayer/internal/bayer"
	"github.com/bayerd/debayer/internal/egl"
	"github.com/bayerd/debayer/internal/gl"
)

// Shader buffer binding points. These match the layout declarations in
// the compute shader source and must not change independently.
const (
	bindingIn  = 0
	bindingOut = 1
)

// Options configures a Converter.
type Options struct {
	// RenderNode is the DRM render node to open.
	RenderNode string
	// ShaderSource is the complete compute shader source.
	ShaderSource string
	Geometry     bayer.Geometry
	Workgroup    bayer.Workgroup
	// FenceTimeout bounds the wait for GPU completion. Zero or
	// negative waits until the fence signals.
	FenceTimeout time.Duration
}

// Converter holds the GPU resources for one conversion. The calling
// goroutine must stay locked to its OS thread between New and Release;
// the EGL context is current on that thread for the Converter's whole
// lifetime.
type Converter struct {
	ctx     *egl.Context
	funcs   *gl.Functions
	prog    gl.Program
	geom    bayer.Geometry
	wg      bayer.Workgroup
	timeout time.Duration
}

// New brings up the EGL context on opts.RenderNode and compiles the
// shader. On failure everything acquired so far is released.
func New(opts Options) (*Converter, error) {
	ctx, err := egl.NewContext(opts.RenderNode)
	if err != nil {
		return nil, err
	}
	if err := ctx.MakeCurrent(); err != nil {
		ctx.Release()
		return nil, err
	}
	funcs := ctx.Functions()
	prog, err := gl.CreateComputeProgram(funcs, opts.ShaderSource)
	if err != nil {
		ctx.ReleaseCurrent()
		ctx.Release()
		return nil, err
	}
	return &Converter{
		ctx:     ctx,
		funcs:   funcs,
		prog:    prog,
		geom:    opts.Geometry,
		wg:      opts.Workgroup,
		timeout: opts.FenceTimeout,
	}, nil
}

// Convert uploads raw, dispatches the shader once and returns the
// mapped RGBA output copied to host memory. The output is 4x the input
// size.
func (c *Converter) Convert(raw []byte) ([]byte, error) {
	if err := c.geom.Validate(len(raw), c.wg); err != nil {
		return nil, err
	}
	f := c.funcs
	outSize := 4 * len(raw)

	bufIn := f.CreateBuffer()
	defer f.DeleteBuffer(bufIn)
	f.BindBuffer(gl.SHADER_STORAGE_BUFFER, bufIn)
	f.BufferData(gl.SHADER_STORAGE_BUFFER, len(raw), gl.STREAM_DRAW)
	f.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, raw)
	if err := c.glErr(fmt.Sprintf("glBufferData(in, size=%d)", len(raw))); err != nil {
		return nil, err
	}

	bufOut := f.CreateBuffer()
	defer f.DeleteBuffer(bufOut)
	f.BindBuffer(gl.SHADER_STORAGE_BUFFER, bufOut)
	f.BufferData(gl.SHADER_STORAGE_BUFFER, outSize, gl.STREAM_READ)
	if err := c.glErr(fmt.Sprintf("glBufferData(out, size=%d)", outSize)); err != nil {
		return nil, err
	}

	f.BindBufferBase(gl.SHADER_STORAGE_BUFFER, bindingIn, bufIn)
	f.BindBufferBase(gl.SHADER_STORAGE_BUFFER, bindingOut, bufOut)

	f.UseProgram(c.prog)
	if err := c.glErr("glUseProgram"); err != nil {
		return nil, err
	}
	nx, ny := c.geom.Width/c.wg.X, c.geom.Height/c.wg.Y
	slog.Debug("dispatching", "groups_x", nx, "groups_y", ny, "workgroup", fmt.Sprintf("%dx%d", c.wg.X, c.wg.Y))
	f.DispatchCompute(nx, ny, 1)
	if err := c.glErr("glDispatchCompute"); err != nil {
		return nil, err
	}
	f.MemoryBarrier(gl.ALL_BARRIER_BITS)

	fence := f.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	if !fence.Valid() {
		return nil, fmt.Errorf("pipeline: glFenceSync error 0x%04x", f.GetError())
	}
	defer f.DeleteSync(fence)
	if err := c.waitFence(fence); err != nil {
		return nil, err
	}

	f.BindBuffer(gl.SHADER_STORAGE_BUFFER, bufOut)
	mapped := f.MapBufferRange(gl.SHADER_STORAGE_BUFFER, 0, outSize, gl.MAP_READ_BIT)
	if mapped == nil {
		return nil, fmt.Errorf("pipeline: glMapBufferRange(out) error 0x%04x", f.GetError())
	}
	out := make([]byte, outSize)
	copy(out, mapped)
	if !f.UnmapBuffer(gl.SHADER_STORAGE_BUFFER) {
		return nil, fmt.Errorf("pipeline: glUnmapBuffer reported lost contents")
	}
	return out, nil
}

// waitFence blocks until the fence signals or the configured timeout
// passes. The first wait requests a flush so the commands reach the
// GPU.
func (c *Converter) waitFence(fence gl.Sync) error {
	const slice = 10 * time.Millisecond
	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	flags := gl.Enum(gl.SYNC_FLUSH_COMMANDS_BIT)
	for {
		wait := slice
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return fmt.Errorf("pipeline: GPU fence not signaled within %v", c.timeout)
			}
			if remaining < wait {
				wait = remaining
			}
		}
		switch status := c.funcs.ClientWaitSync(fence, flags, uint64(wait.Nanoseconds())); status {
		case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
			return nil
		case gl.TIMEOUT_EXPIRED:
			flags = 0
		default:
			return fmt.Errorf("pipeline: glClientWaitSync error 0x%04x (status 0x%04x)", c.funcs.GetError(), status)
		}
	}
}

func (c *Converter) glErr(op string) error {
	if e := c.funcs.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("pipeline: %s error 0x%04x", op, e)
	}
	return nil
}

// Release frees the program and tears down the EGL context. It must
// run on the thread that created the Converter.
func (c *Converter) Release() {
	if c.prog.Valid() {
		c.funcs.DeleteProgram(c.prog)
		c.prog = gl.Program{}
	}
	if c.ctx != nil {
		c.ctx.ReleaseCurrent()
		c.ctx.Release()
		c.ctx = nil
	}
}
