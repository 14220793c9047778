// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

// Package egl creates windowless GLES contexts on a DRM render node,
// using the GBM platform and the EGL_KHR_surfaceless_context extension.
package egl

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/bayerd/debayer/internal/gl"
)

// Context is a surfaceless EGL rendering context bound to a render
// node. It owns every native resource it was created from; Release
// tears them down in reverse acquisition order.
type Context struct {
	c      *gl.Functions
	fd     int
	gbm    *gbmDevice
	disp   _EGLDisplay
	eglCtx _EGLContext
}

// NewContext opens renderNode and brings up a GLES 3.1 context over
// it. On any failure the resources acquired so far are released.
func NewContext(renderNode string) (*Context, error) {
	fd, err := unix.Open(renderNode, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("egl: open %s: %w", renderNode, err)
	}
	gbm, err := createGBMDevice(fd)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("egl: %s: %w", renderNode, err)
	}
	disp := eglGetPlatformDisplay(_EGL_PLATFORM_GBM_KHR, gbm)
	if disp == nilEGLDisplay {
		destroyGBMDevice(gbm)
		unix.Close(fd)
		return nil, fmt.Errorf("egl: eglGetPlatformDisplay failed: 0x%x", eglGetError())
	}
	eglCtx, err := createContext(disp)
	if err != nil {
		eglTerminate(disp)
		destroyGBMDevice(gbm)
		unix.Close(fd)
		return nil, err
	}
	return &Context{
		c:      new(gl.Functions),
		fd:     fd,
		gbm:    gbm,
		disp:   disp,
		eglCtx: eglCtx,
	}, nil
}

// Functions returns the GL entry points for this context. They are
// only valid while the context is current.
func (c *Context) Functions() *gl.Functions {
	return c.c
}

// MakeCurrent binds the context to the calling OS thread with no draw
// or read surfaces.
func (c *Context) MakeCurrent() error {
	if !eglMakeCurrent(c.disp, nilEGLSurface, nilEGLSurface, c.eglCtx) {
		return fmt.Errorf("egl: eglMakeCurrent error 0x%x", eglGetError())
	}
	slog.Info("GL context current",
		"version", fmt.Sprintf("%d.%d", c.c.GetInteger(gl.MAJOR_VERSION), c.c.GetInteger(gl.MINOR_VERSION)),
		"renderer", c.c.GetString(gl.RENDERER))
	return nil
}

// ReleaseCurrent unbinds the context from the calling thread.
func (c *Context) ReleaseCurrent() {
	eglMakeCurrent(c.disp, nilEGLSurface, nilEGLSurface, nilEGLContext)
}

// Release destroys the context and every native resource under it.
// Order matters: context before display, display before gbm device,
// gbm device before the descriptor.
func (c *Context) Release() {
	if c.eglCtx != nilEGLContext {
		eglDestroyContext(c.disp, c.eglCtx)
		c.eglCtx = nilEGLContext
	}
	if c.disp != nilEGLDisplay {
		eglTerminate(c.disp)
		eglReleaseThread()
		c.disp = nilEGLDisplay
	}
	if c.gbm != nil {
		destroyGBMDevice(c.gbm)
		c.gbm = nil
	}
	if c.fd >= 0 {
		unix.Close(c.fd)
		c.fd = -1
	}
}

func hasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func createContext(disp _EGLDisplay) (_EGLContext, error) {
	major, minor, ret := eglInitialize(disp)
	if !ret {
		return nilEGLContext, fmt.Errorf("egl: eglInitialize failed: 0x%x", eglGetError())
	}
	slog.Info("EGL initialized", "version", fmt.Sprintf("%d.%d", major, minor))
	exts := strings.Split(eglQueryString(disp, _EGL_EXTENSIONS), " ")
	for _, ext := range []string{"EGL_KHR_create_context", "EGL_KHR_surfaceless_context"} {
		if !hasExtension(exts, ext) {
			return nilEGLContext, fmt.Errorf("egl: %s not supported", ext)
		}
	}
	attribs := []_EGLint{
		_EGL_RENDERABLE_TYPE, _EGL_OPENGL_ES3_BIT,
		_EGL_NONE,
	}
	eglCfg, ncfg, ok := eglChooseConfig(disp, attribs)
	if !ok {
		return nilEGLContext, fmt.Errorf("egl: eglChooseConfig failed: 0x%x", eglGetError())
	}
	if ncfg == 0 || eglCfg == nilEGLConfig {
		return nilEGLContext, errors.New("egl: no GLES 3 config available")
	}
	slog.Debug("EGL config chosen", "matching", ncfg)
	if !eglBindAPI(_EGL_OPENGL_ES_API) {
		return nilEGLContext, fmt.Errorf("egl: eglBindAPI failed: 0x%x", eglGetError())
	}
	ctxAttribs := []_EGLint{
		_EGL_CONTEXT_MAJOR_VERSION, 3,
		_EGL_CONTEXT_MINOR_VERSION, 1,
		_EGL_NONE,
	}
	eglCtx := eglCreateContext(disp, eglCfg, nilEGLContext, ctxAttribs)
	if eglCtx == nilEGLContext {
		return nilEGLContext, fmt.Errorf("egl: eglCreateContext failed: 0x%x", eglGetError())
	}
	return eglCtx, nil
}
