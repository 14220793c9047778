// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package egl

import (
	"errors"
	"unsafe"
)

/*
#cgo LDFLAGS: -lEGL -lgbm

#include <EGL/egl.h>
#include <EGL/eglext.h>
#include <gbm.h>
*/
import "C"

type (
	_EGLint     = C.EGLint
	_EGLenum    = C.EGLenum
	_EGLDisplay = C.EGLDisplay
	_EGLConfig  = C.EGLConfig
	_EGLContext = C.EGLContext
	_EGLSurface = C.EGLSurface
)

type gbmDevice = C.struct_gbm_device

var (
	nilEGLDisplay _EGLDisplay
	nilEGLSurface _EGLSurface
	nilEGLContext _EGLContext
	nilEGLConfig  _EGLConfig
)

const (
	_EGL_CONTEXT_MAJOR_VERSION = 0x3098
	_EGL_CONTEXT_MINOR_VERSION = 0x30fb
	_EGL_EXTENSIONS            = 0x3055
	_EGL_NONE                  = 0x3038
	_EGL_OPENGL_ES3_BIT        = 0x40
	_EGL_OPENGL_ES_API         = 0x30a0
	_EGL_PLATFORM_GBM_KHR      = 0x31d7
	_EGL_RENDERABLE_TYPE       = 0x3040
)

func createGBMDevice(fd int) (*gbmDevice, error) {
	dev := C.gbm_create_device(C.int(fd))
	if dev == nil {
		return nil, errors.New("gbm_create_device failed")
	}
	return dev, nil
}

func destroyGBMDevice(dev *gbmDevice) {
	C.gbm_device_destroy(dev)
}

func eglGetPlatformDisplay(platform _EGLenum, dev *gbmDevice) _EGLDisplay {
	return C.eglGetPlatformDisplay(platform, unsafe.Pointer(dev), nil)
}

func eglInitialize(disp _EGLDisplay) (_EGLint, _EGLint, bool) {
	var major, minor _EGLint
	ret := C.eglInitialize(disp, &major, &minor)
	return major, minor, ret == C.EGL_TRUE
}

func eglTerminate(disp _EGLDisplay) {
	C.eglTerminate(disp)
}

func eglQueryString(disp _EGLDisplay, name _EGLint) string {
	return C.GoString(C.eglQueryString(disp, name))
}

func eglChooseConfig(disp _EGLDisplay, attribs []_EGLint) (_EGLConfig, int, bool) {
	var cfg _EGLConfig
	var ncfg _EGLint
	if C.eglChooseConfig(disp, &attribs[0], &cfg, 1, &ncfg) != C.EGL_TRUE {
		return nilEGLConfig, 0, false
	}
	return cfg, int(ncfg), true
}

func eglBindAPI(api _EGLenum) bool {
	return C.eglBindAPI(api) == C.EGL_TRUE
}

func eglCreateContext(disp _EGLDisplay, cfg _EGLConfig, shareCtx _EGLContext, attribs []_EGLint) _EGLContext {
	return C.eglCreateContext(disp, cfg, shareCtx, &attribs[0])
}

func eglDestroyContext(disp _EGLDisplay, ctx _EGLContext) bool {
	return C.eglDestroyContext(disp, ctx) == C.EGL_TRUE
}

func eglMakeCurrent(disp _EGLDisplay, draw, read _EGLSurface, ctx _EGLContext) bool {
	return C.eglMakeCurrent(disp, draw, read, ctx) == C.EGL_TRUE
}

func eglReleaseThread() bool {
	return C.eglReleaseThread() == C.EGL_TRUE
}

func eglGetError() _EGLint {
	return C.eglGetError()
}
