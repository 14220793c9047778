// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package main

import (
	"bytes"
	"errors"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bayerd/debayer/internal/bayer"
)

func writeFrame(t *testing.T, n int) string {
	t.Helper()
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	path := filepath.Join(t.TempDir(), "frame.raw")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunArgCount(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.rgba")
	for _, args := range [][]string{
		{},
		{"only-input"},
		{"a", "b", "c"},
	} {
		var stderr bytes.Buffer
		err := run(append([]string{"-cpu"}, args...), &stderr)
		if err == nil || !strings.Contains(err.Error(), "input and output files") {
			t.Errorf("run(%q) = %v, want argument error", args, err)
		}
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output file created despite argument error")
	}
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer
	err := run([]string{"-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("run(-h) = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "Usage: debayer") {
		t.Error("usage text not printed")
	}
}

func TestRunCPU(t *testing.T) {
	in := writeFrame(t, 100)
	out := filepath.Join(t.TempDir(), "out.rgba")
	var stderr bytes.Buffer
	if err := run([]string{"-cpu", "-s", "10x10", in, out}, &stderr); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 400 {
		t.Fatalf("output is %d bytes, want 400", len(got))
	}
	raw, _ := os.ReadFile(in)
	want, err := bayer.Demosaic(raw, bayer.Geometry{Width: 10, Height: 10}, bayer.RGGB)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("output does not match the CPU demosaic")
	}
}

func TestRunPNGPreview(t *testing.T) {
	in := writeFrame(t, 100)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.rgba")
	preview := filepath.Join(dir, "out.png")
	var stderr bytes.Buffer
	if err := run([]string{"-cpu", "-s", "10x10", "-png", preview, in, out}, &stderr); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(preview)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if sz := img.Bounds().Size(); sz.X != 10 || sz.Y != 10 {
		t.Errorf("preview is %v, want 10x10", sz)
	}
}

func TestRunErrors(t *testing.T) {
	in := writeFrame(t, 100)
	out := filepath.Join(t.TempDir(), "out.rgba")
	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"missing input", []string{"-cpu", "-s", "10x10", filepath.Join(t.TempDir(), "nope.raw"), out}, "no such file"},
		{"bad order", []string{"-cpu", "-f", "rgbw", "-s", "10x10", in, out}, "unknown CFA order"},
		{"size mismatch", []string{"-cpu", "-s", "8x8", in, out}, "geometry"},
		{"bad geometry", []string{"-cpu", "-s", "10by10", in, out}, "malformed geometry"},
	} {
		var stderr bytes.Buffer
		err := run(tc.args, &stderr)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: run = %v, want error containing %q", tc.name, err, tc.want)
		}
		if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s: output file created despite error", tc.name)
		}
	}
}

func TestPreviewSize(t *testing.T) {
	for _, tc := range []struct {
		geom bayer.Geometry
		w, h int
	}{
		{bayer.Geometry{Width: 10, Height: 10}, 10, 10},
		{bayer.Geometry{Width: 512, Height: 512}, 512, 512},
		{bayer.Geometry{Width: 1920, Height: 1080}, 512, 288},
		{bayer.Geometry{Width: 1080, Height: 1920}, 288, 512},
	} {
		w, h := previewSize(tc.geom)
		if w != tc.w || h != tc.h {
			t.Errorf("previewSize(%v) = %dx%d, want %dx%d", tc.geom, w, h, tc.w, tc.h)
		}
	}
}
