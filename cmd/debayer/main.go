// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

// Command debayer demosaics an 8-bit raw Bayer sensor dump into RGBA
// by running a compute shader in a windowless EGL/GLES 3.1 context on
// a DRM render node.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/bayerd/debayer/internal/bayer"
	"github.com/bayerd/debayer/internal/config"
	"github.com/bayerd/debayer/internal/pipeline"
)

const mainUsage = `Usage: debayer [flags] <inputfile> <outputfile>

Demosaic an 8-bit raw Bayer sensor dump into RGBA8 (4x the input size)
with a GLES 3.1 compute shader dispatched on a DRM render node.

Flags:
`

// previewMax bounds the longer side of the -png preview.
const previewMax = 512

func main() {
	err := run(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "debayer: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("debayer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, mainUsage)
		flags.PrintDefaults()
	}
	var (
		orderName  = flags.String("f", "rggb", "CFA order of the input (rggb, bggr, grbg, gbrg)")
		geomArg    = flags.String("s", "", "input image size as WxH, e.g. 1920x1080 (default from config)")
		shaderPath = flags.String("shader", "", "compute shader source file (default: embedded shader)")
		configPath = flags.String("config", "", "YAML config file")
		cpu        = flags.Bool("cpu", false, "demosaic on the CPU instead of the GPU")
		pngPath    = flags.String("png", "", "additionally write a PNG preview to this path")
		verbose    = flags.Bool("v", false, "enable debug logging")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if flags.NArg() != 2 {
		return errors.New("give input and output files")
	}
	input, output := flags.Arg(0), flags.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	geom := bayer.Geometry{Width: cfg.Geometry.Width, Height: cfg.Geometry.Height}
	if *geomArg != "" {
		if geom, err = bayer.ParseGeometry(*geomArg); err != nil {
			return err
		}
	}
	order, err := bayer.ParseOrder(*orderName)
	if err != nil {
		return err
	}
	wg := bayer.Workgroup{X: cfg.Workgroup.X, Y: cfg.Workgroup.Y}

	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("input file %s is empty", input)
	}

	var rgba []byte
	if *cpu {
		rgba, err = bayer.Demosaic(raw, geom, order)
	} else {
		rgba, err = convertGPU(cfg, raw, geom, order, wg, *shaderPath)
	}
	if err != nil {
		return err
	}

	if err := writeOutputs(output, *pngPath, rgba, geom); err != nil {
		return err
	}
	slog.Info("output written", "path", output, "bytes", len(rgba))
	return nil
}

// convertGPU runs the conversion through the compute pipeline. The OS
// thread is locked for the lifetime of the EGL context.
func convertGPU(cfg *config.Config, raw []byte, geom bayer.Geometry, order bayer.Order, wg bayer.Workgroup, shaderPath string) ([]byte, error) {
	src, err := shaderSource(cfg, geom, order, wg, shaderPath)
	if err != nil {
		return nil, err
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	conv, err := pipeline.New(pipeline.Options{
		RenderNode:   cfg.RenderNode,
		ShaderSource: src,
		Geometry:     geom,
		Workgroup:    wg,
		FenceTimeout: cfg.FenceTimeout.Std(),
	})
	if err != nil {
		return nil, err
	}
	defer conv.Release()
	return conv.Convert(raw)
}

// shaderSource picks the external shader file if one was named, either
// by flag or config, and otherwise generates the embedded shader for
// the frame parameters.
func shaderSource(cfg *config.Config, geom bayer.Geometry, order bayer.Order, wg bayer.Workgroup, shaderPath string) (string, error) {
	path := shaderPath
	if path == "" {
		path = cfg.Shader
	}
	if path == "" {
		return bayer.ShaderSource(geom, order, wg), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading shader source: %w", err)
	}
	if len(src) == 0 {
		return "", fmt.Errorf("shader source %s is empty", path)
	}
	slog.Debug("using external shader", "path", path, "bytes", len(src))
	return string(src), nil
}

// writeOutputs writes the raw RGBA stream and, if requested, a PNG
// preview. The two files are independent and written concurrently.
func writeOutputs(rawPath, pngPath string, rgba []byte, geom bayer.Geometry) error {
	var g errgroup.Group
	g.Go(func() error {
		return os.WriteFile(rawPath, rgba, 0o644)
	})
	if pngPath != "" {
		g.Go(func() error {
			return writePreview(pngPath, rgba, geom)
		})
	}
	return g.Wait()
}

func writePreview(path string, rgba []byte, geom bayer.Geometry) (err error) {
	img := &image.RGBA{
		Pix:    rgba,
		Stride: 4 * geom.Width,
		Rect:   image.Rect(0, 0, geom.Width, geom.Height),
	}
	var out image.Image = img
	if w, h := previewSize(geom); w != geom.Width || h != geom.Height {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, out)
}

// previewSize shrinks the frame so its longer side fits previewMax,
// keeping the aspect ratio.
func previewSize(geom bayer.Geometry) (int, int) {
	w, h := geom.Width, geom.Height
	long := w
	if h > long {
		long = h
	}
	if long <= previewMax {
		return w, h
	}
	return w * previewMax / long, h * previewMax / long
}
