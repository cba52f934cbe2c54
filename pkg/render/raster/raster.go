// Package raster converts SVG documents to PNG images in process.
//
// Decoding and rasterization use oksvg and rasterx, so no external tools are
// required. [Export] is the asynchronous entry point used by the UI: it
// rasterizes in a separate goroutine and waits for the result under a
// context deadline.
//
//	png, err := raster.Export(ctx, svg)
//	if errors.Is(err, errors.ErrCodeTimeout) {
//	    // the image never finished decoding
//	}
package raster

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/observability"
)

// Export defaults.
const (
	DefaultWidth    = 800
	DefaultHeight   = 1000
	DefaultTimeout  = 10 * time.Second
	DefaultFilename = "mypoly-character.png"
)

// Option configures [Export].
type Option func(*exporter)

type exporter struct {
	width, height int
	background    color.Color
	timeout       time.Duration
}

// WithSize sets the output size in pixels.
func WithSize(w, h int) Option {
	return func(e *exporter) { e.width, e.height = w, h }
}

// WithBackground sets the color the canvas is filled with before drawing.
func WithBackground(c color.Color) Option {
	return func(e *exporter) { e.background = c }
}

// WithTimeout bounds how long Export waits. Zero disables the bound; the
// context deadline still applies.
func WithTimeout(d time.Duration) Option {
	return func(e *exporter) { e.timeout = d }
}

// Rasterize draws svg onto a w×h canvas filled with bg, scaling the view box
// to the full canvas.
func Rasterize(svg []byte, w, h int, bg color.Color) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid image size %dx%d", w, h)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode svg")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// ToPNG rasterizes svg and encodes it as PNG.
func ToPNG(svg []byte, w, h int, bg color.Color) ([]byte, error) {
	img, err := Rasterize(svg, w, h, bg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Export rasterizes svg to an 800x1000 PNG on a white background. The work
// runs in its own goroutine; if it does not finish before the timeout or ctx
// is done, Export returns ErrCodeTimeout.
func Export(ctx context.Context, svg []byte, opts ...Option) ([]byte, error) {
	e := exporter{
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: color.White,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&e)
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	hooks := observability.Export()
	hooks.OnExportStart(ctx, "png", e.width, e.height)
	start := time.Now()
	if err := ctx.Err(); err != nil {
		err := errors.Wrap(errors.ErrCodeTimeout, err, "export did not start")
		hooks.OnExportComplete(ctx, "png", 0, 0, err)
		return nil, err
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := ToPNG(svg, e.width, e.height, e.background)
		done <- result{data, err}
	}()

	var (
		data []byte
		err  error
	)
	select {
	case r := <-done:
		data, err = r.data, r.err
	case <-ctx.Done():
		err = errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "export did not finish")
	}
	hooks.OnExportComplete(ctx, "png", len(data), time.Since(start), err)
	return data, err
}
