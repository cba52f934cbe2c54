package raster

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/render/flat"
	"github.com/matzehuels/mypoly/pkg/state"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10">
  <rect x="0" y="0" width="5" height="10" fill="#FF0000" />
</svg>`

func TestRasterize(t *testing.T) {
	img, err := Rasterize([]byte(square), 20, 20, color.White)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}
	if r, g, b, _ := img.At(3, 10).RGBA(); r>>8 != 0xFF || g != 0 || b != 0 {
		t.Errorf("left pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(16, 10).RGBA(); r>>8 != 0xFF || g>>8 != 0xFF || b>>8 != 0xFF {
		t.Errorf("right pixel = %d,%d,%d, want white background", r>>8, g>>8, b>>8)
	}
}

func TestRasterizeInvalid(t *testing.T) {
	if _, err := Rasterize([]byte(square), 0, 10, color.White); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero width error = %v, want INVALID_INPUT", err)
	}
	if _, err := Rasterize([]byte("<svg><g></svg>"), 10, 10, color.White); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed svg error = %v, want INVALID_FORMAT", err)
	}
}

func TestExportAvatar(t *testing.T) {
	cat := catalog.Default()
	st := state.New(cat, catalog.Flat)
	scene, err := flat.Render(cat, st)
	if err != nil {
		t.Fatal(err)
	}

	data, err := Export(context.Background(), flat.RenderSVG(scene))
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultWidth || b.Dy() != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), DefaultWidth, DefaultHeight)
	}
	// Top-left corner is outside every fragment.
	if r, g, b, _ := img.At(2, 2).RGBA(); r>>8 != 0xFF || g>>8 != 0xFF || b>>8 != 0xFF {
		t.Errorf("corner pixel = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
	// Centre of the face is skin colored.
	skin, _ := st.Color(catalog.SlotSkin)
	if r, g, b, _ := img.At(400, 600).RGBA(); uint8(r>>8) != skin.R || uint8(g>>8) != skin.G || uint8(b>>8) != skin.B {
		t.Errorf("face pixel = %d,%d,%d, want %s", r>>8, g>>8, b>>8, skin)
	}
}

func TestExportTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Export(ctx, []byte(square), WithTimeout(time.Second))
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Export() on cancelled context error = %v, want TIMEOUT", err)
	}
}
