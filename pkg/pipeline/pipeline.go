// Package pipeline turns a customization state into output artifacts.
//
// This package is the single rendering path shared by the CLI, the terminal
// customizer and the preview server. It dispatches on the state's variant:
// flat states go through the 2D fragment renderer, solid states assemble a
// 3D character and project, serialize or diagram it.
//
// # Formats
//
//   - svg: layered vector art (flat) or the projected mannequin (solid)
//   - png: the svg rasterized at 800x1000 on a white background
//   - toml: the state as a preset file
//   - json, obj, mtl, dot, tree.svg: solid only
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), logger)
//	data, err := runner.Render(ctx, st, pipeline.Options{Format: pipeline.FormatPNG})
//
// [Render] runs without a cache; [Runner] adds artifact caching keyed by the
// state's canonical key and the render options.
package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/render/raster"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and Server
// =============================================================================

const (
	// DefaultWidth is the default raster width in pixels.
	DefaultWidth = raster.DefaultWidth

	// DefaultHeight is the default raster height in pixels.
	DefaultHeight = raster.DefaultHeight

	// MaxDimension bounds raster sizes accepted from callers.
	MaxDimension = 4096

	// DefaultMaterialLibrary is the mtllib name written into OBJ output.
	DefaultMaterialLibrary = "mypoly.mtl"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatOBJ  = "obj"
	FormatMTL  = "mtl"
	FormatDOT  = "dot"
	FormatTree = "tree.svg"
)

// formatsByVariant lists the formats each variant can produce, in display
// order.
var formatsByVariant = map[catalog.Variant][]string{
	catalog.Flat:  {FormatSVG, FormatPNG, FormatTOML},
	catalog.Solid: {FormatSVG, FormatPNG, FormatTOML, FormatJSON, FormatOBJ, FormatMTL, FormatDOT, FormatTree},
}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatTOML: "application/toml",
	FormatJSON: "application/json",
	FormatOBJ:  "model/obj",
	FormatMTL:  "model/mtl",
	FormatDOT:  "text/vnd.graphviz",
	FormatTree: "image/svg+xml",
}

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options configures a single render.
type Options struct {
	Format string `json:"format"`

	// Width and Height size raster output. Zero means the default.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Yaw turns the solid mannequin around its vertical axis (radians).
	Yaw float64 `json:"yaw,omitempty"`

	// Detailed adds geometry and transforms to hierarchy diagrams.
	Detailed bool `json:"detailed,omitempty"`

	// MaterialLibrary is referenced from OBJ output. Empty means
	// DefaultMaterialLibrary.
	MaterialLibrary string `json:"mtllib,omitempty"`

	// Refresh bypasses cached artifacts (they are still written back).
	Refresh bool `json:"-"`
}

// Formats returns the formats v can be rendered to.
func Formats(v catalog.Variant) []string {
	return slices.Clone(formatsByVariant[v])
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension (with dot) of format.
func Extension(format string) string {
	return "." + format
}

// ValidateFormat checks that v can be rendered as format.
func ValidateFormat(v catalog.Variant, format string) error {
	valid, ok := formatsByVariant[v]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown variant %q", v)
	}
	if !slices.Contains(valid, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid %s format: %q (must be one of: %s)", v, format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks every format against v.
func ValidateFormats(v catalog.Variant, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(v, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options against v and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults(v catalog.Variant) error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(v, o.Format); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 || o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeOutOfRange,
			"size %dx%d outside 1..%d", o.Width, o.Height, MaxDimension)
	}
	if o.MaterialLibrary == "" {
		o.MaterialLibrary = DefaultMaterialLibrary
	}
	return nil
}

// keyOpts returns the option values that change the bytes of format.
func (o *Options) keyOpts() []any {
	switch o.Format {
	case FormatPNG:
		return []any{o.Width, o.Height, o.Yaw}
	case FormatSVG:
		return []any{o.Yaw}
	case FormatOBJ:
		return []any{o.MaterialLibrary}
	case FormatDOT, FormatTree:
		return []any{o.Detailed}
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (o Options) String() string {
	if o.Format == FormatPNG {
		return fmt.Sprintf("%s %dx%d", o.Format, o.Width, o.Height)
	}
	return o.Format
}
