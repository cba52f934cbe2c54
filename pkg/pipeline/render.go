package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/model"
	"github.com/matzehuels/mypoly/pkg/render/flat"
	"github.com/matzehuels/mypoly/pkg/render/hierarchy"
	"github.com/matzehuels/mypoly/pkg/render/raster"
	"github.com/matzehuels/mypoly/pkg/render/solid"
	"github.com/matzehuels/mypoly/pkg/state"
)

// Render produces one artifact for st without caching. The state is read,
// never modified.
func Render(ctx context.Context, st *state.State, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(st.Variant()); err != nil {
		return nil, err
	}
	if opts.Format == FormatTOML {
		var buf bytes.Buffer
		if err := state.EncodePreset(&buf, st.Preset()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	switch st.Variant() {
	case catalog.Flat:
		return renderFlat(ctx, st, opts)
	case catalog.Solid:
		return renderSolid(ctx, st, opts)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported variant: %s", st.Variant())
}

// renderFlat generates 2D outputs.
func renderFlat(ctx context.Context, st *state.State, opts Options) ([]byte, error) {
	scene, err := flat.Render(st.Catalog(), st)
	if err != nil {
		return nil, err
	}
	svg := flat.RenderSVG(scene)
	if opts.Format == FormatPNG {
		return raster.Export(ctx, svg, raster.WithSize(opts.Width, opts.Height))
	}
	return svg, nil
}

// renderSolid assembles a throwaway character for st and renders it. The
// character's geometry is released before returning.
func renderSolid(ctx context.Context, st *state.State, opts Options) ([]byte, error) {
	c, err := Assemble(st)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return RenderCharacter(ctx, c, opts)
}

// Assemble builds a 3D character matching a solid state.
func Assemble(st *state.State) (*model.Character, error) {
	c, err := model.New(st.Catalog())
	if err != nil {
		return nil, err
	}
	if err := c.Apply(st); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// RenderCharacter renders an already assembled character. The terminal
// customizer uses it to export the live model without rebuilding it.
func RenderCharacter(ctx context.Context, c *model.Character, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(catalog.Solid); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch opts.Format {
	case FormatSVG:
		return solid.RenderSVG(c, solid.WithYaw(opts.Yaw)), nil
	case FormatPNG:
		svg := solid.RenderSVG(c, solid.WithYaw(opts.Yaw))
		return raster.Export(ctx, svg, raster.WithSize(opts.Width, opts.Height))
	case FormatJSON:
		return solid.RenderJSON(c)
	case FormatOBJ:
		if err := solid.WriteOBJ(&buf, c, opts.MaterialLibrary); err != nil {
			return nil, err
		}
	case FormatMTL:
		if err := solid.WriteMTL(&buf, c); err != nil {
			return nil, err
		}
	case FormatDOT:
		return []byte(hierarchy.ToDOT(c.Root(), hierarchy.Options{Detailed: opts.Detailed})), nil
	case FormatTree:
		dot := hierarchy.ToDOT(c.Root(), hierarchy.Options{Detailed: opts.Detailed})
		return hierarchy.RenderSVG(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported solid format: %s", opts.Format)
	}
	return buf.Bytes(), nil
}
