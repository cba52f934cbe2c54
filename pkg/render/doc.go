// Package render groups the avatar renderers.
//
// # Overview
//
// Every renderer is a pure function of its input: the same state or
// character always produces byte-identical output, which is what makes the
// artifact cache in [pipeline] sound. The subpackages are:
//
//   - [flat]: 2D layered vector art, one SVG group per category
//   - [solid]: the 3D mannequin as a projected SVG, JSON part tree and OBJ/MTL
//   - [raster]: SVG to PNG conversion, in process and with a timeout
//   - [hierarchy]: the 3D part tree as Graphviz DOT or SVG
//
// # Format Conversion
//
// Both the flat and solid renderers produce SVG. [raster] turns either into
// a PNG without external tools:
//
//	svg := flat.RenderSVG(scene)
//	png, err := raster.ToPNG(svg, raster.DefaultWidth, raster.DefaultHeight, color.White)
//
// Most callers should go through [pipeline.Render], which selects the
// renderer from the state's variant and the requested format.
//
// [flat]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/flat
// [solid]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/solid
// [raster]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/raster
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/hierarchy
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/pipeline
// [pipeline.Render]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/pipeline#Render
package render
