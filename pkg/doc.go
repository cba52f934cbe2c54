// Package pkg provides the core libraries for mypoly avatar customization.
//
// # Overview
//
// mypoly builds avatars from a fixed catalog of parts, color palettes and
// shape parameters, and renders them either as layered 2D vector art or as
// a 3D mannequin assembled from simple primitives. The pkg directory is
// organized into four main areas:
//
//  1. Domain: [catalog], [state], [color], [mesh] and [model]
//  2. Rendering: [render/flat], [render/solid], [render/raster] and [render/hierarchy]
//  3. Orchestration: [pipeline] (state → artifact, with caching)
//  4. Infrastructure: [cache], [errors], [observability] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Catalog + flags / preset / query string
//	         ↓
//	    [state] package (validated selections, colors, shape)
//	         ↓
//	    [model] package (3D only: scene graph, shared geometry)
//	         ↓
//	    [render] packages (SVG, JSON, OBJ, DOT)
//	         ↓
//	    [render/raster] (PNG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mypoly/pkg/catalog"
//	    "github.com/matzehuels/mypoly/pkg/pipeline"
//	    "github.com/matzehuels/mypoly/pkg/state"
//	)
//
//	st := state.New(catalog.Default(), catalog.Flat)
//	_ = st.Select(catalog.Hair, "hair-2")
//	_ = st.SetColorHex(catalog.SlotSkin, "#8D5524")
//
//	svg, err := pipeline.Render(ctx, st, pipeline.Options{Format: pipeline.FormatSVG})
//
// # Error Handling
//
// Operations return coded errors from [errors]. Use [errors.Is] with a code
// such as [errors.ErrCodeInvalidSelection] to branch on the failure kind.
//
// [catalog]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/catalog
// [state]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/state
// [color]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/color
// [mesh]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/mesh
// [model]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/model
// [render]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render
// [render/flat]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/flat
// [render/solid]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/solid
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/raster
// [render/hierarchy]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/render/hierarchy
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/errors
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/errors#Is
// [errors.ErrCodeInvalidSelection]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/errors#ErrCodeInvalidSelection
// [observability]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mypoly/pkg/buildinfo
package pkg
