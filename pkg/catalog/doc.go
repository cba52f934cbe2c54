// Package catalog is the immutable registry of everything a user can pick:
// part options grouped by category, suggested color palettes per color slot,
// and the declared bounds of the continuous shape parameters.
//
// # Variants
//
// The same registry serves both renderers:
//
//   - [Flat]: layered 2D vector art. Categories face, eyes, mouth, hair; each
//     option carries an SVG fragment.
//   - [Solid]: the low-poly 3D mannequin. Categories headShape, hairstyle;
//     each option carries a [mesh.Spec] (and a vertical offset for hair).
//
// # Usage
//
//	cat := catalog.Default()
//	for _, opt := range cat.ListOptions(catalog.Hair) {
//	    fmt.Println(opt.ID, opt.Name)
//	}
//	opt, err := cat.GetOption(catalog.Hair, "hair-3") // Bald
//
// A Catalog is read-only after construction and safe for concurrent use.
//
// [mesh.Spec]: github.com/matzehuels/mypoly/pkg/mesh.Spec
package catalog
