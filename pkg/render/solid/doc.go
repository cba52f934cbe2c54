// Package solid renders the assembled 3D character without a GPU.
//
// [RenderSVG] projects every triangle of the part tree through a perspective
// camera, shades it with an ambient plus directional light, and writes the
// triangles back to front (painter's algorithm) as SVG paths. The output
// shares the 400x500 view box of the flat renderer, so both variants export
// through the same raster path.
//
// [RenderJSON] describes the part tree (transforms, materials, geometry) for
// external viewers, and [WriteOBJ] with [WriteMTL] exports the posed model in
// world space as Wavefront OBJ.
package solid
