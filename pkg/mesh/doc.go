// Package mesh builds the procedural low-poly primitives the 3D character is
// assembled from.
//
// Three kinds are supported, mirroring the shapes a flat-shaded mannequin
// needs:
//
//   - [KindIcosahedron]: a 20-face sphere approximation (head, short hair)
//   - [KindBox]: an axis-aligned box (eyes, blocky head, mohawk, shoes)
//   - [KindCylinder]: a tapered prism with N radial segments (torso, limbs)
//
// Every primitive is centered on the origin and stored as a flat-shaded
// triangle list: one normal per face, pointing away from the center.
//
// # Resource Tracking
//
// Geometries are created through a [Pool], which records every live geometry.
// Swapping a part's shape must call [Geometry.Release] on the old geometry;
// [Pool.Live] lets callers and tests verify that nothing leaks:
//
//	pool := mesh.NewPool()
//	head, _ := pool.Build(mesh.Icosahedron(0.25))
//	head.Release()
//	pool.Live() // 0
//
// # Export
//
// [OBJWriter] serializes geometries to Wavefront OBJ in world space.
package mesh
