package model

import "github.com/go-gl/mathgl/mgl64"

// Transform is a local position, XYZ Euler rotation in radians, and scale.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// Identity returns a transform with unit scale.
func Identity() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// At returns an identity transform translated to (x, y, z).
func At(x, y, z float64) Transform {
	t := Identity()
	t.Position = mgl64.Vec3{x, y, z}
	return t
}

// Matrix returns translate · rotate(X, Y, Z) · scale.
func (t Transform) Matrix() mgl64.Mat4 {
	r := mgl64.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(r).
		Mul4(mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}
