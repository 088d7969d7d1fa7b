package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is applied scale first, then rotation, then translation.
type Transform struct {
	Scale       mgl32.Vec3
	Rotation    mgl32.Quat
	Translation mgl32.Vec3
}

func IdentTransform() Transform {
	return Transform{
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
}

func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

func RotationY(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
}

func UniformScale(s float32) mgl32.Vec3 {
	return mgl32.Vec3{s, s, s}
}
