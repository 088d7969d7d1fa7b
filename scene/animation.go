package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/scene_demo/r3d"
)

// Animation is the time varying state of one object. Angles are radians and grow
// without wrapping, the trigonometry does not care.
type Animation struct {
	RotationAngle float32
	OrbitAngle    float32
	OrbitRadius   float32
	RotationRate  float32
	OrbitRate     float32
}

func (a Animation) Advance(dt float32) Animation {
	a.RotationAngle += a.RotationRate * dt
	a.OrbitAngle += a.OrbitRate * dt
	return a
}

// Local is rebuilt from the angles every frame instead of being accumulated.
func (a Animation) Local(scale float32) r3d.Transform {
	return r3d.Transform{
		Scale:    r3d.UniformScale(scale),
		Rotation: r3d.RotationY(a.RotationAngle),
		Translation: mgl32.Vec3{
			a.OrbitRadius * float32(math.Cos(float64(a.OrbitAngle))),
			0,
			a.OrbitRadius * float32(math.Sin(float64(a.OrbitAngle))),
		},
	}
}

func AdvanceAll(objects []*Object, dt float32) {
	for _, o := range objects {
		if o.Animation != nil {
			next := o.Animation.Advance(dt)
			o.Animation = &next
		}
	}
}
