package r3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pitch never reaches a pole so the rotation keeps a usable forward axis.
const MaxPitch = math.Pi/2 - 0.01

const twoPi = 2 * math.Pi

type Viewer interface {
	WorldToViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// Camera is a first-person camera. Roll is always zero.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // y rotation, radians
	Pitch    float32 // x rotation, radians

	Sensitivity float32
	Velocity    float32

	VerticalFov float32 // radians
	Aspect      float32
	Near, Far   float32
}

func NewCamera(verticalFov, aspect, near, far float32) *Camera {
	return &Camera{
		Sensitivity: 0.005,
		Velocity:    5.0,
		VerticalFov: verticalFov,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
	}
}

func (c *Camera) MoveTo(position mgl32.Vec3) {
	c.Position = position
}

// Move adds displacement as is, scaling by dt and velocity is up to the caller.
func (c *Camera) Move(displacement mgl32.Vec3) {
	c.Position = c.Position.Add(displacement)
}

func (c *Camera) Rotate(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity

	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	} else if c.Pitch < -MaxPitch {
		c.Pitch = -MaxPitch
	}

	c.Yaw = float32(math.Mod(float64(c.Yaw), twoPi))
}

func (c *Camera) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(c.Yaw).Mul4(mgl32.HomogRotate3DX(c.Pitch))
}

// WorldToViewMatrix inverts T(p)*R. R is orthonormal so its inverse is its transpose.
func (c *Camera) WorldToViewMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	return c.RotationMatrix().Transpose().Mul4(translation)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.VerticalFov, c.Aspect, c.Near, c.Far)
}

// GetForward is the third column of the rotation. The camera looks along -GetForward().
func (c *Camera) GetForward() mgl32.Vec3 {
	return c.RotationMatrix().Col(2).Vec3().Normalize()
}

func (c *Camera) GetRight() mgl32.Vec3 {
	return c.RotationMatrix().Col(0).Vec3().Normalize()
}

func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

// SetAspectFromSize keeps the previous aspect for a minimized (zero height) window.
func (c *Camera) SetAspectFromSize(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.SetAspect(float32(width) / float32(height))
}

// MoveDirection builds a movement direction from held keys.
// Forward and right are flattened onto the XZ plane, up and down are world Y.
// The result is not normalized, diagonal movement is faster.
func (c *Camera) MoveDirection(forward, back, right, left, up, down bool) mgl32.Vec3 {
	var dir mgl32.Vec3

	f := horizontal(c.GetForward())
	r := horizontal(c.GetRight())

	if forward {
		dir = dir.Sub(f)
	}
	if back {
		dir = dir.Add(f)
	}
	if right {
		dir = dir.Add(r)
	}
	if left {
		dir = dir.Sub(r)
	}
	if up {
		dir = dir.Add(mgl32.Vec3{0, 1, 0})
	}
	if down {
		dir = dir.Sub(mgl32.Vec3{0, 1, 0})
	}
	return dir
}

func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	if v.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

// OrbitController looks at Target from a point on a sphere around it.
// Angles are in degrees.
type OrbitController struct {
	Target   mgl32.Vec3
	Distance float32
	Pitch    float32 // x rotation
	Yaw      float32 // y rotation

	Projection *Camera
}

func NewOrbitController(target mgl32.Vec3, dist, pitch, yaw float32) *OrbitController {
	return &OrbitController{
		Target:   target,
		Distance: dist,
		Pitch:    pitch,
		Yaw:      yaw,
	}
}

func (c *OrbitController) WorldToViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix borrows the projection of the attached camera so both views share a lens.
func (c *OrbitController) ProjectionMatrix() mgl32.Mat4 {
	if c.Projection == nil {
		return mgl32.Perspective(mgl32.DegToRad(45), 1, 1, 500)
	}
	return c.Projection.ProjectionMatrix()
}

func (c *OrbitController) Position() mgl32.Vec3 {
	pitch := float64(mgl32.DegToRad(c.Pitch))
	yaw := float64(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{
		c.Distance * float32(math.Cos(pitch)*math.Sin(yaw)),
		c.Distance * float32(math.Sin(pitch)),
		c.Distance * float32(math.Cos(pitch)*math.Cos(yaw)),
	}.Add(c.Target)
}
