package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/config"
	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/input"
	"github.com/mogaika/scene_demo/r3d"
)

const (
	QuadName        = "quad"
	EnvironmentName = "environment"

	overviewDistance = 25
	overviewPitch    = 30
	overviewYawSpeed = 6 // degrees per second
)

// OrbitScene draws a quad, a hierarchy of orbiting cubes and a static environment model.
type OrbitScene struct {
	cfg     *config.Scene
	backend gfx.Backend

	width, height int

	camera   *r3d.Camera
	overview *r3d.OrbitController
	viewer   r3d.Viewer

	objects        Objects
	transformation gfx.Buffer

	elapsed     float64
	frame       uint64
	fpsCooldown float32
	snapshot    Snapshot
}

func NewOrbitScene(cfg *config.Scene, backend gfx.Backend, width, height int) *OrbitScene {
	return &OrbitScene{
		cfg:     cfg,
		backend: backend,
		width:   width,
		height:  height,
	}
}

func (s *OrbitScene) Init() error {
	cc := s.cfg.Camera
	aspect := float32(1)
	if s.height > 0 {
		aspect = float32(s.width) / float32(s.height)
	}
	s.camera = r3d.NewCamera(mgl32.DegToRad(cc.Fov), aspect, cc.Near, cc.Far)
	s.camera.Sensitivity = cc.Sensitivity
	s.camera.Velocity = cc.Velocity
	s.camera.MoveTo(mgl32.Vec3(cc.Position))
	s.viewer = s.camera

	s.overview = r3d.NewOrbitController(mgl32.Vec3{}, overviewDistance, overviewPitch, 0)
	s.overview.Projection = s.camera

	buf, err := s.backend.CreateBuffer(gfx.TransformationBufferSize)
	if err != nil {
		return errors.Wrapf(err, "Failed to create transformation buffer")
	}
	s.transformation = buf

	if err := s.createObjects(); err != nil {
		s.Release()
		return err
	}

	s.fpsCooldown = s.cfg.FpsLogInterval
	s.objects.UpdateTransforms()
	s.takeSnapshot()
	return nil
}

func (s *OrbitScene) createObjects() error {
	if !s.cfg.Quad.Hidden {
		mesh, err := s.backend.NewQuad()
		if err != nil {
			return errors.Wrapf(err, "Failed to create quad")
		}
		if err := s.objects.Add(&Object{
			Name:      QuadName,
			Mesh:      mesh,
			Scale:     s.cfg.Quad.Scale,
			Animation: &Animation{RotationRate: -s.cfg.Quad.AngularVelocity},
		}); err != nil {
			return err
		}
	}

	for _, body := range s.cfg.AllBodies() {
		mesh, err := s.backend.NewCube()
		if err != nil {
			return errors.Wrapf(err, "Failed to create cube for %q", body.Name)
		}
		o := &Object{
			Name:  body.Name,
			Mesh:  mesh,
			Scale: body.Scale,
			Animation: &Animation{
				RotationAngle: body.RotationAngle,
				OrbitAngle:    body.OrbitAngle,
				OrbitRadius:   body.OrbitRadius,
				RotationRate:  body.RotationRate,
				OrbitRate:     body.OrbitRate,
			},
		}
		if err := s.objects.Add(o); err != nil {
			gfx.Release(mesh)
			return err
		}
		if body.Parent != "" {
			parent := s.objects.Get(body.Parent)
			if parent == nil {
				return errors.Errorf("Body %q has unknown parent %q", body.Name, body.Parent)
			}
			parent.Node.AddChild(o.Node)
		}
	}

	if env := s.cfg.Environment; env.Path != "" {
		mesh, err := s.backend.LoadModel(env.Path)
		if err != nil {
			return errors.Wrapf(err, "Failed to load environment")
		}
		if err := s.objects.Add(&Object{
			Name: EnvironmentName,
			Mesh: mesh,
			Static: r3d.Transform{
				Scale:       r3d.UniformScale(env.Scale),
				Rotation:    r3d.RotationY(env.RotationY),
				Translation: mgl32.Vec3(env.Translation),
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrbitScene) Update(dt float32, in input.Handler) bool {
	pressed := func(keys ...input.Key) bool {
		for _, k := range keys {
			if in.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}

	dir := s.camera.MoveDirection(
		pressed(input.Up, input.W),
		pressed(input.Down, input.S),
		pressed(input.Right, input.D),
		pressed(input.Left, input.A),
		pressed(input.Space),
		pressed(input.LCtrl),
	)
	if dir != (mgl32.Vec3{}) {
		s.camera.Move(dir.Mul(s.camera.Velocity * dt))
	}

	if dx, dy := in.GetMouseDeltaX(), in.GetMouseDeltaY(); dx != 0 || dy != 0 {
		s.camera.Rotate(float32(dx), float32(dy))
	}

	quit := pressed(input.Esc)

	s.elapsed += float64(dt)
	s.frame++

	s.overview.Yaw = float32(s.elapsed) * overviewYawSpeed
	if pressed(input.Overview) {
		s.viewer = s.overview
	} else {
		s.viewer = s.camera
	}

	AdvanceAll(s.objects.List(), dt)
	s.objects.UpdateTransforms()

	if s.cfg.FpsLogInterval > 0 {
		s.fpsCooldown -= dt
		if s.fpsCooldown < 0 && dt > 0 {
			log.Printf("[scene] fps %d", int(1.0/dt))
			s.fpsCooldown = s.cfg.FpsLogInterval
		}
	}

	s.takeSnapshot()
	return quit
}

func (s *OrbitScene) Render() error {
	s.backend.BindConstantBuffer(gfx.UniformSlot, s.transformation)

	tb := gfx.TransformationBuffer{
		WorldToView: s.viewer.WorldToViewMatrix(),
		Projection:  s.viewer.ProjectionMatrix(),
	}

	for _, o := range s.objects.List() {
		tb.ModelToWorld = o.Node.World()
		if err := gfx.WriteTransformation(s.backend, s.transformation, &tb); err != nil {
			return errors.Wrapf(err, "Failed to upload %q transformation", o.Name)
		}
		o.Mesh.Render()
	}
	return nil
}

func (s *OrbitScene) Release() {
	s.objects.Release()
	if s.transformation != nil {
		gfx.Release(s.transformation)
		s.transformation = nil
	}
}

func (s *OrbitScene) OnWindowResized(width, height int) {
	if s.camera != nil {
		s.camera.SetAspectFromSize(width, height)
	}
	s.width = width
	s.height = height
}

func (s *OrbitScene) Camera() *r3d.Camera { return s.camera }

func (s *OrbitScene) Objects() *Objects { return &s.objects }

func (s *OrbitScene) WindowSize() (int, int) { return s.width, s.height }

// Snapshot returns the state of the last updated frame.
func (s *OrbitScene) Snapshot() Snapshot { return s.snapshot }

func (s *OrbitScene) takeSnapshot() {
	snap := Snapshot{
		Frame: s.frame,
		Time:  s.elapsed,
		Camera: CameraState{
			Position: s.camera.Position,
			Yaw:      s.camera.Yaw,
			Pitch:    s.camera.Pitch,
			Aspect:   s.camera.Aspect,
			Overview: s.viewer == r3d.Viewer(s.overview),
		},
		View:       s.viewer.WorldToViewMatrix(),
		Projection: s.viewer.ProjectionMatrix(),
		Objects:    make([]ObjectState, 0, s.objects.Len()),
	}
	for _, o := range s.objects.List() {
		st := ObjectState{
			Name:  o.Name,
			Local: o.Node.Local,
			World: o.Node.World(),
		}
		if o.Node.Parent != nil {
			st.Parent = o.Node.Parent.Name
		}
		snap.Objects = append(snap.Objects, st)
	}
	s.snapshot = snap
}
