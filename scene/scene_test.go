package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/scene_demo/config"
	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/input"
)

func newTestScene(t *testing.T) (*OrbitScene, *gfx.Recorder) {
	cfg := config.Default()
	cfg.FpsLogInterval = 0
	rec := gfx.NewRecorder()
	s := NewOrbitScene(cfg, rec, 800, 600)
	require.NoError(t, s.Init())
	return s, rec
}

var idle = &input.State{}

func TestInitCamera(t *testing.T) {
	s, _ := newTestScene(t)

	c := s.Camera()
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position)
	assert.InDelta(t, 45*math.Pi/180, c.VerticalFov, 1e-6)
	assert.InDelta(t, 800.0/600.0, c.Aspect, 1e-6)
	assert.Equal(t, float32(1), c.Near)
	assert.Equal(t, float32(500), c.Far)
	assert.Equal(t, mgl32.Translate3D(0, 0, -5), c.WorldToViewMatrix())
}

func TestRenderOrderAndPayload(t *testing.T) {
	s, rec := newTestScene(t)
	s.Update(0.016, idle)
	require.NoError(t, s.Render())

	require.Len(t, rec.Draws, 5)
	names := make([]string, len(rec.Draws))
	for i, d := range rec.Draws {
		names[i] = d.Mesh
	}
	assert.Equal(t, []string{"quad#1", "cube#2", "cube#3", "cube#4", "model:assets/sponza/sponza.gltf#5"}, names)

	view := s.Camera().WorldToViewMatrix()
	proj := s.Camera().ProjectionMatrix()
	for _, d := range rec.Draws {
		assert.Equal(t, view, d.Payload.WorldToView)
		assert.Equal(t, proj, d.Payload.Projection)
	}

	sun := s.Objects().Get("sun").Node
	earth := s.Objects().Get("earth").Node
	moon := s.Objects().Get("moon").Node
	assert.Equal(t, sun.Local, rec.Draws[1].Payload.ModelToWorld)
	assert.Equal(t, sun.Local.Mul4(earth.Local), rec.Draws[2].Payload.ModelToWorld)
	assert.Equal(t, sun.Local.Mul4(earth.Local).Mul4(moon.Local), rec.Draws[3].Payload.ModelToWorld)
}

func TestEnvironmentTransform(t *testing.T) {
	s, _ := newTestScene(t)
	env := s.Objects().Get("environment").Node.World()

	// origin moved down five units
	origin := env.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, origin.Y(), 1e-5)

	// +X is scaled to 5% and turned a quarter around Y
	x := env.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	assert.InDelta(t, 0, x.X(), 1e-5)
	assert.InDelta(t, -0.05, x.Z(), 1e-5)
}

func TestIdleFrameKeepsCamera(t *testing.T) {
	s, _ := newTestScene(t)
	before := *s.Camera()

	assert.False(t, s.Update(0.016, idle))
	assert.Equal(t, before, *s.Camera())
}

func TestMovementAndRotation(t *testing.T) {
	s, _ := newTestScene(t)

	s.Update(0.5, new(input.State).Press(input.W))
	assert.InDelta(t, 5-5*0.5, s.Camera().Position.Z(), 1e-5)

	s.Update(0.5, new(input.State).Press(input.Space, input.D))
	assert.InDelta(t, 2.5, s.Camera().Position.X(), 1e-5)
	assert.InDelta(t, 2.5, s.Camera().Position.Y(), 1e-5)

	s.Update(0.016, &input.State{MouseDX: 10, MouseDY: -20})
	assert.InDelta(t, -0.05, s.Camera().Yaw, 1e-6)
	assert.InDelta(t, 0.1, s.Camera().Pitch, 1e-6)
}

func TestQuit(t *testing.T) {
	s, _ := newTestScene(t)
	assert.True(t, s.Update(0.016, new(input.State).Press(input.Esc)))
}

func TestAnimationAccumulates(t *testing.T) {
	s, _ := newTestScene(t)
	for i := 0; i < 10; i++ {
		s.Update(0.1, idle)
	}

	earth := s.Objects().Get("earth").Animation
	assert.InDelta(t, 1.0, earth.OrbitAngle, 1e-5)
	assert.InDelta(t, 3.0, earth.RotationAngle, 1e-5)
	moon := s.Objects().Get("moon").Animation
	assert.InDelta(t, 5.0, moon.OrbitAngle, 1e-5)

	quad := s.Objects().Get("quad").Animation
	assert.InDelta(t, -math.Pi/4, quad.RotationAngle, 1e-5)

	snap := s.Snapshot()
	assert.Equal(t, uint64(10), snap.Frame)
	assert.InDelta(t, 1.0, snap.Time, 1e-6)

	// earth sits on its orbit around the sun, radius scaled by the sun
	e, ok := snap.Object("earth")
	require.True(t, ok)
	assert.Equal(t, "sun", e.Parent)
	assert.InDelta(t, 1.5*3, e.Position().Len(), 1e-4)
}

func TestOverview(t *testing.T) {
	s, rec := newTestScene(t)
	s.Update(0.016, new(input.State).Press(input.Overview))
	require.NoError(t, s.Render())

	assert.True(t, s.Snapshot().Camera.Overview)
	assert.NotEqual(t, s.Camera().WorldToViewMatrix(), rec.Draws[0].Payload.WorldToView)

	s.Update(0.016, idle)
	assert.False(t, s.Snapshot().Camera.Overview)
}

func TestWindowResized(t *testing.T) {
	s, _ := newTestScene(t)
	s.OnWindowResized(1000, 500)
	assert.Equal(t, float32(2), s.Camera().Aspect)
	w, h := s.WindowSize()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)

	s.OnWindowResized(1000, 0)
	assert.Equal(t, float32(2), s.Camera().Aspect)
}

func TestInitFailures(t *testing.T) {
	rec := gfx.NewRecorder()
	rec.FailCreateBuffer = errors.New("device lost")
	assert.Error(t, NewOrbitScene(config.Default(), rec, 800, 600).Init())

	rec = gfx.NewRecorder()
	rec.FailLoadModel = errors.New("no such file")
	assert.Error(t, NewOrbitScene(config.Default(), rec, 800, 600).Init())
	assert.Equal(t, []string{"cube#4", "cube#3", "cube#2", "quad#1", "buffer0"}, rec.Released)
}

func TestReleaseOrder(t *testing.T) {
	s, rec := newTestScene(t)
	s.Release()
	assert.Equal(t, []string{
		"model:assets/sponza/sponza.gltf#5", "cube#4", "cube#3", "cube#2", "quad#1", "buffer0",
	}, rec.Released)
	assert.Equal(t, 0, s.Objects().Len())
}

func TestCustomHierarchy(t *testing.T) {
	cfg := config.Default()
	cfg.Quad.Hidden = true
	cfg.Environment.Path = ""
	cfg.Bodies = append(cfg.Bodies, config.Body{Name: "probe", Parent: "moon", Scale: 0.1, OrbitRadius: 1, OrbitRate: 2})
	cfg.FpsLogInterval = 0

	rec := gfx.NewRecorder()
	s := NewOrbitScene(cfg, rec, 640, 480)
	require.NoError(t, s.Init())
	s.Update(0.25, idle)
	require.NoError(t, s.Render())

	require.Len(t, rec.Draws, 4)
	objs := s.Objects()
	want := objs.Get("sun").Node.Local.
		Mul4(objs.Get("earth").Node.Local).
		Mul4(objs.Get("moon").Node.Local).
		Mul4(objs.Get("probe").Node.Local)
	assert.Equal(t, want, rec.Draws[3].Payload.ModelToWorld)
}

func TestAnimationLocal(t *testing.T) {
	a := Animation{OrbitRadius: 2, OrbitRate: math.Pi / 2, RotationRate: 1}
	a = a.Advance(1)
	assert.InDelta(t, math.Pi/2, a.OrbitAngle, 1e-6)
	assert.InDelta(t, 1, a.RotationAngle, 1e-6)

	tr := a.Local(0.5)
	assert.InDelta(t, 0, tr.Translation.X(), 1e-6)
	assert.InDelta(t, 2, tr.Translation.Z(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, tr.Scale)
}

func TestRandomSatellitesAreDrawn(t *testing.T) {
	cfg := config.Default()
	cfg.FpsLogInterval = 0
	cfg.Satellites = config.RandomSatellites{Count: 3, Seed: 7}
	rec := gfx.NewRecorder()
	s := NewOrbitScene(cfg, rec, 800, 600)
	require.NoError(t, s.Init())

	s.Update(0.016, idle)
	require.NoError(t, s.Render())
	assert.Len(t, rec.Draws, 8)

	sun := s.Objects().Get("sun").Node
	assert.Len(t, sun.Childs, 4)
}
