package r3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func orbitLocal(scale, spin, radius float32) mgl32.Mat4 {
	return Transform{
		Scale:       UniformScale(scale),
		Rotation:    RotationY(spin),
		Translation: mgl32.Vec3{radius, 0, 0},
	}.Matrix()
}

func TestNodeSatelliteWorldIsParentTimesLocal(t *testing.T) {
	l1 := orbitLocal(1.5, 0.3, 0)
	l2 := orbitLocal(0.7, 1.1, 3)

	primary := NewNode("primary")
	satellite := NewNode("satellite")
	primary.AddChild(satellite)
	primary.SetLocal(l1)
	satellite.SetLocal(l2)
	primary.UpdateWorld()

	assert.Equal(t, l1, primary.World())
	assert.Equal(t, l1.Mul4(l2), satellite.World())

	// cache stays valid when nothing changed
	satellite.UpdateWorld()
	assert.Equal(t, l1.Mul4(l2), satellite.World())
}

func TestNodeTransitiveChain(t *testing.T) {
	l1 := orbitLocal(1.5, 0.3, 0)
	l2 := orbitLocal(0.7, 1.1, 3)
	l3 := orbitLocal(0.4, 2.0, 2)

	sun, earth, moon := NewNode("sun"), NewNode("earth"), NewNode("moon")
	sun.AddChild(earth)
	earth.AddChild(moon)
	sun.SetLocal(l1)
	earth.SetLocal(l2)
	moon.SetLocal(l3)
	sun.UpdateWorld()

	assert.Equal(t, l1.Mul4(l2).Mul4(l3), moon.World())
	assert.Same(t, sun, earth.Parent)
	assert.Same(t, earth, moon.Parent)

	// the moon orbits the earth: its origin sits at earth's origin plus the scaled radius
	earthOrigin := earth.World().Col(3).Vec3()
	moonOrigin := moon.World().Col(3).Vec3()
	assert.InDelta(t, 1.5*0.7*2, moonOrigin.Sub(earthOrigin).Len(), 1e-4)
}

func TestNodeReparent(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Childs)
	assert.Equal(t, []*Node{c}, b.Childs)
	assert.Same(t, b, c.Parent)
}

func TestNodeWalkOrder(t *testing.T) {
	root := NewNode("root")
	x, y, z := NewNode("x"), NewNode("y"), NewNode("z")
	root.AddChild(x)
	x.AddChild(y)
	root.AddChild(z)

	var names []string
	root.Walk(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"root", "x", "y", "z"}, names)
}

func TestTransformOrder(t *testing.T) {
	tr := Transform{
		Scale:       UniformScale(2),
		Rotation:    RotationY(mgl32.DegToRad(90)),
		Translation: mgl32.Vec3{10, 0, 0},
	}

	// scale (1,0,0)->(2,0,0), rotate 90 around Y ->(0,0,-2), translate ->(10,0,-2)
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 10, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, -2, p.Z(), 1e-5)

	assert.Equal(t, mgl32.Ident4(), IdentTransform().Matrix())
}
