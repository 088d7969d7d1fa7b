package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a scene graph entry. World transform of a child is parent.World() * child.Local.
type Node struct {
	Name  string
	Local mgl32.Mat4

	Parent *Node
	Childs []*Node

	world mgl32.Mat4
}

func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Local: mgl32.Ident4(),
		world: mgl32.Ident4(),
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Childs = append(n.Childs, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Childs {
		if c == child {
			n.Childs = append(n.Childs[:i], n.Childs[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (n *Node) SetLocal(local mgl32.Mat4) {
	n.Local = local
}

// World returns the transform cached by the last UpdateWorld.
func (n *Node) World() mgl32.Mat4 {
	return n.world
}

// UpdateWorld recomputes and caches world transforms of the whole subtree, parents first.
func (n *Node) UpdateWorld() {
	if n.Parent == nil {
		n.world = n.Local
	} else {
		n.world = n.Parent.world.Mul4(n.Local)
	}
	for _, child := range n.Childs {
		child.UpdateWorld()
	}
}

// Walk visits the subtree depth first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Childs {
		child.Walk(fn)
	}
}
