package scene

import (
	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/r3d"
)

// Object pairs an externally owned mesh with its place in the scene graph.
// Animated objects rebuild Node.Local from Animation, static ones from Static.
type Object struct {
	Name      string
	Mesh      gfx.Mesh
	Node      *r3d.Node
	Scale     float32
	Animation *Animation
	Static    r3d.Transform
}

func (o *Object) UpdateLocal() {
	if o.Animation != nil {
		o.Node.SetLocal(o.Animation.Local(o.Scale).Matrix())
	} else {
		o.Node.SetLocal(o.Static.Matrix())
	}
}

// Objects owns every object of a scene. Insertion order is the draw order,
// release goes the other way round.
type Objects struct {
	list   []*Object
	byName map[string]*Object
}

func (objs *Objects) Add(o *Object) error {
	if objs.byName == nil {
		objs.byName = make(map[string]*Object)
	}
	if _, ok := objs.byName[o.Name]; ok {
		return errors.Errorf("Object %q already exists", o.Name)
	}
	if o.Node == nil {
		o.Node = r3d.NewNode(o.Name)
	}
	objs.byName[o.Name] = o
	objs.list = append(objs.list, o)
	return nil
}

func (objs *Objects) Get(name string) *Object {
	return objs.byName[name]
}

func (objs *Objects) List() []*Object {
	return objs.list
}

func (objs *Objects) Len() int {
	return len(objs.list)
}

// Roots returns nodes without parent in draw order.
func (objs *Objects) Roots() []*r3d.Node {
	var roots []*r3d.Node
	for _, o := range objs.list {
		if o.Node.Parent == nil {
			roots = append(roots, o.Node)
		}
	}
	return roots
}

// UpdateTransforms rebuilds local transforms and then world transforms, once per frame.
func (objs *Objects) UpdateTransforms() {
	for _, o := range objs.list {
		o.UpdateLocal()
	}
	for _, root := range objs.Roots() {
		root.UpdateWorld()
	}
}

func (objs *Objects) Release() {
	for i := len(objs.list) - 1; i >= 0; i-- {
		if objs.list[i].Mesh != nil {
			gfx.Release(objs.list[i].Mesh)
		}
	}
	objs.list = nil
	objs.byName = nil
}
