package web

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/scene"
	"github.com/mogaika/scene_demo/utils/gltfutils"
)

// ExportSnapshot writes the frame as binary glTF keeping the orbit hierarchy:
// every node carries its local matrix and viewers compose them back.
// The quad gets the quad mesh, bodies are shown as cubes and the environment model is left out.
func ExportSnapshot(w io.Writer, snap *scene.Snapshot) error {
	doc := gltfutils.NewDocument()

	cubeVertices, cubeIndices := gfx.CubeGeometry()
	cube := gltfutils.AddMesh(doc, "cube", cubeVertices, cubeIndices)
	quadVertices, quadIndices := gfx.QuadGeometry()
	quad := gltfutils.AddMesh(doc, "quad", quadVertices, quadIndices)

	nodes := make(map[string]uint32, len(snap.Objects))
	for _, o := range snap.Objects {
		mesh := cube
		switch o.Name {
		case scene.EnvironmentName:
			continue
		case scene.QuadName:
			mesh = quad
		}

		parent := -1
		if o.Parent != "" {
			iParent, ok := nodes[o.Parent]
			if !ok {
				return errors.Errorf("Object %q comes before its parent %q", o.Name, o.Parent)
			}
			parent = int(iParent)
		}
		nodes[o.Name] = gltfutils.AddNode(doc, o.Name, mesh, o.Local, parent)
	}

	return gltfutils.ExportBinary(w, doc)
}
