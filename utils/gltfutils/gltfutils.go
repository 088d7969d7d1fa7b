package gltfutils

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/scene_demo/gfx"
)

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

// AddMesh writes one indexed triangle list and returns the new mesh index.
func AddMesh(doc *gltf.Document, name string, vertices []gfx.Vertex, indices []uint32) uint32 {
	positions := make([][3]float32, len(vertices))
	colors := make([][4]uint8, len(vertices))
	for i, v := range vertices {
		positions[i] = v.Position
		colors[i] = [4]uint8{toByte(v.Color[0]), toByte(v.Color[1]), toByte(v.Color[2]), 0xff}
	}

	indicesAccessor := modeler.WriteIndices(doc, indices)
	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, positions),
		"COLOR_0":  modeler.WriteColor(doc, colors),
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{
			&gltf.Primitive{
				Indices:    &indicesAccessor,
				Attributes: attributes,
			},
		},
	})
	return uint32(len(doc.Meshes) - 1)
}

// AddNode places a mesh into the default scene. Parent is -1 for root nodes.
func AddNode(doc *gltf.Document, name string, mesh uint32, matrix [16]float32, parent int) uint32 {
	iNode := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:   name,
		Mesh:   gltf.Index(mesh),
		Matrix: matrix,
	})
	if parent < 0 {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, iNode)
	} else {
		doc.Nodes[parent].Children = append(doc.Nodes[parent].Children, iNode)
	}
	return iNode
}

var defaultColor = [3]float32{0.6, 0.6, 0.55}

// LoadMesh merges every triangle primitive with positions into one indexed list.
// Node transforms are ignored, the scene places the model as a whole.
func LoadMesh(path string) ([]gfx.Vertex, []uint32, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Failed to open %q", path)
	}

	var vertices []gfx.Vertex
	var indices []uint32

	for iMesh, mesh := range doc.Meshes {
		for iPrimitive, primitive := range mesh.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posAccessor, ok := primitive.Attributes["POSITION"]
			if !ok {
				continue
			}

			positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "Mesh %d primitive %d positions", iMesh, iPrimitive)
			}

			base := uint32(len(vertices))
			for _, p := range positions {
				vertices = append(vertices, gfx.Vertex{Position: p, Color: shade(p)})
			}

			if primitive.Indices != nil {
				primitiveIndices, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
				if err != nil {
					return nil, nil, errors.Wrapf(err, "Mesh %d primitive %d indices", iMesh, iPrimitive)
				}
				for _, index := range primitiveIndices {
					indices = append(indices, base+index)
				}
			} else {
				for i := range positions {
					indices = append(indices, base+uint32(i))
				}
			}
		}
	}

	if len(indices) == 0 {
		return nil, nil, errors.Errorf("No triangles in %q", path)
	}
	return vertices, indices, nil
}

// shade darkens lower parts so flat colored models keep some depth cues.
func shade(p [3]float32) [3]float32 {
	k := float32(0.75) + 0.25*clamp(p[1]/100, -1, 1)
	return [3]float32{defaultColor[0] * k, defaultColor[1] * k, defaultColor[2] * k}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func toByte(v float32) uint8 {
	return uint8(clamp(v, 0, 1)*255 + 0.5)
}
