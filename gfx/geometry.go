package gfx

type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

var cubeFaces = [6]struct {
	normal, u, v [3]float32
	color        [3]float32
}{
	{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0.9, 0.3, 0.3}},
	{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0.3, 0.9, 0.3}},
	{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}, [3]float32{0.3, 0.3, 0.9}},
	{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}, [3]float32{0.9, 0.9, 0.3}},
	{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0.3, 0.9, 0.9}},
	{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0.9, 0.3, 0.9}},
}

// CubeGeometry is a unit cube centered at the origin, 4 vertices per face so every face
// has its own color. Triangles are counter-clockwise seen from outside.
func CubeGeometry() ([]Vertex, []uint32) {
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	for _, f := range cubeFaces {
		base := uint32(len(vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var p [3]float32
			for i := range p {
				p[i] = 0.5 * (f.normal[i] + c[0]*f.u[i] + c[1]*f.v[i])
			}
			vertices = append(vertices, Vertex{Position: p, Color: f.color})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// QuadGeometry is a unit quad in the XY plane facing +Z.
func QuadGeometry() ([]Vertex, []uint32) {
	vertices := []Vertex{
		{Position: [3]float32{-0.5, -0.5, 0}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{0.5, -0.5, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{0.5, 0.5, 0}, Color: [3]float32{0, 0, 1}},
		{Position: [3]float32{-0.5, 0.5, 0}, Color: [3]float32{1, 1, 0}},
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}
