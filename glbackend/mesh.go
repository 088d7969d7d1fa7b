package glbackend

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/rendercontext"
)

// glMesh keeps its geometry on the CPU side and uploads it on first draw.
// GL objects are dropped by rendercontext when the mesh skips a frame.
type glMesh struct {
	device *Device
	name   string

	vertices []gfx.Vertex
	indices  []uint32

	glInited     bool
	glVAO        uint32
	glVBO        uint32
	glEBO        uint32
	indexesCount int32
}

func (d *Device) newMesh(name string, vertices []gfx.Vertex, indices []uint32) *glMesh {
	return &glMesh{
		device:   d,
		name:     name,
		vertices: vertices,
		indices:  indices,
	}
}

func (m *glMesh) useGL() {
	rendercontext.Use(m)
	if m.glInited {
		return
	}
	m.glInited = true

	var vertex gfx.Vertex
	stride := int(unsafe.Sizeof(vertex))

	gl.GenVertexArrays(1, &m.glVAO)
	gl.BindVertexArray(m.glVAO)

	gl.GenBuffers(1, &m.glVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.glVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.vertices)*stride, gl.Ptr(m.vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.Position))
	gl.EnableVertexAttribArray(attribPosition)

	gl.VertexAttribPointerWithOffset(attribColor, 3, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.Color))
	gl.EnableVertexAttribArray(attribColor)

	gl.GenBuffers(1, &m.glEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.glEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(m.indices), gl.Ptr(m.indices), gl.STATIC_DRAW)
	m.indexesCount = int32(len(m.indices))

	runtime.KeepAlive(m.vertices)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

func (m *glMesh) ClearTempRenderData() {
	if !m.glInited {
		return
	}
	m.glInited = false

	gl.DeleteVertexArrays(1, &m.glVAO)
	gl.DeleteBuffers(1, &m.glVBO)
	gl.DeleteBuffers(1, &m.glEBO)
}

func (m *glMesh) Render() {
	if len(m.indices) == 0 {
		return
	}
	m.useGL()

	gl.UseProgram(m.device.program.Id)
	gl.BindVertexArray(m.glVAO)
	gl.DrawElements(gl.TRIANGLES, m.indexesCount, gl.UNSIGNED_INT, unsafe.Pointer(nil))
	gl.BindVertexArray(0)
}

func (m *glMesh) Release() {
	m.ClearTempRenderData()
	m.vertices = nil
	m.indices = nil
}
