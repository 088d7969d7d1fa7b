// Package glbackend implements the scene's graphics and window capabilities on OpenGL 4.3
// and GLFW. Everything here must run on the thread that owns the GL context.
package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/rendercontext"
	"github.com/mogaika/scene_demo/utils/gltfutils"
)

// Device is a gfx.Backend over the current GL context.
type Device struct {
	program *Program
	buffers []*uniformBuffer
}

func NewDevice() (*Device, error) {
	program, err := LoadProgram(defaultVertexShader, defaultFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to load default program")
	}

	// the quad spins and is seen from both sides
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)

	return &Device{program: program}, nil
}

// Destroy frees all device objects, meshes included.
func (d *Device) Destroy() {
	rendercontext.Release()
	for _, b := range d.buffers {
		b.Release()
	}
	d.buffers = nil
	if d.program != nil {
		d.program.Delete()
		d.program = nil
	}
}

type uniformBuffer struct {
	id     uint32
	size   int
	mapped bool
}

func (b *uniformBuffer) Size() int { return b.size }

func (b *uniformBuffer) Release() {
	if b.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
}

func (d *Device) CreateBuffer(size int) (gfx.Buffer, error) {
	if size <= 0 {
		return nil, errors.Errorf("Invalid buffer size %d", size)
	}
	b := &uniformBuffer{size: size}

	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		b.Release()
		return nil, errors.Errorf("Failed to create uniform buffer of %d bytes: gl error 0x%x", size, code)
	}

	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *Device) buffer(b gfx.Buffer) (*uniformBuffer, error) {
	ub, ok := b.(*uniformBuffer)
	if !ok {
		return nil, errors.Errorf("Buffer %T is not a GL uniform buffer", b)
	}
	if ub.id == 0 {
		return nil, errors.New("Buffer is released")
	}
	return ub, nil
}

// Map discards the previous contents, the whole buffer has to be written.
func (d *Device) Map(b gfx.Buffer) ([]byte, error) {
	ub, err := d.buffer(b)
	if err != nil {
		return nil, err
	}
	if ub.mapped {
		return nil, errors.New("Buffer is already mapped")
	}

	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.id)
	ptr := gl.MapBufferRange(gl.UNIFORM_BUFFER, 0, ub.size, gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
		return nil, errors.Errorf("Failed to map uniform buffer: gl error 0x%x", gl.GetError())
	}
	ub.mapped = true
	return unsafe.Slice((*byte)(ptr), ub.size), nil
}

func (d *Device) Unmap(b gfx.Buffer) {
	ub, err := d.buffer(b)
	if err != nil || !ub.mapped {
		return
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.id)
	gl.UnmapBuffer(gl.UNIFORM_BUFFER)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	ub.mapped = false
}

func (d *Device) BindConstantBuffer(slot int, b gfx.Buffer) {
	ub, err := d.buffer(b)
	if err != nil {
		panic(err)
	}
	gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(slot), ub.id)
}

func (d *Device) NewCube() (gfx.Mesh, error) {
	vertices, indices := gfx.CubeGeometry()
	return d.newMesh("cube", vertices, indices), nil
}

func (d *Device) NewQuad() (gfx.Mesh, error) {
	vertices, indices := gfx.QuadGeometry()
	return d.newMesh("quad", vertices, indices), nil
}

func (d *Device) LoadModel(path string) (gfx.Mesh, error) {
	vertices, indices, err := gltfutils.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	return d.newMesh(path, vertices, indices), nil
}
