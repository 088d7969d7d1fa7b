// Package gfx describes the graphics capability the scene draws through.
// Implementations live in glbackend (OpenGL) and in this package (Recorder, headless).
package gfx

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// UniformSlot is the constant buffer slot the vertex shader reads transformations from.
const UniformSlot = 0

type Buffer interface {
	Size() int
}

type Device interface {
	CreateBuffer(size int) (Buffer, error)
}

// Context maps a buffer for writing. Every successful Map must be followed by Unmap
// before the next draw.
type Context interface {
	Map(b Buffer) ([]byte, error)
	Unmap(b Buffer)
	BindConstantBuffer(slot int, b Buffer)
}

// Mesh draws itself with whatever uniform state was bound last.
type Mesh interface {
	Render()
}

type Assets interface {
	NewCube() (Mesh, error)
	NewQuad() (Mesh, error)
	LoadModel(path string) (Mesh, error)
}

// Releaser is implemented by meshes and buffers holding device memory.
type Releaser interface {
	Release()
}

type Backend interface {
	Device
	Context
	Assets
}

func Release(v interface{}) {
	if r, ok := v.(Releaser); ok {
		r.Release()
	}
}

// TransformationBuffer is the per draw uniform payload.
type TransformationBuffer struct {
	ModelToWorld mgl32.Mat4
	WorldToView  mgl32.Mat4
	Projection   mgl32.Mat4
}

const TransformationBufferSize = 3 * 16 * 4

// Encode writes the matrices column-major as little endian float32, the layout of
// three consecutive mat4 in a std140 uniform block.
func (tb *TransformationBuffer) Encode(dst []byte) error {
	if len(dst) < TransformationBufferSize {
		return errors.Errorf("Buffer too small: %d < %d", len(dst), TransformationBufferSize)
	}
	for i, m := range [3]*mgl32.Mat4{&tb.ModelToWorld, &tb.WorldToView, &tb.Projection} {
		for j, v := range m {
			binary.LittleEndian.PutUint32(dst[(i*16+j)*4:], math.Float32bits(v))
		}
	}
	return nil
}

func DecodeTransformationBuffer(src []byte) (TransformationBuffer, error) {
	var tb TransformationBuffer
	if len(src) < TransformationBufferSize {
		return tb, errors.Errorf("Buffer too small: %d < %d", len(src), TransformationBufferSize)
	}
	for i, m := range [3]*mgl32.Mat4{&tb.ModelToWorld, &tb.WorldToView, &tb.Projection} {
		for j := range m {
			m[j] = math.Float32frombits(binary.LittleEndian.Uint32(src[(i*16+j)*4:]))
		}
	}
	return tb, nil
}

// WriteTransformation maps b, writes tb into it and unmaps it again.
func WriteTransformation(ctx Context, b Buffer, tb *TransformationBuffer) error {
	data, err := ctx.Map(b)
	if err != nil {
		return errors.Wrapf(err, "Failed to map transformation buffer")
	}
	defer ctx.Unmap(b)

	return tb.Encode(data)
}
