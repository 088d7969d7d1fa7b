package gfx

import (
	"fmt"

	"github.com/pkg/errors"
)

// Draw is one recorded Mesh.Render with the payload bound at UniformSlot at that moment.
type Draw struct {
	Mesh    string
	Payload TransformationBuffer
}

// Recorder is a headless Backend. It keeps every draw of the current frame
// and checks that buffers are used the way a real device expects.
type Recorder struct {
	Draws    []Draw
	Released []string

	// Set to make the matching calls fail.
	FailCreateBuffer error
	FailLoadModel    error

	buffers []*RecordedBuffer
	bound   map[int]*RecordedBuffer
	meshes  int
}

func NewRecorder() *Recorder {
	return &Recorder{bound: make(map[int]*RecordedBuffer)}
}

type RecordedBuffer struct {
	rec    *Recorder
	id     int
	data   []byte
	mapped bool

	Maps int
}

func (b *RecordedBuffer) Size() int { return len(b.data) }

func (b *RecordedBuffer) Release() {
	b.rec.Released = append(b.rec.Released, fmt.Sprintf("buffer%d", b.id))
	b.data = nil
}

type RecordedMesh struct {
	rec     *Recorder
	Name    string
	Renders int
}

func (m *RecordedMesh) Render() {
	m.Renders++
	m.rec.draw(m)
}

func (m *RecordedMesh) Release() {
	m.rec.Released = append(m.rec.Released, m.Name)
}

func (r *Recorder) CreateBuffer(size int) (Buffer, error) {
	if r.FailCreateBuffer != nil {
		return nil, r.FailCreateBuffer
	}
	if size <= 0 {
		return nil, errors.Errorf("Invalid buffer size %d", size)
	}
	b := &RecordedBuffer{rec: r, id: len(r.buffers), data: make([]byte, size)}
	r.buffers = append(r.buffers, b)
	return b, nil
}

func (r *Recorder) buffer(b Buffer) (*RecordedBuffer, error) {
	rb, ok := b.(*RecordedBuffer)
	if !ok || rb.rec != r {
		return nil, errors.Errorf("Buffer %T does not belong to this recorder", b)
	}
	if rb.data == nil {
		return nil, errors.Errorf("Buffer%d is released", rb.id)
	}
	return rb, nil
}

func (r *Recorder) Map(b Buffer) ([]byte, error) {
	rb, err := r.buffer(b)
	if err != nil {
		return nil, err
	}
	if rb.mapped {
		return nil, errors.Errorf("Buffer%d is already mapped", rb.id)
	}
	rb.mapped = true
	rb.Maps++
	return rb.data, nil
}

func (r *Recorder) Unmap(b Buffer) {
	if rb, err := r.buffer(b); err == nil {
		rb.mapped = false
	}
}

func (r *Recorder) BindConstantBuffer(slot int, b Buffer) {
	rb, err := r.buffer(b)
	if err != nil {
		panic(err)
	}
	r.bound[slot] = rb
}

func (r *Recorder) draw(m *RecordedMesh) {
	d := Draw{Mesh: m.Name}
	if rb, ok := r.bound[UniformSlot]; ok {
		if rb.mapped {
			panic(errors.Errorf("Draw of %q while buffer%d is mapped", m.Name, rb.id))
		}
		tb, err := DecodeTransformationBuffer(rb.data)
		if err != nil {
			panic(err)
		}
		d.Payload = tb
	}
	r.Draws = append(r.Draws, d)
}

// Reset forgets recorded draws, call it between frames.
// Slices taken from Draws before Reset keep their contents.
func (r *Recorder) Reset() {
	r.Draws = nil
}

func (r *Recorder) newMesh(kind string) *RecordedMesh {
	r.meshes++
	return &RecordedMesh{rec: r, Name: fmt.Sprintf("%s#%d", kind, r.meshes)}
}

func (r *Recorder) NewCube() (Mesh, error) { return r.newMesh("cube"), nil }
func (r *Recorder) NewQuad() (Mesh, error) { return r.newMesh("quad"), nil }

func (r *Recorder) LoadModel(path string) (Mesh, error) {
	if r.FailLoadModel != nil {
		return nil, errors.Wrapf(r.FailLoadModel, "Failed to load %q", path)
	}
	return r.newMesh("model:" + path), nil
}
