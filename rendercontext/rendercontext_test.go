package rendercontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type holder struct {
	cleared int
}

func (h *holder) ClearTempRenderData() { h.cleared++ }

func TestStoreSwap(t *testing.T) {
	s := NewStore()
	a, b := &holder{}, &holder{}

	s.Use(a)
	s.Use(b)
	s.Swap()

	// frame 2: only a is drawn, b is cleared at the end of it
	s.Use(a)
	s.Swap()
	assert.Equal(t, 0, a.cleared)
	assert.Equal(t, 1, b.cleared)
	assert.Equal(t, 1, s.len())

	// frame 3: b is drawn again and stays alive
	s.Use(a)
	s.Use(b)
	s.Swap()
	assert.Equal(t, 0, a.cleared)
	assert.Equal(t, 1, b.cleared)
	assert.Equal(t, 2, s.len())
}

func TestStoreRelease(t *testing.T) {
	s := NewStore()
	a, b := &holder{}, &holder{}

	s.Use(a)
	s.Swap()
	s.Use(b)
	s.Release()

	assert.Equal(t, 1, a.cleared)
	assert.Equal(t, 1, b.cleared)
	assert.Equal(t, 0, s.len())
}
