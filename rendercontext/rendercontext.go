// Package rendercontext frees device data of holders that were not used during a frame.
// A holder calls Use every time it is drawn, the frame loop calls Swap once per frame.
package rendercontext

type TempDataHolder interface {
	ClearTempRenderData()
}

var global = NewStore()

func Use(dh TempDataHolder) { global.Use(dh) }
func Swap()                 { global.Swap() }
func Release()              { global.Release() }

type Store struct {
	used    map[TempDataHolder]struct{}
	notUsed map[TempDataHolder]struct{}
}

func NewStore() *Store {
	return &Store{
		used:    make(map[TempDataHolder]struct{}),
		notUsed: make(map[TempDataHolder]struct{}),
	}
}

// Swap clears holders that skipped the whole previous frame.
func (s *Store) Swap() {
	for dh := range s.notUsed {
		dh.ClearTempRenderData()
	}
	s.notUsed = s.used
	s.used = make(map[TempDataHolder]struct{})
}

func (s *Store) Use(dh TempDataHolder) {
	delete(s.notUsed, dh)
	s.used[dh] = struct{}{}
}

// Release clears every tracked holder, used on teardown.
func (s *Store) Release() {
	for dh := range s.notUsed {
		dh.ClearTempRenderData()
	}
	for dh := range s.used {
		dh.ClearTempRenderData()
	}
	s.notUsed = make(map[TempDataHolder]struct{})
	s.used = make(map[TempDataHolder]struct{})
}

func (s *Store) len() int {
	return len(s.used) + len(s.notUsed)
}
