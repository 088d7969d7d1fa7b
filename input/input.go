package input

import (
	"github.com/pkg/errors"
)

type Key int

const (
	Up Key = iota
	Down
	Left
	Right
	W
	A
	S
	D
	Space
	LCtrl
	Esc
	Overview

	KeysCount
)

var keyNames = [...]string{
	Up:       "Up",
	Down:     "Down",
	Left:     "Left",
	Right:    "Right",
	W:        "W",
	A:        "A",
	S:        "S",
	D:        "D",
	Space:    "Space",
	LCtrl:    "LCtrl",
	Esc:      "Esc",
	Overview: "Overview",
}

func (k Key) String() string {
	if k < 0 || k >= KeysCount {
		return "Unknown"
	}
	return keyNames[k]
}

func KeyByName(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return 0, false
}

// Handler is polled once per frame. Mouse deltas are counted since the previous poll.
type Handler interface {
	IsKeyPressed(k Key) bool
	GetMouseDeltaX() int
	GetMouseDeltaY() int
}

// State is a value snapshot of input for one frame.
type State struct {
	Pressed [KeysCount]bool
	MouseDX int
	MouseDY int
}

func (s *State) IsKeyPressed(k Key) bool {
	if k < 0 || k >= KeysCount {
		return false
	}
	return s.Pressed[k]
}

func (s *State) GetMouseDeltaX() int { return s.MouseDX }
func (s *State) GetMouseDeltaY() int { return s.MouseDY }

func (s *State) Press(keys ...Key) *State {
	for _, k := range keys {
		s.Pressed[k] = true
	}
	return s
}

// Frame is one step of a Script: the state is held for Repeat frames.
type Frame struct {
	Keys    []string `yaml:"keys" json:"keys"`
	MouseDX int      `yaml:"mouse_dx" json:"mouse_dx"`
	MouseDY int      `yaml:"mouse_dy" json:"mouse_dy"`
	Repeat  int      `yaml:"repeat" json:"repeat"`
}

// Script replays recorded frames, then reports idle input forever.
type Script struct {
	frames []State
	pos    int
	cur    State
}

func NewScript(frames []Frame) (*Script, error) {
	s := &Script{}
	for i, f := range frames {
		var st State
		for _, name := range f.Keys {
			k, ok := KeyByName(name)
			if !ok {
				return nil, errors.Errorf("Unknown key %q in script frame %d", name, i)
			}
			st.Pressed[k] = true
		}
		st.MouseDX = f.MouseDX
		st.MouseDY = f.MouseDY

		repeat := f.Repeat
		if repeat <= 0 {
			repeat = 1
		}
		for r := 0; r < repeat; r++ {
			s.frames = append(s.frames, st)
		}
	}
	return s, nil
}

// Next advances the script by one frame.
func (s *Script) Next() {
	if s.pos < len(s.frames) {
		s.cur = s.frames[s.pos]
		s.pos++
	} else {
		s.cur = State{}
	}
}

func (s *Script) Done() bool { return s.pos >= len(s.frames) }

// Len is the number of frames with repeats expanded.
func (s *Script) Len() int { return len(s.frames) }

func (s *Script) IsKeyPressed(k Key) bool { return s.cur.IsKeyPressed(k) }
func (s *Script) GetMouseDeltaX() int     { return s.cur.MouseDX }
func (s *Script) GetMouseDeltaY() int     { return s.cur.MouseDY }
