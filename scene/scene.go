package scene

import (
	"github.com/mogaika/scene_demo/input"
)

// Scene is driven by the frame loop: Update then Render, once per frame.
type Scene interface {
	Init() error
	// Update returns true when the user asked to quit.
	Update(dt float32, in input.Handler) bool
	Render() error
	Release()
	OnWindowResized(width, height int)
}
