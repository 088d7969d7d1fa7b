package app

import (
	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/input"
)

// HeadlessWindow advances a fixed time step per frame and feeds a scripted input.
type HeadlessWindow struct {
	Width, Height int
	Step          float64

	Script *input.Script
	// Draws of the previous frame are dropped when a new frame starts.
	Recorder *gfx.Recorder

	now     float64
	stopped bool
}

func NewHeadlessWindow(width, height int, step float64, script *input.Script, rec *gfx.Recorder) *HeadlessWindow {
	if script == nil {
		script, _ = input.NewScript(nil)
	}
	return &HeadlessWindow{
		Width:    width,
		Height:   height,
		Step:     step,
		Script:   script,
		Recorder: rec,
	}
}

func (w *HeadlessWindow) ShouldStop() bool { return w.stopped }
func (w *HeadlessWindow) RequestStop()     { w.stopped = true }

func (w *HeadlessWindow) ProcessEvents() {
	w.Script.Next()
	if w.Recorder != nil {
		w.Recorder.Reset()
	}
}

func (w *HeadlessWindow) Input() input.Handler { return w.Script }

func (w *HeadlessWindow) FramebufferSize() (int, int) { return w.Width, w.Height }

func (w *HeadlessWindow) Resize(width, height int) {
	w.Width = width
	w.Height = height
}

func (w *HeadlessWindow) Now() float64 { return w.now }

func (w *HeadlessWindow) Present() { w.now += w.Step }
