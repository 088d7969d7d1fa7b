package app

import (
	"github.com/mogaika/scene_demo/config"
	"github.com/mogaika/scene_demo/gfx"
	"github.com/mogaika/scene_demo/input"
	"github.com/mogaika/scene_demo/scene"
)

// Autopilot plays the scene's scripted input on a HeadlessWindow with a Recorder backend.
type Autopilot struct {
	Window   *HeadlessWindow
	Recorder *gfx.Recorder
	Scene    *scene.OrbitScene
}

// AutopilotStep is the simulated frame time, one 60 Hz frame.
const AutopilotStep = 1.0 / 60.0

func NewAutopilot(cfg *config.Scene) (*Autopilot, error) {
	script, err := input.NewScript(cfg.Autopilot)
	if err != nil {
		return nil, err
	}

	rec := gfx.NewRecorder()
	w := NewHeadlessWindow(cfg.Window.Width, cfg.Window.Height, AutopilotStep, script, rec)
	return &Autopilot{
		Window:   w,
		Recorder: rec,
		Scene:    scene.NewOrbitScene(cfg, rec, w.Width, w.Height),
	}, nil
}

// FrameLimit is limit when set, otherwise the whole script with repeats expanded.
// An empty script still renders one frame.
func (a *Autopilot) FrameLimit(limit uint64) uint64 {
	if limit != 0 {
		return limit
	}
	if n := a.Window.Script.Len(); n > 0 {
		return uint64(n)
	}
	return 1
}

func (a *Autopilot) Run(opts Options) error {
	opts.MaxFrames = a.FrameLimit(opts.MaxFrames)
	return Run(a.Window, a.Scene, opts)
}
