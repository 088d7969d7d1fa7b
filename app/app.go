// Package app runs the frame loop: events, update, render, present.
package app

import (
	"log"

	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/input"
	"github.com/mogaika/scene_demo/scene"
)

const DefaultMaxDelta = 0.25

type Window interface {
	ShouldStop() bool
	RequestStop()
	ProcessEvents()
	Input() input.Handler
	FramebufferSize() (width, height int)
	// Now is the time in seconds since an arbitrary start.
	Now() float64
	Present()
}

type Options struct {
	// Zero means run until the window stops.
	MaxFrames uint64
	// Longer frames (window dragged, debugger stop) are shortened to this.
	MaxDelta float32
	// Called after every presented frame.
	OnFrame func(frame uint64)
}

func Run(w Window, s scene.Scene, opts Options) error {
	if opts.MaxDelta <= 0 {
		opts.MaxDelta = DefaultMaxDelta
	}

	if err := s.Init(); err != nil {
		return errors.Wrapf(err, "Failed to init scene")
	}
	defer s.Release()

	width, height := w.FramebufferSize()
	last := w.Now()

	var frame uint64
	for !w.ShouldStop() {
		w.ProcessEvents()

		if nw, nh := w.FramebufferSize(); nw != width || nh != height {
			width, height = nw, nh
			s.OnWindowResized(width, height)
		}

		now := w.Now()
		dt := float32(now - last)
		last = now
		if dt < 0 {
			dt = 0
		} else if dt > opts.MaxDelta {
			dt = opts.MaxDelta
		}

		if s.Update(dt, w.Input()) {
			log.Printf("[app] quit requested on frame %d", frame)
			w.RequestStop()
		}

		if err := s.Render(); err != nil {
			return errors.Wrapf(err, "Failed to render frame %d", frame)
		}
		w.Present()

		frame++
		if opts.OnFrame != nil {
			opts.OnFrame(frame)
		}
		if opts.MaxFrames != 0 && frame >= opts.MaxFrames {
			break
		}
	}
	return nil
}
