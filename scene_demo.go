package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/app"
	"github.com/mogaika/scene_demo/config"
	"github.com/mogaika/scene_demo/glbackend"
	"github.com/mogaika/scene_demo/scene"
	"github.com/mogaika/scene_demo/utils"
	"github.com/mogaika/scene_demo/web"
)

func init() {
	// glfw and the GL context are bound to the main thread
	runtime.LockOSThread()
}

type flags struct {
	cfgpath string
	backend string
	addr    string
	dump    string
	export  string
	frames  uint64
}

func main() {
	var f flags
	flag.StringVar(&f.cfgpath, "config", "", "Path to scene yaml, built-in scene if empty")
	flag.StringVar(&f.backend, "backend", "gl", "'gl' - opengl window, 'headless' - play autopilot script without gpu")
	flag.Uint64Var(&f.frames, "frames", 0, "Stop after this many frames, 0 - run until closed (headless: until script ends)")
	flag.StringVar(&f.addr, "http", "", "Address of frame inspector server, disabled if empty")
	flag.StringVar(&f.dump, "dump", "", "Dump last frame to file on exit, '-' for log")
	flag.StringVar(&f.export, "export", "", "Export last frame as glb on exit")
	flag.Parse()

	if err := run(&f); err != nil {
		log.Fatal(err)
	}
}

func run(f *flags) error {
	cfg := config.Default()
	if f.cfgpath != "" {
		var err error
		if cfg, err = config.Load(f.cfgpath); err != nil {
			return err
		}
	}

	hub := web.NewHub()
	if f.addr != "" {
		go func() {
			if err := web.StartServer(f.addr, hub, cfg); err != nil {
				log.Printf("[web] Server stopped: %v", err)
			}
		}()
	}

	var s *scene.OrbitScene
	opts := app.Options{
		MaxFrames: f.frames,
		OnFrame: func(frame uint64) {
			hub.Publish(s.Snapshot())
		},
	}

	switch f.backend {
	case "gl":
		w, err := glbackend.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
		if err != nil {
			return err
		}
		defer w.Destroy()

		device, err := glbackend.NewDevice()
		if err != nil {
			return err
		}
		defer device.Destroy()

		width, height := w.FramebufferSize()
		s = scene.NewOrbitScene(cfg, device, width, height)
		if err := app.Run(w, s, opts); err != nil {
			return err
		}
	case "headless":
		a, err := app.NewAutopilot(cfg)
		if err != nil {
			return err
		}
		s = a.Scene
		if err := a.Run(opts); err != nil {
			return err
		}
		log.Printf("[app] headless run finished after %d frames, %d draws in last frame",
			s.Snapshot().Frame, len(a.Recorder.Draws))
	default:
		return errors.Errorf("Unknown backend %q", f.backend)
	}

	return saveLastFrame(s.Snapshot(), f.dump, f.export)
}

func saveLastFrame(last scene.Snapshot, dump, export string) error {
	switch dump {
	case "":
	case "-":
		utils.LogDump(last)
	default:
		if err := utils.DumpToFile(dump, last); err != nil {
			return err
		}
	}

	if export != "" {
		out, err := os.Create(export)
		if err != nil {
			return errors.Wrapf(err, "Failed to create %q", export)
		}
		defer out.Close()
		if err := web.ExportSnapshot(out, &last); err != nil {
			return errors.Wrapf(err, "Failed to export frame %d", last.Frame)
		}
	}
	return nil
}
