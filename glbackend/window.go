package glbackend

import (
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/mogaika/scene_demo/input"
	"github.com/mogaika/scene_demo/rendercontext"
)

var keyMap = [input.KeysCount]glfw.Key{
	input.Up:       glfw.KeyUp,
	input.Down:     glfw.KeyDown,
	input.Left:     glfw.KeyLeft,
	input.Right:    glfw.KeyRight,
	input.W:        glfw.KeyW,
	input.A:        glfw.KeyA,
	input.S:        glfw.KeyS,
	input.D:        glfw.KeyD,
	input.Space:    glfw.KeySpace,
	input.LCtrl:    glfw.KeyLeftControl,
	input.Esc:      glfw.KeyEscape,
	input.Overview: glfw.KeyTab,
}

var clearColor = [3]float32{0.15, 0.15, 0.2}

// Window owns the GLFW window and its GL context. It also acts as the input handler:
// key states and the mouse delta are sampled once per ProcessEvents.
type Window struct {
	win *glfw.Window

	state          input.State
	cursorX        float64
	cursorY        float64
	cursorCaptured bool
}

// NewWindow must be called from the main thread, which has to be locked with runtime.LockOSThread.
func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "Failed to initialize glfw")
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "Failed to create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, errors.Wrap(err, "Failed to initialize OpenGL")
	}
	log.Printf("[gl] Version: %q", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageCallback(openglLogCallback, nil)

	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	return &Window{win: win}, nil
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) ShouldStop() bool { return w.win.ShouldClose() }

func (w *Window) RequestStop() { w.win.SetShouldClose(true) }

// ProcessEvents polls GLFW, samples input and clears the framebuffer for the new frame.
func (w *Window) ProcessEvents() {
	glfw.PollEvents()

	for k, glfwKey := range keyMap {
		w.state.Pressed[k] = w.win.GetKey(glfwKey) == glfw.Press
	}

	x, y := w.win.GetCursorPos()
	if w.cursorCaptured {
		w.state.MouseDX = int(x - w.cursorX)
		w.state.MouseDY = int(y - w.cursorY)
	} else {
		// first sample would jump by the whole cursor position
		w.cursorCaptured = true
	}
	w.cursorX, w.cursorY = x, y

	fbw, fbh := w.FramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1.0)
	gl.ClearDepth(1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (w *Window) Input() input.Handler { return &w.state }

func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *Window) Now() float64 { return glfw.GetTime() }

func (w *Window) Present() {
	w.win.SwapBuffers()
	rendercontext.Swap()
}

func openglLogCallback(source uint32, gltype uint32, id uint32,
	severity uint32, length int32, message string, userParam unsafe.Pointer) {

	if severity == gl.DEBUG_SEVERITY_NOTIFICATION {
		return
	}
	log.Printf("[gl] id:%v severity:0x%x src:0x%x type:0x%x %q", id, severity, source, gltype, message)
	if gltype == gl.DEBUG_TYPE_ERROR {
		panic(message)
	}
}
