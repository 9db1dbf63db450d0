package main

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"net"
	"reflect"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/glnewton/newton"
)

const (
	zoomInFactor  = 0.9
	zoomOutFactor = 1.1

	// initialMovementStep is the pan distance per key press before any
	// zooming; every zoom multiplies the step by its factor, so panning
	// stays proportional to the visible extent.
	initialMovementStep = 0.1
)

// X11 keysyms for the arrow keys.
const (
	gdkKeyUp   = 0xff52
	gdkKeyDown = 0xff54
)

func NewRenderWindow(
	app *gtk.Application,
	conn net.Conn,
	cfg Config,
	ctx context.Context,
	quit func(error),
) *RenderWindow {
	var err error
	w := &RenderWindow{
		ctx:  ctx,
		quit: quit,

		width:  cfg.Width,
		height: cfg.Height,

		fractal:      newton.New(cfg.Degree),
		parallel:     cfg.Parallel,
		area:         newton.DefaultArea,
		movementStep: initialMovementStep,

		front: make([]uint8, cfg.Width*cfg.Height*4),
		back:  make([]uint8, cfg.Width*cfg.Height*4),

		recompute:   make(chan struct{}, 1),
		sendMessage: make(chan interface{}),
	}

	go w.handleSend(conn)

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(cfg.Width, cfg.Height)

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("resize", w.resize)

	w.gla.SetEvents(int(gdk.SCROLL_MASK))
	w.gla.Connect("scroll-event", w.scroll)
	w.Connect("key-press-event", w.keyPress)

	w.Add(w.gla)
	w.ShowAll()

	go w.renderLoop()
	go w.handleReceive(conn)

	w.sendArea()
	w.requestRecompute()

	return w
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla *gtk.GLArea

	ctx  context.Context
	quit func(error)

	width, height int
	texture       *pixelTexture

	// mu guards everything below. The render loop swaps front and back
	// once a pass finishes; glaRender uploads front when dirty.
	mu           sync.Mutex
	fractal      *newton.Fractal
	parallel     bool
	area         newton.Area
	movementStep float64
	front, back  []uint8
	dirty        bool

	recompute   chan struct{}
	sendMessage chan interface{}
}

func glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	}

	sourceStr := "unknownSource"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "depreciatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		typeStr = "marker"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	log.Printf("%v(%v): %v; %v\n", sourceStr, severityStr, typeStr, message)
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := gl.Init()
	if err != nil {
		w.quit(fmt.Errorf("gl.Init: %w", err))
		return
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Println("OpenGL version", version)

	gl.DebugMessageCallback(glDebugMessage, nil)
	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	w.texture, err = newPixelTexture(w.width, w.height)
	if err != nil {
		w.quit(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) {
	if w.texture == nil {
		return
	}

	gla.AttachBuffers()

	w.mu.Lock()
	if w.dirty {
		w.texture.Upload(w.front)
		w.dirty = false
	}
	w.mu.Unlock()

	gl.Clear(gl.COLOR_BUFFER_BIT)
	w.texture.Draw()
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	// The pixel buffer keeps its startup size for the whole process;
	// the texture just stretches over the viewport.
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (w *RenderWindow) keyPress(_ *gtk.ApplicationWindow, event *gdk.Event) {
	key := gdk.EventKeyNewFromEvent(event)

	switch key.KeyVal() {
	case gdkKeyUp:
		w.zoom(zoomInFactor)
		return
	case gdkKeyDown:
		w.zoom(zoomOutFactor)
		return
	}

	switch gdk.KeyvalToUnicode(key.KeyVal()) {
	case 'w':
		w.pan(0, -1)
	case 's':
		w.pan(0, 1)
	case 'a':
		w.pan(-1, 0)
	case 'd':
		w.pan(1, 0)
	}
}

func (w *RenderWindow) scroll(gla *gtk.GLArea, event *gdk.Event) {
	scroll := gdk.EventScrollNewFromEvent(event)

	if scroll.Direction() == gdk.SCROLL_UP {
		w.zoom(zoomInFactor)
	} else if scroll.Direction() == gdk.SCROLL_DOWN {
		w.zoom(zoomOutFactor)
	}
}

func (w *RenderWindow) zoom(factor float64) {
	w.mu.Lock()
	w.area = w.area.Zoom(factor)
	w.movementStep *= factor
	w.mu.Unlock()

	w.sendArea()
	w.requestRecompute()
}

func (w *RenderWindow) pan(dx, dy float64) {
	w.mu.Lock()
	step := mgl64.Vec2{dx, dy}.Mul(w.movementStep)
	w.area = w.area.Pan(step.X(), step.Y())
	w.mu.Unlock()

	w.sendArea()
	w.requestRecompute()
}

func (w *RenderWindow) sendArea() {
	w.mu.Lock()
	area := w.area
	w.mu.Unlock()

	go func() {
		select {
		case w.sendMessage <- &area:
		case <-w.ctx.Done():
		}
	}()
}

// requestRecompute marks the viewport dirty; the render loop coalesces
// requests so at most one pass runs at a time and at most one is
// queued behind it.
func (w *RenderWindow) requestRecompute() {
	select {
	case w.recompute <- struct{}{}:
	default:
	}
}

func (w *RenderWindow) renderLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.recompute:
		}

		w.mu.Lock()
		render := w.fractal.Renderer(w.parallel)
		area := w.area
		back := w.back
		w.mu.Unlock()

		if err := render(w.ctx, back, area, w.width, w.height); err != nil {
			return
		}

		w.mu.Lock()
		w.front, w.back = w.back, w.front
		w.dirty = true
		w.mu.Unlock()

		glib.IdleAdd(w.gla.QueueDraw)
	}
}

func (w *RenderWindow) handleSend(conn net.Conn) {
	enc := gob.NewEncoder(conn)
	defer conn.Close()

	for {
		select {
		case msg := <-w.sendMessage:
			err := enc.Encode(&msg)
			if err != nil {
				w.quit(err)
				return
			}
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *RenderWindow) handleReceive(conn net.Conn) {
	dec := gob.NewDecoder(conn)

	for {
		var v interface{}
		err := dec.Decode(&v)
		if err != nil {
			w.quit(err)
			conn.Close()
			return
		}

		switch msg := v.(type) {
		case *Settings:
			w.mu.Lock()
			if msg.Degree != len(w.fractal.Roots) {
				w.fractal = newton.New(msg.Degree)
			}
			w.parallel = msg.Parallel
			w.mu.Unlock()
			w.requestRecompute()

		default:
			log.Println("unknown message received", reflect.TypeOf(v))
		}
	}
}
