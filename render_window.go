package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/stewi1014/glnewton/newton"
)

// glfwMain runs the basic viewer: one fixed-size window, per-frame key
// polling and a synchronous recompute whenever the viewport changes.
// Up/Down zoom, WASD pan, Escape quits. There is no config window in
// this mode; the degree comes from the command line.
func glfwMain(ctx context.Context, cfg Config) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(
		cfg.Width,
		cfg.Height,
		"GLNewton",
		nil,
		nil,
	)
	if err != nil {
		return fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init failed: %w", err)
	}

	texture, err := newPixelTexture(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	fractal := newton.New(cfg.Degree)
	render := fractal.Renderer(cfg.Parallel)
	area := newton.DefaultArea
	movementStep := initialMovementStep

	pix := make([]uint8, cfg.Width*cfg.Height*4)
	if err := render(ctx, pix, area, cfg.Width, cfg.Height); err != nil {
		return err
	}
	texture.Upload(pix)

	for !window.ShouldClose() {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		recompute := false
		if window.GetKey(glfw.KeyUp) == glfw.Press {
			area = area.Zoom(zoomInFactor)
			movementStep *= zoomInFactor
			recompute = true
		}
		if window.GetKey(glfw.KeyDown) == glfw.Press {
			area = area.Zoom(zoomOutFactor)
			movementStep *= zoomOutFactor
			recompute = true
		}
		if window.GetKey(glfw.KeyW) == glfw.Press {
			area = area.Pan(0, -movementStep)
			recompute = true
		}
		if window.GetKey(glfw.KeyS) == glfw.Press {
			area = area.Pan(0, movementStep)
			recompute = true
		}
		if window.GetKey(glfw.KeyA) == glfw.Press {
			area = area.Pan(-movementStep, 0)
			recompute = true
		}
		if window.GetKey(glfw.KeyD) == glfw.Press {
			area = area.Pan(movementStep, 0)
			recompute = true
		}
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		if recompute {
			if err := render(ctx, pix, area, cfg.Width, cfg.Height); err != nil {
				return err
			}
			texture.Upload(pix)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		texture.Draw()
		window.SwapBuffers()
		glfw.PollEvents()
	}

	return nil
}
