package main

import (
	"context"
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/glnewton/newton"
)

const debug = true

type Config struct {
	Degree        int
	Width, Height int
	Parallel      bool
	Export        string
	Basic         bool
}

func init() {
	gob.Register(&newton.Area{})
	gob.Register(&Settings{})
}

func main() {
	var cfg Config
	flag.IntVar(&cfg.Degree, "n", 5, "degree of z^n - 1; one basin per root of unity")
	flag.IntVar(&cfg.Width, "width", 512, "pixel buffer width")
	flag.IntVar(&cfg.Height, "height", 512, "pixel buffer height")
	serial := flag.Bool("serial", false, "use the reference single-goroutine renderer")
	flag.StringVar(&cfg.Export, "o", "", "export a PNG of the default viewport before opening the viewer")
	flag.BoolVar(&cfg.Basic, "basic", false, "plain key-polling viewer without the config window")
	flag.Parse()
	cfg.Parallel = !*serial

	// The degree may also be given as the sole positional argument.
	if arg := flag.Arg(0); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a number; try: glnewton 5\n", arg)
			os.Exit(1)
		}
		cfg.Degree = n
	}
	if cfg.Degree <= 0 {
		fmt.Fprintln(os.Stderr, "the degree must be a natural number; try: glnewton 5")
		os.Exit(1)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		fmt.Fprintln(os.Stderr, "width and height must be positive")
		os.Exit(1)
	}

	if cfg.Export != "" {
		if err := exportPNG(cfg); err != nil {
			log.Fatalln(err)
		}
	}

	mainContext, mainQuit := context.WithCancelCause(context.Background())

	go func() {
		if cfg.Basic {
			mainQuit(glfwMain(mainContext, cfg))
		} else {
			mainQuit(gtkMain(mainContext, cfg))
		}
	}()

	<-mainContext.Done()
	if err := context.Cause(mainContext); err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
	}
}

func gtkMain(ctx context.Context, cfg Config) error {
	runtime.LockOSThread()

	gtk.Init(&os.Args)
	app, err := gtk.ApplicationNew("com.github.stewi1014.glnewton", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		client, listener := NewPipeListener(appContext)

		renderWindow := NewRenderWindow(app, client, cfg, appContext, appQuit)
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		renderWindow.SetTitle("GLNewton Render")

		configWindow := NewConfigWindow(app, listener, cfg, appContext, appQuit)
		configWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		configWindow.SetTitle("GLNewton Config")
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	return context.Cause(appContext)
}

// exportPNG renders the default viewport once and writes it out, the
// way the interactive modes never do on their own.
func exportPNG(cfg Config) error {
	fractal := newton.New(cfg.Degree)
	render := fractal.Renderer(cfg.Parallel)

	pix := make([]uint8, cfg.Width*cfg.Height*4)
	if err := render(context.Background(), pix, newton.DefaultArea, cfg.Width, cfg.Height); err != nil {
		return err
	}

	file, err := os.Create(cfg.Export)
	if err != nil {
		return err
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: cfg.Width * 4,
		Rect:   image.Rect(0, 0, cfg.Width, cfg.Height),
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %v: %w", cfg.Export, err)
	}
	return file.Close()
}
