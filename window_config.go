package main

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log"
	"net"
	"reflect"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/glnewton/newton"
)

func NewConfigWindow(
	app *gtk.Application,
	listener net.Listener,
	cfg Config,
	ctx context.Context,
	quit func(error),
) *ConfigWindow {
	var err error
	w := &ConfigWindow{
		ctx:  ctx,
		quit: quit,

		degree:   cfg.Degree,
		parallel: cfg.Parallel,
		area:     newton.DefaultArea,

		sendMessage: make(chan interface{}),
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(280, 320)

	grid, _ := gtk.GridNew()
	grid.SetRowSpacing(8)
	grid.SetColumnSpacing(12)
	grid.SetMarginTop(12)
	grid.SetMarginBottom(12)
	grid.SetMarginStart(12)
	grid.SetMarginEnd(12)

	degreeLabel, _ := gtk.LabelNew("Degree")
	w.degreeSpin, _ = gtk.SpinButtonNewWithRange(1, 128, 1)
	w.degreeSpin.SetValue(float64(cfg.Degree))
	w.degreeSpin.Connect("value-changed", w.settingsChanged)

	rendererLabel, _ := gtk.LabelNew("Renderer")
	w.rendererCombo, _ = gtk.ComboBoxTextNew()
	w.rendererCombo.AppendText("parallel")
	w.rendererCombo.AppendText("serial")
	if cfg.Parallel {
		w.rendererCombo.SetActive(0)
	} else {
		w.rendererCombo.SetActive(1)
	}
	w.rendererCombo.Connect("changed", w.settingsChanged)

	viewLabel, _ := gtk.LabelNew("Viewport")
	w.viewValue, _ = gtk.LabelNew(formatArea(w.area))

	nameLabel, _ := gtk.LabelNew("File")
	w.nameEntry, _ = gtk.EntryNew()
	w.nameEntry.SetText("newton_fractal.png")

	sizeLabel, _ := gtk.LabelNew("Size")
	w.sizeSpin, _ = gtk.SpinButtonNewWithRange(16, 16384, 16)
	w.sizeSpin.SetValue(2048)

	antialiasLabel, _ := gtk.LabelNew("Antialias")
	w.antialiasSpin, _ = gtk.SpinButtonNewWithRange(0, 4, 0.5)

	saveButton, _ := gtk.ButtonNewWithLabel("Save Image")
	saveButton.Connect("clicked", WrapErrorDialog(w.ApplicationWindow, w.saveClicked))

	grid.Attach(degreeLabel, 0, 0, 1, 1)
	grid.Attach(w.degreeSpin, 1, 0, 1, 1)
	grid.Attach(rendererLabel, 0, 1, 1, 1)
	grid.Attach(w.rendererCombo, 1, 1, 1, 1)
	grid.Attach(viewLabel, 0, 2, 1, 1)
	grid.Attach(w.viewValue, 1, 2, 1, 1)
	grid.Attach(nameLabel, 0, 3, 1, 1)
	grid.Attach(w.nameEntry, 1, 3, 1, 1)
	grid.Attach(sizeLabel, 0, 4, 1, 1)
	grid.Attach(w.sizeSpin, 1, 4, 1, 1)
	grid.Attach(antialiasLabel, 0, 5, 1, 1)
	grid.Attach(w.antialiasSpin, 1, 5, 1, 1)
	grid.Attach(saveButton, 0, 6, 2, 1)

	w.Add(grid)
	w.ShowAll()

	AttachErrorDialog(w.ApplicationWindow, ctx)
	go w.handleReceive(listener)

	return w
}

type ConfigWindow struct {
	*gtk.ApplicationWindow

	ctx  context.Context
	quit func(error)

	degreeSpin    *gtk.SpinButton
	rendererCombo *gtk.ComboBoxText
	viewValue     *gtk.Label
	nameEntry     *gtk.Entry
	sizeSpin      *gtk.SpinButton
	antialiasSpin *gtk.SpinButton

	// Touched on the GTK thread only; the receive goroutine updates
	// area through glib.IdleAdd.
	degree   int
	parallel bool
	area     newton.Area

	sendMessage chan interface{}
}

func formatArea(a newton.Area) string {
	return fmt.Sprintf("%.4g…%.4g, %.4g…%.4g", a.LowerX, a.UpperX, a.LowerY, a.UpperY)
}

func (w *ConfigWindow) settingsChanged() {
	w.degree = w.degreeSpin.GetValueAsInt()
	w.parallel = w.rendererCombo.GetActiveText() != "serial"

	settings := &Settings{
		Degree:   w.degree,
		Parallel: w.parallel,
	}
	go func() {
		select {
		case w.sendMessage <- settings:
		case <-w.ctx.Done():
		}
	}()
}

func (w *ConfigWindow) saveClicked() error {
	name, err := w.nameEntry.GetText()
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("no file name given")
	}

	size := w.sizeSpin.GetValueAsInt()
	opts := SaveOptions{
		Name:      name,
		Width:     size,
		Height:    size,
		Antialias: float32(w.antialiasSpin.GetValue()),
		Parallel:  w.parallel,
	}

	// The save pass rebuilds its own tables so an in-flight degree
	// change cannot tear the root/colour pairing.
	save(w.ctx, w.ApplicationWindow, opts, newton.New(w.degree), w.area)
	return nil
}

func (w *ConfigWindow) handleSend(conn net.Conn) {
	enc := gob.NewEncoder(conn)

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

func (w *ConfigWindow) handleReceive(listener net.Listener) {
	conn, err := listener.Accept()
	if err != nil {
		w.quit(err)
		return
	}

	go w.handleSend(conn)

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
		case *newton.Area:
			glib.IdleAdd(func() {
				w.area = *msg
				w.viewValue.SetText(formatArea(w.area))
			})

		default:
			log.Println("unknown message received", reflect.TypeOf(v))
		}
	}
}
