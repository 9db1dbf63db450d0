package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/stewi1014/glnewton/newton"
)

type SaveOptions struct {
	Name          string
	Width, Height int
	Antialias     float32
	Parallel      bool
}

// save renders the fractal over area at the requested size and encodes
// it to a PNG, with a cancellable progress dialog. Cancelling removes
// the partial file.
func save(
	ctx context.Context,
	parent *gtk.ApplicationWindow,
	opts SaveOptions,
	fractal *newton.Fractal,
	area newton.Area,
) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer CatchPanicToContext(cancel)
	AttachErrorDialog(parent, ctx)

	file, err := os.Create(opts.Name)
	if err != nil {
		cancel(err)
		return
	}
	context.AfterFunc(ctx, func() {
		file.Close()
	})
	keepFile := context.AfterFunc(ctx, func() {
		os.Remove(file.Name())
	})

	dialog, err := NewProgressDialog(
		ctx, parent, "Save Image",
		fmt.Sprintf("Saving %v", file.Name()),
		func() { cancel(context.Canceled) },
	)
	if err != nil {
		cancel(err)
		return
	}

	var img image.Image
	if opts.Antialias > 0 {
		img = AntiAlias9x(fractal, area, opts.Width, opts.Height, opts.Antialias)
	} else {
		img = fractal.Image(area, opts.Width, opts.Height)
	}

	go func() {
		defer CatchPanicToContext(cancel)

		if opts.Parallel {
			dialog.AddProgressSupplier(WrapWithProgress(&img))
			buff := BufferImage(img)
			if err := buff.Buffer(ctx); err != nil {
				cancel(err)
				return
			}
			img = buff
		}

		dialog.AddProgressSupplier(WrapWithProgress(&img))
		if err := png.Encode(file, img); err != nil {
			cancel(err)
			return
		}

		keepFile()
		log.Printf("saved %v", file.Name())
		glib.IdleAdd(func() {
			cancel(context.Canceled)
		})
	}()
}
