package newton

import (
	"context"
	"image"
	"image/color"
	"sync"
)

// A RenderFunc fills pix, a width*height*4 packed RGBA buffer with
// row-major top-left origin, with the fractal over area. The buffer is
// fully overwritten on every call; there is no incremental update.
type RenderFunc func(ctx context.Context, pix []uint8, area Area, width, height int) error

// Renderer selects between the reference single-goroutine renderer and
// the row-parallel one. Both produce identical buffers for identical
// inputs; the choice is made once at startup.
func (f *Fractal) Renderer(parallel bool) RenderFunc {
	if parallel {
		return f.RenderParallel
	}
	return f.Render
}

// Render is the reference renderer: one kernel invocation per pixel in
// row-major order.
func (f *Fractal) Render(ctx context.Context, pix []uint8, area Area, width, height int) error {
	for y := 0; y < height; y++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.renderRow(pix, area, width, height, y)
	}
	return nil
}

// RenderParallel computes the same buffer with one goroutine per chunk
// of rows. Pixels are independent and workers write disjoint buffer
// regions, so no synchronisation beyond the final wait is needed.
func (f *Fractal) RenderParallel(ctx context.Context, pix []uint8, area Area, width, height int) error {
	chunkSize := 50
	var wg sync.WaitGroup

	for chunkMin := 0; chunkMin < height; chunkMin += chunkSize {
		chunkMax := chunkMin + chunkSize
		if chunkMax > height {
			chunkMax = height
		}

		wg.Add(1)
		go func(yMin, yMax int) {
			defer wg.Done()
			for y := yMin; y < yMax; y++ {
				if ctx.Err() != nil {
					return
				}
				f.renderRow(pix, area, width, height, y)
			}
		}(chunkMin, chunkMax)
	}

	wg.Wait()
	return ctx.Err()
}

func (f *Fractal) renderRow(pix []uint8, area Area, width, height, y int) {
	for x := 0; x < width; x++ {
		c := f.Pixel(area.Complex(x, y, width, height))
		i := (y*width + x) * 4
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// Image wraps the fractal over area as an image.Image that computes
// pixels on demand, for encoders that pull pixels themselves.
func (f *Fractal) Image(area Area, width, height int) image.Image {
	return &fractalImage{
		fractal: f,
		area:    area,
		width:   width,
		height:  height,
	}
}

type fractalImage struct {
	fractal       *Fractal
	area          Area
	width, height int
}

func (i *fractalImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (i *fractalImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

func (i *fractalImage) At(x, y int) color.Color {
	return i.fractal.Pixel(i.area.Complex(x, y, i.width, i.height))
}

func (i *fractalImage) Opaque() bool {
	return true
}
