package main

import (
	"context"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/stewi1014/glnewton/newton"
)

// WrapWithProgress replaces *img with a wrapper that counts At calls,
// and returns a supplier reporting the fraction of pixels read so far.
func WrapWithProgress(img *image.Image) func() float64 {
	p := &ProgressImage{
		Image: *img,
	}

	*img = p
	return p.Progress
}

type ProgressImage struct {
	image.Image
	count int
}

func (i *ProgressImage) At(x, y int) color.Color {
	i.count++
	return i.Image.At(x, y)
}

func (i *ProgressImage) Progress() float64 {
	end := i.Bounds().Dx() * i.Bounds().Dy()
	return float64(i.count) / float64(end)
}

func (i *ProgressImage) Opaque() bool {
	return true
}

// AntiAlias9x samples the kernel at nine positions for each pixel,
// antialias pixels apart, returning the average colour. It smooths the
// basin boundaries in saved images; the on-screen renderer never
// antialiases.
func AntiAlias9x(fractal *newton.Fractal, area newton.Area, width, height int, antialias float32) image.Image {
	if antialias == 0 {
		log.Println("image uselessly antialiased with distance of 0")
	}

	return &antialias9xImage{
		fractal: fractal,
		area:    area,
		width:   width,
		height:  height,
		dx:      float64(antialias) * (area.UpperX - area.LowerX) / float64(width),
		dy:      float64(antialias) * (area.UpperY - area.LowerY) / float64(height),
	}
}

type antialias9xImage struct {
	fractal       *newton.Fractal
	area          newton.Area
	width, height int
	dx, dy        float64
}

func (i *antialias9xImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (i *antialias9xImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

func (i *antialias9xImage) Opaque() bool {
	return true
}

func (i *antialias9xImage) At(x, y int) color.Color {
	z := i.area.Complex(x, y, i.width, i.height)

	avg := mgl32.Vec3{}
	for _, ox := range [3]float64{-i.dx, 0, i.dx} {
		for _, oy := range [3]float64{-i.dy, 0, i.dy} {
			c := i.fractal.Pixel(z + complex(ox, oy))
			avg = avg.Add(mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)})
		}
	}
	avg = avg.Mul(1 / float32(9))

	return color.RGBA{
		R: uint8(avg[0]),
		G: uint8(avg[1]),
		B: uint8(avg[2]),
		A: 0xff,
	}
}

// BufferImage precomputes img into memory so encoding afterwards is
// cheap; Buffer fans the work out over column chunks.
func BufferImage(img image.Image) *BufferedImage {
	return &BufferedImage{
		Image:  img,
		height: img.Bounds().Dy(),
	}
}

type BufferedImage struct {
	image.Image
	height int
	buff   []color.Color
}

func (b *BufferedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Image.Bounds().Dx(), b.Image.Bounds().Dy())
}

func (b *BufferedImage) At(x, y int) color.Color {
	return b.buff[x*b.height+y]
}

func (b *BufferedImage) Buffer(ctx context.Context) error {
	b.buff = make([]color.Color, b.Image.Bounds().Dx()*b.Image.Bounds().Dy())

	min, max := b.Image.Bounds().Min, b.Image.Bounds().Max
	chunkSize := 50
	var wg sync.WaitGroup

	for chunkMin := min.X; chunkMin < max.X; chunkMin += chunkSize {
		chunkMax := chunkMin + chunkSize
		if chunkMax > max.X {
			chunkMax = max.X
		}

		wg.Add(1)
		go func(chunkMin, chunkMax int) {
			defer wg.Done()
			i := (chunkMin - min.X) * b.Image.Bounds().Dy()
			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := min.Y; y < max.Y; y++ {
					b.buff[i] = b.Image.At(x, y)
					i++
				}
			}
		}(chunkMin, chunkMax)
	}

	wg.Wait()

	return ctx.Err()
}

func (b *BufferedImage) Opaque() bool {
	return true
}
