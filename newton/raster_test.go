package newton

import (
	"context"
	"image/color"
	"testing"
)

func TestRenderPixelColoursReachable(t *testing.T) {
	const width, height = 512, 512
	f := New(5)
	pix := make([]uint8, width*height*4)

	if err := f.Render(context.Background(), pix, DefaultArea, width, height); err != nil {
		t.Fatal(err)
	}

	// Every pixel is either the fallback or one of the five root
	// colours after the index brightness adjustment.
	allowed := map[color.RGBA]bool{DarkGreen: true}
	for i := range f.Roots {
		allowed[rootColor(f, i)] = true
	}

	seen := map[color.RGBA]bool{}
	for i := 0; i < len(pix); i += 4 {
		c := color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
		if !allowed[c] {
			t.Fatalf("pixel %d has colour %v, not derivable from any base colour", i/4, c)
		}
		seen[c] = true
	}

	// The default view shows all five basins and their fractal
	// boundary, so the buffer cannot be uniform.
	if len(seen) < 2 {
		t.Errorf("buffer is uniform; saw only %v", seen)
	}
}

func TestRenderOverwritesBuffer(t *testing.T) {
	const width, height = 32, 32
	f := New(3)

	pix := make([]uint8, width*height*4)
	for i := range pix {
		pix[i] = 0x13
	}

	if err := f.Render(context.Background(), pix, DefaultArea, width, height); err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("pixel %d has alpha %d, want 255; buffer not fully overwritten", i/4, pix[i])
		}
	}
}

func TestRenderParallelMatchesRender(t *testing.T) {
	const width, height = 128, 96
	f := New(7)
	area := Area{LowerX: -1.2, UpperX: 0.8, LowerY: -0.9, UpperY: 1.1}

	serial := make([]uint8, width*height*4)
	parallel := make([]uint8, width*height*4)

	if err := f.Render(context.Background(), serial, area, width, height); err != nil {
		t.Fatal(err)
	}
	if err := f.RenderParallel(context.Background(), parallel, area, width, height); err != nil {
		t.Fatal(err)
	}

	// Both renderers run the identical per-pixel float sequence, so
	// the buffers match byte for byte.
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("buffers differ at byte %d: serial %d, parallel %d", i, serial[i], parallel[i])
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	const width, height = 64, 64
	f := New(5)
	pix := make([]uint8, width*height*4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.Render(ctx, pix, DefaultArea, width, height); err != context.Canceled {
		t.Errorf("Render on cancelled context returned %v, want %v", err, context.Canceled)
	}
	if err := f.RenderParallel(ctx, pix, DefaultArea, width, height); err != context.Canceled {
		t.Errorf("RenderParallel on cancelled context returned %v, want %v", err, context.Canceled)
	}
}

func TestImageMatchesBuffer(t *testing.T) {
	const width, height = 48, 48
	f := New(4)
	pix := make([]uint8, width*height*4)

	if err := f.Render(context.Background(), pix, DefaultArea, width, height); err != nil {
		t.Fatal(err)
	}

	img := f.Image(DefaultArea, width, height)
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		t.Fatalf("image bounds = %v", img.Bounds())
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			want := color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
			if got := img.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %v, buffer has %v", x, y, got, want)
			}
		}
	}
}

func BenchmarkRender(b *testing.B) {
	f := New(5)
	pix := make([]uint8, 256*256*4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Render(context.Background(), pix, DefaultArea, 256, 256)
	}
}

func BenchmarkRenderParallel(b *testing.B) {
	f := New(5)
	pix := make([]uint8, 256*256*4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.RenderParallel(context.Background(), pix, DefaultArea, 256, 256)
	}
}
