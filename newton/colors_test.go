package newton

import (
	"image/color"
	"testing"
)

func TestPaletteFixedPrefix(t *testing.T) {
	for n := 1; n <= 5; n++ {
		palette := Palette(n)
		if len(palette) != n {
			t.Fatalf("Palette(%d) returned %d colours", n, len(palette))
		}
		for i, c := range palette {
			if c != basePalette[i] {
				t.Errorf("Palette(%d)[%d] = %v, want %v", n, i, c, basePalette[i])
			}
		}
	}
}

func TestPaletteGenerated(t *testing.T) {
	// The running colour starts at {245, 109, 194} and bumps one
	// channel by 100 (mod 255) per index, cycling R, G, B by i%3.
	want := []color.RGBA{
		{R: 245, G: 109, B: 39, A: 255},  // i=5: B = (194+100)%255
		{R: 90, G: 109, B: 39, A: 255},   // i=6: R = (245+100)%255
		{R: 90, G: 209, B: 39, A: 255},   // i=7: G = (109+100)%255
		{R: 90, G: 209, B: 139, A: 255},  // i=8: B = (39+100)%255
		{R: 190, G: 209, B: 139, A: 255}, // i=9: R = (90+100)%255
	}

	palette := Palette(10)
	if len(palette) != 10 {
		t.Fatalf("Palette(10) returned %d colours", len(palette))
	}
	for i, c := range palette[5:] {
		if c != want[i] {
			t.Errorf("Palette(10)[%d] = %v, want %v", i+5, c, want[i])
		}
	}
}

func TestBrightness(t *testing.T) {
	base := color.RGBA{R: 100, G: 50, B: 200, A: 255}

	tests := []struct {
		name   string
		factor float32
		want   color.RGBA
	}{
		{"identity", 0, base},
		{"white", 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"black", -1, color.RGBA{R: 0, G: 0, B: 0, A: 255}},
		{"halfway to white", 0.5, color.RGBA{R: 177, G: 152, B: 227, A: 255}},
		{"halfway to black", -0.5, color.RGBA{R: 50, G: 25, B: 100, A: 255}},
		{"clamped high", 2, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"clamped low", -2, color.RGBA{R: 0, G: 0, B: 0, A: 255}},
	}

	for _, test := range tests {
		if got := Brightness(base, test.factor); got != test.want {
			t.Errorf("%s: Brightness(%v, %v) = %v, want %v", test.name, base, test.factor, got, test.want)
		}
	}
}
