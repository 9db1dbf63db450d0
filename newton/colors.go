package newton

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// DarkGreen is the non-convergent colour, returned when the derivative
// vanishes or the iteration budget runs out before a root is reached.
var DarkGreen = color.RGBA{R: 0, G: 117, B: 44, A: 255}

var basePalette = [5]color.RGBA{
	{R: 255, G: 109, B: 194, A: 255}, // pink
	{R: 200, G: 122, B: 255, A: 255}, // purple
	{R: 135, G: 60, B: 190, A: 255},  // violet
	{R: 112, G: 31, B: 126, A: 255},  // dark purple
	{R: 0, G: 82, B: 172, A: 255},    // blue
}

// Palette returns one colour per root, index-aligned with Roots.
// The first five are fixed; past that a running colour gets one channel
// bumped by 100 (mod 255) per index, cycling through red, green and
// blue every three indices. The running colour carries across indices
// rather than resetting.
func Palette(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	copy(palette, basePalette[:])

	current := color.RGBA{R: 245, G: 109, B: 194, A: 255}
	for i := 5; i < n; i++ {
		switch i % 3 {
		case 0:
			current.R = uint8((int(current.R) + 100) % 255)
		case 1:
			current.G = uint8((int(current.G) + 100) % 255)
		case 2:
			current.B = uint8((int(current.B) + 100) % 255)
		}
		palette[i] = current
	}
	return palette
}

// Brightness lightens c towards white for positive factors and scales
// it towards black for negative ones. Factors outside [-1, 1] saturate.
func Brightness(c color.RGBA, factor float32) color.RGBA {
	if factor > 1 {
		factor = 1
	} else if factor < -1 {
		factor = -1
	}

	v := mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
	if factor < 0 {
		v = v.Mul(1 + factor)
	} else {
		v = v.Add(mgl32.Vec3{255, 255, 255}.Sub(v).Mul(factor))
	}

	return color.RGBA{
		R: uint8(v[0]),
		G: uint8(v[1]),
		B: uint8(v[2]),
		A: c.A,
	}
}
