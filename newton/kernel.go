package newton

import (
	"image/color"
	"math/cmplx"
)

const (
	// Tolerance bounds both root convergence and the near-zero
	// derivative guard.
	Tolerance = 1e-6

	// MaxIterations is the Newton iteration budget per starting point.
	MaxIterations = 42
)

// Fractal holds the index-aligned root and colour tables for
// f(z) = z^n - 1. Built once per degree and read-only afterwards, so
// renderers may share it across goroutines.
type Fractal struct {
	Roots  []complex128
	Colors []color.RGBA
}

// New builds the tables for the given degree. degree must be at least
// 1; the caller validates before the core is invoked.
func New(degree int) *Fractal {
	return &Fractal{
		Roots:  Roots(degree),
		Colors: Palette(degree),
	}
}

// Pixel runs at most MaxIterations Newton steps from z and returns the
// colour of the root the sequence converges to, shaded by root index,
// or DarkGreen when the derivative vanishes or the budget runs out.
//
// The root scan is in table order, so when several roots are within
// Tolerance the lowest index wins. That tie-break is deterministic but
// not nearest-by-distance; it is kept as-is.
func (f *Fractal) Pixel(z complex128) color.RGBA {
	n := len(f.Roots)
	for i := 0; i < MaxIterations; i++ {
		deriv := complex(float64(n), 0) * pow(z, n-1)
		if cmplx.Abs(deriv) <= Tolerance {
			break
		}
		z -= (pow(z, n) - 1) / deriv

		for r, root := range f.Roots {
			if cmplx.Abs(z-root) < Tolerance {
				factor := float32(-2*r)/MaxIterations + 0.5
				return Brightness(f.Colors[r], factor)
			}
		}
	}
	return DarkGreen
}

// pow is z^n for small non-negative n; exponents here never exceed the
// root count.
func pow(z complex128, n int) complex128 {
	w := complex(1, 0)
	for ; n > 0; n-- {
		w *= z
	}
	return w
}
