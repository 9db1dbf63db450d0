package newton

import (
	"image/color"
	"testing"
)

// rootColor is the colour the kernel reports for the root at idx:
// the paired palette colour brightened by (-2*idx)/42 + 0.5.
func rootColor(f *Fractal, idx int) color.RGBA {
	return Brightness(f.Colors[idx], float32(-2*idx)/MaxIterations+0.5)
}

func TestPixelNearRoot(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7} {
		f := New(n)
		for i, root := range f.Roots {
			// Starting a small distance from a root, one Newton step
			// lands well within Tolerance of it.
			z := root + complex(1e-4, -1e-4)
			if got, want := f.Pixel(z), rootColor(f, i); got != want {
				t.Errorf("n=%d: Pixel near root %d = %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestPixelAtRoot(t *testing.T) {
	f := New(5)
	for i, root := range f.Roots {
		if got, want := f.Pixel(root), rootColor(f, i); got != want {
			t.Errorf("Pixel(root %d) = %v, want %v", i, got, want)
		}
	}
}

func TestPixelZeroDerivative(t *testing.T) {
	// For n >= 2 the derivative n*z^(n-1) vanishes at the origin, so
	// the kernel must bail out before dividing, on the first iteration.
	for _, n := range []int{2, 3, 5, 8} {
		f := New(n)
		if got := f.Pixel(complex(0, 0)); got != DarkGreen {
			t.Errorf("n=%d: Pixel(0) = %v, want %v", n, got, DarkGreen)
		}
	}
}

func TestPixelBudgetExhausted(t *testing.T) {
	// Far from the roots each Newton step only shrinks z by a factor
	// of about (n-1)/n, so from 1e9 the budget of 42 runs out first.
	f := New(5)
	if got := f.Pixel(complex(1e9, 1e9)); got != DarkGreen {
		t.Errorf("Pixel(1e9+1e9i) = %v, want %v", got, DarkGreen)
	}
}

func TestPixelDegreeOne(t *testing.T) {
	// f(z) = z - 1 has a constant derivative of 1 and converges from
	// anywhere in a single step.
	f := New(1)
	for _, z := range []complex128{0, complex(100, -250), complex(-3, 0.5)} {
		if got, want := f.Pixel(z), rootColor(f, 0); got != want {
			t.Errorf("Pixel(%v) = %v, want %v", z, got, want)
		}
	}
}

func TestPow(t *testing.T) {
	if got := pow(complex(2, 0), 10); got != complex(1024, 0) {
		t.Errorf("pow(2, 10) = %v, want 1024", got)
	}
	if got := pow(complex(3, 4), 0); got != complex(1, 0) {
		t.Errorf("pow(3+4i, 0) = %v, want 1", got)
	}
	if got := pow(complex(0, 1), 2); got != complex(-1, 0) {
		t.Errorf("pow(i, 2) = %v, want -1", got)
	}
}
