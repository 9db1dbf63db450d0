package newton

import (
	"math"
	"testing"
)

func areaNear(a, b Area, tolerance float64) bool {
	return math.Abs(a.LowerX-b.LowerX) <= tolerance &&
		math.Abs(a.UpperX-b.UpperX) <= tolerance &&
		math.Abs(a.LowerY-b.LowerY) <= tolerance &&
		math.Abs(a.UpperY-b.UpperY) <= tolerance
}

func TestComplexCornerExact(t *testing.T) {
	areas := []Area{
		DefaultArea,
		{LowerX: -0.75, UpperX: 1.5, LowerY: 0.25, UpperY: 2},
		{LowerX: 3, UpperX: 7, LowerY: -9, UpperY: -1},
	}

	for _, area := range areas {
		// Pixel (0,0) maps onto the lower bounds exactly; the
		// fraction is pixel/extent, not the pixel centre.
		if got := area.Complex(0, 0, 512, 512); got != complex(area.LowerX, area.LowerY) {
			t.Errorf("%+v.Complex(0, 0) = %v, want (%v, %v)", area, got, area.LowerX, area.LowerY)
		}
	}
}

func TestComplexInterpolation(t *testing.T) {
	area := Area{LowerX: -2, UpperX: 2, LowerY: -1, UpperY: 3}

	got := area.Complex(256, 128, 512, 512)
	if real(got) != 0 {
		t.Errorf("real part at half width = %v, want 0", real(got))
	}
	if imag(got) != 0 {
		t.Errorf("imag part at quarter height = %v, want 0", imag(got))
	}
}

func TestZoomIdentity(t *testing.T) {
	area := Area{LowerX: -1.3, UpperX: 0.7, LowerY: -0.4, UpperY: 1.6}
	if got := area.Zoom(1); !areaNear(got, area, 1e-12) {
		t.Errorf("Zoom(1) = %+v, want %+v", got, area)
	}
}

func TestZoomAboutCentre(t *testing.T) {
	area := Area{LowerX: 1, UpperX: 3, LowerY: -5, UpperY: -1}
	got := area.Zoom(0.5)

	want := Area{LowerX: 1.5, UpperX: 2.5, LowerY: -4, UpperY: -2}
	if !areaNear(got, want, 1e-12) {
		t.Errorf("Zoom(0.5) = %+v, want %+v", got, want)
	}
}

func TestZoomRoundTrip(t *testing.T) {
	area := DefaultArea
	got := area.Zoom(0.9).Zoom(1 / 0.9)
	if !areaNear(got, area, 1e-12) {
		t.Errorf("Zoom(0.9).Zoom(1/0.9) = %+v, want %+v", got, area)
	}
}

func TestPan(t *testing.T) {
	area := Area{LowerX: -2, UpperX: 2, LowerY: -2, UpperY: 2}
	got := area.Pan(0.1, -0.25)

	want := Area{LowerX: -1.9, UpperX: 2.1, LowerY: -2.25, UpperY: 1.75}
	if !areaNear(got, want, 1e-12) {
		t.Errorf("Pan(0.1, -0.25) = %+v, want %+v", got, want)
	}

	// Pan never changes the extents.
	if got.UpperX-got.LowerX != area.UpperX-area.LowerX {
		t.Errorf("pan changed the x extent: %v", got.UpperX-got.LowerX)
	}
	if got.UpperY-got.LowerY != area.UpperY-area.LowerY {
		t.Errorf("pan changed the y extent: %v", got.UpperY-got.LowerY)
	}
}
