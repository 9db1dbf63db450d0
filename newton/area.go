package newton

// Area is the rectangle of the complex plane currently mapped onto the
// image. Transforms return new values rather than mutating in place, so
// zoom and pan compose and test independently. Both extents are assumed
// positive; the transforms are total and do not defend against
// degenerate rectangles, callers preserve the invariant (zoom factors
// are positive and finite, pan keeps extents unchanged).
type Area struct {
	LowerX, UpperX float64
	LowerY, UpperY float64
}

// DefaultArea comfortably contains the unit circle all roots lie on.
var DefaultArea = Area{LowerX: -2, UpperX: 2, LowerY: -2, UpperY: 2}

// Complex maps a pixel coordinate to its point on the complex plane.
// The fraction is pixel/extent, not (pixel+0.5)/extent, so pixel (0,0)
// maps exactly onto (LowerX, LowerY).
func (a Area) Complex(x, y, width, height int) complex128 {
	re := (float64(x)/float64(width))*(a.UpperX-a.LowerX) + a.LowerX
	im := (float64(y)/float64(height))*(a.UpperY-a.LowerY) + a.LowerY
	return complex(re, im)
}

// Zoom rescales both half-extents by factor about the fixed centre.
// Factors below 1 zoom in, factors above 1 zoom out. Both axes scale
// identically, so the aspect ratio is preserved.
func (a Area) Zoom(factor float64) Area {
	xRange := a.UpperX - a.LowerX
	xCenter := a.LowerX + xRange/2
	yRange := a.UpperY - a.LowerY
	yCenter := a.LowerY + yRange/2

	return Area{
		LowerX: xCenter - xRange*factor/2,
		UpperX: xCenter + xRange*factor/2,
		LowerY: yCenter - yRange*factor/2,
		UpperY: yCenter + yRange*factor/2,
	}
}

// Pan translates the x bounds by dx and the y bounds by dy.
func (a Area) Pan(dx, dy float64) Area {
	return Area{
		LowerX: a.LowerX + dx,
		UpperX: a.UpperX + dx,
		LowerY: a.LowerY + dy,
		UpperY: a.UpperY + dy,
	}
}
