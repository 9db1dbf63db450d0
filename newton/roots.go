package newton

import "math"

// Roots returns the n-th roots of unity in increasing angular order,
// starting at angle 0. They are the roots of f(z) = z^n - 1, computed
// in floating point without renormalisation. n must be at least 1;
// callers validate before building tables.
func Roots(n int) []complex128 {
	roots := make([]complex128, n)
	for k := range roots {
		theta := (2 * math.Pi * float64(k)) / float64(n)
		roots[k] = complex(math.Cos(theta), math.Sin(theta))
	}
	return roots
}
