package newton

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestRootsCountAndModulus(t *testing.T) {
	for n := 1; n <= 12; n++ {
		roots := Roots(n)
		if len(roots) != n {
			t.Fatalf("Roots(%d) returned %d roots", n, len(roots))
		}
		for k, root := range roots {
			if math.Abs(cmplx.Abs(root)-1) > 1e-12 {
				t.Errorf("Roots(%d)[%d] = %v has modulus %v, want 1", n, k, root, cmplx.Abs(root))
			}
			if cmplx.Abs(pow(root, n)-1) > 1e-12 {
				t.Errorf("Roots(%d)[%d]^%d = %v, want 1", n, k, n, pow(root, n))
			}
		}
	}
}

func TestRootsAngularOrder(t *testing.T) {
	const n = 7
	roots := Roots(n)

	if roots[0] != complex(1, 0) {
		t.Errorf("Roots(%d)[0] = %v, want (1+0i)", n, roots[0])
	}

	want := 2 * math.Pi / n
	for k := 0; k < n-1; k++ {
		got := cmplx.Phase(roots[k+1] / roots[k])
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("angle between roots %d and %d is %v, want %v", k, k+1, got, want)
		}
	}
}
