package data

import (
	"fmt"

	"github.com/ethanio12345/OpenMC/internal/utils"
)

// Tab1 is an ENDF TAB1-style tabulated function of one variable. Only a
// single lin-lin interpolation region is supported; evaluations carrying
// NR > 1 are rejected at construction.
type Tab1 struct {
	X, Y []float64
}

// NewTab1 validates and builds a tabulated function. nr is the number of
// interpolation regions declared by the evaluation.
func NewTab1(nr int, x, y []float64) (Tab1, error) {
	if nr > 1 {
		return Tab1{}, fmt.Errorf("%w: multi-region tabulation (NR=%d)", ErrBadData, nr)
	}
	if len(x) != len(y) || len(x) < 2 {
		return Tab1{}, fmt.Errorf("%w: tabulation with %d abscissae, %d ordinates", ErrBadData, len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return Tab1{}, fmt.Errorf("%w: non-increasing abscissa at index %d", ErrBadData, i)
		}
	}
	return Tab1{X: x, Y: y}, nil
}

// Evaluate interpolates lin-lin, clamping to the end ordinates outside the
// tabulated range.
func (t Tab1) Evaluate(x float64) float64 {
	n := len(t.X)
	if x <= t.X[0] {
		return t.Y[0]
	}
	if x >= t.X[n-1] {
		return t.Y[n-1]
	}
	i := utils.BinarySearch(t.X, x)
	return utils.LinLin(x, t.X[i], t.X[i+1], t.Y[i], t.Y[i+1])
}
