package utils

import (
	"cmp"
	"math"

	"golang.org/x/exp/constraints"
)

func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

type Number interface {
	constraints.Float | constraints.Integer
}

func SumSlice[T Number](arr []T) (r T) {
	for i := range arr {
		r += arr[i]
	}
	return
}

func Average[T Number](s []T) (mean float64) {
	for i := range s {
		mean += float64(s[i])
	}
	mean /= float64(len(s))
	return
}

func MeanAndVariance[T Number](s []T, unbiased bool) (mean, variance float64) {
	mean = Average(s)
	for i := range s {
		variance += (float64(s[i]) - mean) * (float64(s[i]) - mean)
	}
	if unbiased {
		variance /= float64(len(s) - 1)
	} else {
		variance /= float64(len(s))
	}

	return
}

func IntAbs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// LinLin interpolates linearly between (x0,y0) and (x1,y1). The factor is
// not clamped, so out-of-range x extrapolates.
func LinLin(x, x0, x1, y0, y1 float64) float64 {
	return math.FMA((x-x0)/(x1-x0), y1-y0, y0)
}
