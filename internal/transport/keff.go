package transport

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// KeffAccumulator collects per-batch eigenvalue estimates over the active
// cycles; the driver owns it and updates each worker's Keff between cycles.
type KeffAccumulator struct {
	batches []float64
}

// Add records one active-batch estimate.
func (k *KeffAccumulator) Add(v float64) {
	k.batches = append(k.batches, v)
}

func (k *KeffAccumulator) N() int { return len(k.batches) }

// Mean is the running eigenvalue estimate over active batches.
func (k *KeffAccumulator) Mean() float64 {
	if len(k.batches) == 0 {
		return 1
	}
	return stat.Mean(k.batches, nil)
}

// StdErr is the standard error of the mean; zero below two batches.
func (k *KeffAccumulator) StdErr() float64 {
	if len(k.batches) < 2 {
		return 0
	}
	return stat.StdDev(k.batches, nil) / math.Sqrt(float64(len(k.batches)))
}
