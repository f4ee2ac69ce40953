package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReproducible(t *testing.T) {
	a := New(42, 7)
	b := New(42, 7)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestStreamsIndependent(t *testing.T) {
	a := New(42, 0)
	b := New(42, 1)
	same := 0
	for i := 0; i < 1000; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Zero(t, same, "adjacent history streams repeat draws")
}

func TestRangeAndMean(t *testing.T) {
	s := New(1, 0)
	sum := 0.0
	const n = 200000
	for i := 0; i < n; i++ {
		x := s.Float64()
		if x < 0 || x >= 1 {
			t.Fatalf("draw out of [0,1): %v", x)
		}
		sum += x
	}
	assert.InDelta(t, 0.5, sum/n, 0.01)
}

func TestIntN(t *testing.T) {
	s := New(3, 5)
	for i := 0; i < 10000; i++ {
		k := s.IntN(7)
		if k < 0 || k > 6 {
			t.Fatalf("IntN out of range: %d", k)
		}
	}
}
