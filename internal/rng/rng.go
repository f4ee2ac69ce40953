// Package rng provides the per-history random number streams of the
// transport core. Each history owns an independent PCG-64 substream derived
// from the run seed and the history id, so a run is reproducible regardless
// of how histories are scheduled across workers.
package rng

import (
	randv2 "math/rand/v2"
)

// Stream is a uniform [0,1) generator. The zero value is invalid; use New.
type Stream struct {
	pcg *randv2.PCG
}

// New creates the substream for one history. Identical (seed, history)
// pairs always produce identical draw sequences.
func New(seed, history uint64) *Stream {
	x := seed ^ 0x9e3779b97f4a7c15
	hi := splitmix64(x + splitmix64(history))
	lo := splitmix64(x ^ 0xda942042e4dd58b5 ^ splitmix64(history+0x632be59bd9b4e019))
	return &Stream{pcg: randv2.NewPCG(hi, lo)}
}

// Float64 returns a uniform variate in [0,1) with 53 bits of precision.
func (s *Stream) Float64() float64 {
	return float64(s.pcg.Uint64()<<11>>11) / (1 << 53)
}

// Uint64 returns a random uint64.
func (s *Stream) Uint64() uint64 {
	return s.pcg.Uint64()
}

// IntN returns an int uniformly in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	return int(float64(n) * s.Float64())
}

// splitmix64 mixes a seed word into a well-distributed 64-bit state.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
