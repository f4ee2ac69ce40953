// Package physics holds the stochastic sampling kernels of the transport
// core: angular and secondary-energy distribution sampling, fission spectrum
// and precursor-group selection, scattering kinematics, and the closed-form
// spectrum samplers (Maxwell, Watt, Wigner, chi-squared).
package physics

import (
	"fmt"
	"os"

	"github.com/ethanio12345/OpenMC/internal/rng"
)

// Sampler bundles a history's random stream with the warning policy. Each
// worker owns one; there is no shared state.
type Sampler struct {
	Rng       *rng.Stream
	Verbosity int

	warnedMu bool
}

// NewSampler wraps a stream with the given verbosity.
func NewSampler(r *rng.Stream, verbosity int) *Sampler {
	return &Sampler{Rng: r, Verbosity: verbosity}
}

func (s *Sampler) warnMu(mu float64) {
	if s.warnedMu {
		return
	}
	s.warnedMu = true
	if s.Verbosity >= 1 {
		fmt.Fprintf(os.Stderr, "warning: sampled cosine out of range (mu=%g), clamped\n", mu)
	}
}

// Warnf reports a recoverable condition at verbosity >= 1.
func (s *Sampler) Warnf(format string, args ...any) {
	if s.Verbosity >= 1 {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	}
}
