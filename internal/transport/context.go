package transport

import (
	"github.com/ethanio12345/OpenMC/internal/data"
	"github.com/ethanio12345/OpenMC/internal/physics"
	"github.com/ethanio12345/OpenMC/internal/rng"
)

// Options are the per-run knobs the core reads; the driver owns them.
type Options struct {
	Particles       int
	SurvivalBiasing bool
	WeightCutoff    float64
	WeightSurvive   float64
	EnergyCutoff    float64 // [MeV]; the 1e-100 underflow floor always applies
	Tallies         bool
	Verbosity       int
}

// Context is the per-worker mutable state threaded through transport: the
// scratch cross-section caches, the sampler, and the worker-local fission
// bank. The library and geometry are shared read-only.
type Context struct {
	Lib   *data.Library
	Opt   Options
	Geom  Geometry
	Tally Tally

	Sampler *physics.Sampler

	// Keff is the current eigenvalue estimate used to normalize expected
	// fission daughters; the driver updates it between cycles.
	Keff float64

	Micro []MicroXs
	Macro MacroXs
	Bank  *FissionBank

	lastMaterial int
	lastE        float64
}

// NewContext builds a worker context over a unionized library.
func NewContext(lib *data.Library, opt Options, geom Geometry, tally Tally) *Context {
	return &Context{
		Lib:          lib,
		Opt:          opt,
		Geom:         geom,
		Tally:        tally,
		Sampler:      physics.NewSampler(nil, opt.Verbosity),
		Keff:         1.0,
		Micro:        make([]MicroXs, len(lib.Nuclides)),
		Bank:         NewFissionBank(opt.Particles),
		lastMaterial: -1,
	}
}

// StartHistory points the context at a history's random stream and
// invalidates the cross-section cache.
func (c *Context) StartHistory(stream *rng.Stream) {
	c.Sampler.Rng = stream
	c.lastMaterial = -1
	c.lastE = 0
}
