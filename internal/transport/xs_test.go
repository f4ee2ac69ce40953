package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanio12345/OpenMC/internal/data"
	"github.com/ethanio12345/OpenMC/internal/rng"
)

// twoPointNuclide has energy-dependent cross sections so cache staleness is
// observable.
func twoPointNuclide(name string, totLo, totHi, absLo, absHi float64) *data.Nuclide {
	grid := []float64{1e-5, 10.}
	elastic := []float64{totLo - absLo, totHi - absHi}
	return &data.Nuclide{
		Name:       name,
		AWR:        10.,
		Energy:     grid,
		Total:      []float64{totLo, totHi},
		Elastic:    elastic,
		Absorption: []float64{absLo, absHi},
		Reactions: []data.Reaction{
			{MT: data.MTElastic, TY: 1, Sigma: elastic},
			{MT: 102, TY: 0, Sigma: []float64{absLo, absHi}},
		},
	}
}

func singleNuclideLib(t *testing.T, nuc *data.Nuclide, density float64) (*data.Library, int) {
	t.Helper()
	lib := &data.Library{}
	in, err := lib.AddNuclide(nuc)
	require.NoError(t, err)
	im, err := lib.AddMaterial(&data.Material{Name: "m", Nuclides: []int{in}, Densities: []float64{density}})
	require.NoError(t, err)
	require.NoError(t, lib.Unionize())
	return lib, im
}

func TestMacroIsDensityWeightedMicro(t *testing.T) {
	const density = 0.037
	lib, im := singleNuclideLib(t, twoPointNuclide("A", 4., 8., 1., 3.), density)
	ctx := NewContext(lib, Options{Particles: 10}, NewBox(100, 100, 100, im), nil)
	ctx.StartHistory(rng.New(1, 0))

	p := &Particle{E: 5., Wgt: 1, Alive: true, Material: im}
	ctx.CalculateXs(p)

	micro := ctx.Micro[0]
	assert.Equal(t, density*micro.Total, ctx.Macro.Total)
	assert.Equal(t, density*micro.Elastic, ctx.Macro.Elastic)
	assert.Equal(t, density*micro.Absorption, ctx.Macro.Absorption)
	assert.Equal(t, micro.Total, micro.Elastic+micro.Absorption)
}

func TestCalculateXsRefreshesOnEnergyChange(t *testing.T) {
	lib, im := singleNuclideLib(t, twoPointNuclide("A", 4., 8., 1., 3.), 1.)
	ctx := NewContext(lib, Options{Particles: 10}, NewBox(100, 100, 100, im), nil)
	ctx.StartHistory(rng.New(1, 0))

	p := &Particle{E: 1e-5, Wgt: 1, Alive: true, Material: im}
	ctx.CalculateXs(p)
	lowTotal := ctx.Macro.Total

	// same material, new energy: the cache must not short-circuit
	p.E = 10.
	ctx.CalculateXs(p)
	assert.Greater(t, ctx.Macro.Total, lowTotal)
	assert.InDelta(t, 8., ctx.Macro.Total, 1e-12)
}

func TestCalculateXsCachesGridPosition(t *testing.T) {
	lib, im := singleNuclideLib(t, twoPointNuclide("A", 4., 8., 1., 3.), 1.)
	ctx := NewContext(lib, Options{Particles: 10}, NewBox(100, 100, 100, im), nil)
	ctx.StartHistory(rng.New(1, 0))

	p := &Particle{E: 5., Wgt: 1, Alive: true, Material: im}
	ctx.CalculateXs(p)

	assert.Equal(t, 0, ctx.Micro[0].Index)
	f := (5. - 1e-5) / (10. - 1e-5)
	assert.InDelta(t, f, ctx.Micro[0].Interp, 1e-12)
	assert.Equal(t, p.IE, 0)
	assert.InDelta(t, f, p.Interp, 1e-12)
}

func TestCalculateXsOutOfRangeClamps(t *testing.T) {
	lib, im := singleNuclideLib(t, twoPointNuclide("A", 4., 8., 1., 3.), 1.)
	ctx := NewContext(lib, Options{Particles: 10}, NewBox(100, 100, 100, im), nil)
	ctx.StartHistory(rng.New(1, 0))

	p := &Particle{E: 20., Wgt: 1, Alive: true, Material: im}
	ctx.CalculateXs(p)
	assert.Greater(t, p.Interp, 1., "over-range extrapolates")
	assert.Greater(t, ctx.Macro.Total, 8.)
}
