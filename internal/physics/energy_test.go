package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ethanio12345/OpenMC/internal/data"
)

func mustTab1(t *testing.T, x, y []float64) data.Tab1 {
	t.Helper()
	tab, err := data.NewTab1(1, x, y)
	require.NoError(t, err)
	return tab
}

func TestLawLevel(t *testing.T) {
	s := newTestSampler(40)
	// level at Q = -1 MeV on A = 3: shift (A+1)/A*|Q|, scale (A/(A+1))^2
	d := &data.LawLevel{Shift: 4. / 3., Scale: 9. / 16.}
	e, err := s.SampleEnergy(d, 2., nil)
	require.NoError(t, err)
	assert.InDelta(t, 9./16.*(2.-4./3.), e, 1e-15)
}

func TestLawEquiBins(t *testing.T) {
	s := newTestSampler(41)
	d := &data.LawEquiBins{
		Incident: []float64{1.},
		Tables:   [][]float64{{0., 1., 2., 3., 4.}},
	}
	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		e, err := s.SampleEnergy(d, 1., nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, e, 0.)
		require.Less(t, e, 4.)
		sum += e
	}
	assert.InDelta(t, 2., sum/n, 0.02, "uniform over equiprobable bins")
}

func TestLawContinuousHistogram(t *testing.T) {
	s := newTestSampler(42)
	table, err := data.NewContTable(data.InterpHistogram,
		[]float64{1., 2., 3.},
		[]float64{0.25, 0.75, 0.75},
		[]float64{0., 0.25, 1.},
		nil, nil)
	require.NoError(t, err)
	d := &data.LawContinuous{Incident: []float64{5.}, Tables: []data.ContTable{table}}

	const n = 400000
	low := 0
	for i := 0; i < n; i++ {
		e, err := s.SampleEnergy(d, 5., nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, e, 1.)
		require.LessOrEqual(t, e, 3.)
		if e < 2. {
			low++
		}
	}
	assert.InDelta(t, 0.25, float64(low)/n, 0.005)
}

func TestLawContinuousScaleInterp(t *testing.T) {
	// two incident tables with different ranges: sampled energies stay
	// within the range interpolated at the incident energy
	lo, err := data.NewContTable(data.InterpHistogram,
		[]float64{0., 1.}, []float64{1., 1.}, []float64{0., 1.}, nil, nil)
	require.NoError(t, err)
	hi, err := data.NewContTable(data.InterpHistogram,
		[]float64{0., 2.}, []float64{0.5, 0.5}, []float64{0., 1.}, nil, nil)
	require.NoError(t, err)
	d := &data.LawContinuous{Incident: []float64{1., 3.}, Tables: []data.ContTable{lo, hi}}

	s := newTestSampler(43)
	for i := 0; i < 50000; i++ {
		e, err := s.SampleEnergy(d, 2., nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, e, 0.)
		require.LessOrEqual(t, e, 1.5, "range interpolated halfway between tables")
	}
}

func TestLawMaxwell(t *testing.T) {
	s := newTestSampler(44)
	d := &data.LawMaxwell{Theta: mustTab1(t, []float64{0., 20.}, []float64{1.2, 1.2})}
	const n = 400000
	sum := 0.0
	for i := 0; i < n; i++ {
		e, err := s.SampleEnergy(d, 2., nil)
		require.NoError(t, err)
		sum += e
	}
	assert.InEpsilon(t, 1.8, sum/n, 0.01)
}

func TestLawEvaporationRestriction(t *testing.T) {
	s := newTestSampler(45)
	d := &data.LawEvaporation{
		Theta: mustTab1(t, []float64{0., 20.}, []float64{0.8, 0.8}),
		U:     1.,
	}
	for i := 0; i < 50000; i++ {
		e, err := s.SampleEnergy(d, 3., nil)
		require.NoError(t, err)
		require.LessOrEqual(t, e, 2., "restricted to Ein - U")
		require.GreaterOrEqual(t, e, 0.)
	}

	_, err := s.SampleEnergy(d, 0.5, nil)
	assert.ErrorIs(t, err, data.ErrBadData, "below restriction energy")
}

func TestLawWatt(t *testing.T) {
	s := newTestSampler(46)
	d := &data.LawWatt{
		A: mustTab1(t, []float64{0., 20.}, []float64{0.988, 0.988}),
		B: mustTab1(t, []float64{0., 20.}, []float64{2.249, 2.249}),
	}
	const n = 400000
	sum := 0.0
	for i := 0; i < n; i++ {
		e, err := s.SampleEnergy(d, 2., nil)
		require.NoError(t, err)
		sum += e
	}
	assert.InEpsilon(t, 1.5*0.988+0.988*0.988*2.249/4., sum/n, 0.01)
}

func TestLawKalbachRequiresMuSlot(t *testing.T) {
	s := newTestSampler(47)
	table, err := data.NewContTable(data.InterpHistogram,
		[]float64{0., 1.}, []float64{1., 1.}, []float64{0., 1.},
		[]float64{1., 1.}, []float64{2., 2.})
	require.NoError(t, err)
	d := &data.LawKalbach{Incident: []float64{1.}, Tables: []data.ContTable{table}}

	_, err = s.SampleEnergy(d, 1., nil)
	assert.ErrorIs(t, err, ErrMuSlot)
}

func kalbachCosines(t *testing.T, s *Sampler, kmR, kmA float64, n int) []float64 {
	t.Helper()
	table, err := data.NewContTable(data.InterpHistogram,
		[]float64{0., 1.}, []float64{1., 1.}, []float64{0., 1.},
		[]float64{kmR, kmR}, []float64{kmA, kmA})
	require.NoError(t, err)
	d := &data.LawKalbach{Incident: []float64{1.}, Tables: []data.ContTable{table}}

	mus := make([]float64, n)
	for i := range mus {
		var mu float64
		_, err := s.SampleEnergy(d, 1., &mu)
		require.NoError(t, err)
		require.GreaterOrEqual(t, mu, -1.)
		require.LessOrEqual(t, mu, 1.)
		mus[i] = mu
	}
	return mus
}

func chi2Against(t *testing.T, mus []float64, cdf func(float64) float64) {
	t.Helper()
	const nBins = 20
	var counts [nBins]int
	for _, mu := range mus {
		b := int((mu + 1.) / 2. * nBins)
		if b == nBins {
			b--
		}
		counts[b]++
	}
	chi2 := 0.0
	for b := 0; b < nBins; b++ {
		lo := -1. + 2.*float64(b)/nBins
		hi := lo + 2./nBins
		expected := float64(len(mus)) * (cdf(hi) - cdf(lo))
		diff := float64(counts[b]) - expected
		chi2 += diff * diff / expected
	}
	crit := distuv.ChiSquared{K: nBins - 1}.Quantile(0.99)
	assert.Less(t, chi2, crit, "cosine distribution mismatch")
}

func TestLawKalbachCompoundCosine(t *testing.T) {
	// R = 0 selects the compound branch: p(mu) = A*cosh(A*mu)/(2*sinh(A))
	const kmA = 2.0
	s := newTestSampler(48)
	mus := kalbachCosines(t, s, 0., kmA, 200000)
	chi2Against(t, mus, func(mu float64) float64 {
		return (math.Sinh(kmA*mu) + math.Sinh(kmA)) / (2. * math.Sinh(kmA))
	})
}

func TestLawKalbachPrecompoundCosine(t *testing.T) {
	// R = 1 selects the precompound branch: p(mu) = A*exp(A*mu)/(2*sinh(A))
	const kmA = 2.0
	s := newTestSampler(52)
	mus := kalbachCosines(t, s, 1., kmA, 200000)
	chi2Against(t, mus, func(mu float64) float64 {
		return (math.Exp(kmA*mu) - math.Exp(-kmA)) / (2. * math.Sinh(kmA))
	})
}

func TestLawCorrelated(t *testing.T) {
	// outgoing energy uniform on [0,2]; lower half isotropic, upper half
	// forward-peaked tabular
	forward, err := data.NewAngleTable(data.InterpHistogram,
		[]float64{0.5, 1.}, []float64{2., 2.}, []float64{0., 1.})
	require.NoError(t, err)
	d := &data.LawCorrelated{
		Incident: []float64{1.},
		Tables: []data.CorrTable{{
			Interp: data.InterpHistogram,
			Eout:   []float64{0., 1., 2.},
			PDF:    []float64{0.5, 0.5, 0.5},
			CDF:    []float64{0., 0.5, 1.},
			Angle:  []*data.AngleTable{nil, forward, nil},
		}},
	}

	s := newTestSampler(49)
	for i := 0; i < 50000; i++ {
		var mu float64
		e, err := s.SampleEnergy(d, 1., &mu)
		require.NoError(t, err)
		if e >= 1. && e < 2. {
			require.GreaterOrEqual(t, mu, 0.5, "upper bin is forward-peaked")
		}
	}

	_, err = s.SampleEnergy(d, 1., nil)
	assert.ErrorIs(t, err, ErrMuSlot)
}

func TestLawNBody(t *testing.T) {
	s := newTestSampler(50)
	d, err := data.NewLawNBody(3, 4., 2., 0.)
	require.NoError(t, err)
	eMax := (4. - 1.) / 4. * (2. / 3. * 6.)
	for i := 0; i < 50000; i++ {
		e, sErr := s.SampleEnergy(d, 6., nil)
		require.NoError(t, sErr)
		require.GreaterOrEqual(t, e, 0.)
		require.LessOrEqual(t, e, eMax)
	}

	_, err = data.NewLawNBody(6, 4., 2., 0.)
	assert.ErrorIs(t, err, data.ErrBadData)
}

func TestUnsupportedLaws(t *testing.T) {
	s := newTestSampler(51)
	_, err := s.SampleEnergy(&data.LawGeneralEvaporation{}, 1., nil)
	assert.ErrorIs(t, err, data.ErrUnsupportedLaw)
	_, err = s.SampleEnergy(&data.LawLabAngleEnergy{}, 1., nil)
	assert.ErrorIs(t, err, data.ErrUnsupportedLaw)
}
