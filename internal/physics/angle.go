package physics

import (
	"math"

	"github.com/ethanio12345/OpenMC/internal/data"
	"github.com/ethanio12345/OpenMC/internal/utils"
)

// SampleAngle draws a scattering cosine from a reaction's angular
// distribution at incident energy e. A nil distribution is isotropic.
func (s *Sampler) SampleAngle(ad *data.AngleDist, e float64) float64 {
	if ad == nil {
		return 2.*s.Rng.Float64() - 1.
	}

	// Stochastic interpolation between the bracketing incident-energy
	// breakpoints.
	i := 0
	n := len(ad.Energy)
	switch {
	case e <= ad.Energy[0]:
		i = 0
	case e >= ad.Energy[n-1]:
		i = n - 1
	default:
		i = utils.BinarySearch(ad.Energy, e)
		frac := (e - ad.Energy[i]) / (ad.Energy[i+1] - ad.Energy[i])
		if s.Rng.Float64() < frac {
			i++
		}
	}

	var mu float64
	d := &ad.Data[i]
	switch d.Type {
	case data.AngleIsotropic:
		mu = 2.*s.Rng.Float64() - 1.
	case data.AngleEquiBins:
		r := 32. * s.Rng.Float64()
		k := int(r)
		if k > 31 {
			k = 31
		}
		mu = d.Bins[k] + (r-float64(k))*(d.Bins[k+1]-d.Bins[k])
	case data.AngleTabular:
		t := d.Table
		mu = s.invertTabular(t.Interp, t.Cosine, t.PDF, t.CDF)
	}

	if mu < -1. || mu > 1. {
		s.warnMu(mu)
		mu = math.Max(-1., math.Min(1., mu))
	}
	return mu
}

// invertTabular inverts a tabulated cdf by linear scan: under histogram
// interpolation the pdf is flat within a bin; under lin-lin the quadratic
// c(x) is solved, falling back to the histogram form when the pdf slope
// vanishes.
func (s *Sampler) invertTabular(interp int, x, pdf, cdf []float64) float64 {
	xi := s.Rng.Float64()
	k := len(x) - 2
	for j := 0; j < len(x)-1; j++ {
		if xi < cdf[j+1] {
			k = j
			break
		}
	}
	return invertBin(xi, interp, x, pdf, cdf, k)
}

func invertBin(xi float64, interp int, x, pdf, cdf []float64, k int) float64 {
	if interp == data.InterpHistogram {
		if pdf[k] > 0 {
			return x[k] + (xi-cdf[k])/pdf[k]
		}
		return x[k]
	}
	m := (pdf[k+1] - pdf[k]) / (x[k+1] - x[k])
	if m == 0 {
		if pdf[k] > 0 {
			return x[k] + (xi-cdf[k])/pdf[k]
		}
		return x[k]
	}
	// solve pdf[k]*(y-x[k]) + m/2*(y-x[k])^2 = xi - cdf[k]
	return x[k] + (math.Sqrt(math.Max(0., pdf[k]*pdf[k]+2.*m*(xi-cdf[k])))-pdf[k])/m
}
