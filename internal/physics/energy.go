package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/ethanio12345/OpenMC/internal/data"
	"github.com/ethanio12345/OpenMC/internal/utils"
)

// ErrMuSlot reports a correlated energy-angle law invoked without a place
// to put the sampled cosine.
var ErrMuSlot = errors.New("correlated law sampled without a cosine slot")

// SampleEnergy draws an outgoing energy from a secondary-energy
// distribution at incident energy ein. Correlated laws (44, 61) also write
// the outgoing cosine through mu and fail without it; the other laws ignore
// mu. The returned energy is in the frame the evaluation uses (CM when the
// owning reaction's TY is negative).
func (s *Sampler) SampleEnergy(ed data.EnergyDist, ein float64, mu *float64) (float64, error) {
	switch d := ed.(type) {
	case *data.LawEquiBins:
		return s.sampleEquiBins(d, ein), nil

	case *data.LawLevel:
		return d.Scale * (ein - d.Shift), nil

	case *data.LawContinuous:
		return s.sampleContinuous(d, ein), nil

	case *data.LawMaxwell:
		return s.Maxwell(d.Theta.Evaluate(ein)), nil

	case *data.LawEvaporation:
		return s.sampleEvaporation(d, ein)

	case *data.LawWatt:
		return s.Watt(d.A.Evaluate(ein), d.B.Evaluate(ein)), nil

	case *data.LawKalbach:
		if mu == nil {
			return 0, ErrMuSlot
		}
		return s.sampleKalbach(d, ein, mu), nil

	case *data.LawCorrelated:
		if mu == nil {
			return 0, ErrMuSlot
		}
		return s.sampleCorrelated(d, ein, mu), nil

	case *data.LawNBody:
		return s.sampleNBody(d, ein), nil

	default:
		return 0, fmt.Errorf("%w: law %d", data.ErrUnsupportedLaw, ed.Law())
	}
}

// incidentBin locates ein among the incident-energy breakpoints, clamped at
// the ends, returning the lower index and interpolation fraction.
func incidentBin(incident []float64, ein float64) (i int, r float64) {
	n := len(incident)
	switch {
	case n < 2 || ein <= incident[0]:
		return 0, 0
	case ein >= incident[n-1]:
		return n - 2, 1
	}
	i = utils.BinarySearch(incident, ein)
	r = (ein - incident[i]) / (incident[i+1] - incident[i])
	return
}

// pickTable chooses the lower or upper incident table stochastically with
// the interpolation fraction.
func (s *Sampler) pickTable(incident []float64, ein float64) (i, l int, r float64) {
	i, r = incidentBin(incident, ein)
	l = i
	if len(incident) > 1 && s.Rng.Float64() < r {
		l = i + 1
	}
	return
}

// scaleInterp rescales an energy sampled from table l onto the range
// interpolated between the bracketing tables i and i+1 at fraction r.
func scaleInterp(eout float64, r float64, lo0, loK, hi0, hiK, t0, tK float64) float64 {
	e1 := lo0 + r*(hi0-lo0)
	eK := loK + r*(hiK-loK)
	if tK <= t0 {
		return eout
	}
	return e1 + (eout-t0)*(eK-e1)/(tK-t0)
}

// sampleEquiBins implements law 1: pick the incident table stochastically,
// then sample uniformly within an equiprobable outgoing bin.
func (s *Sampler) sampleEquiBins(d *data.LawEquiBins, ein float64) float64 {
	_, l, _ := s.pickTable(d.Incident, ein)
	bins := d.Tables[l]
	net := len(bins) - 1
	k := int(float64(net) * s.Rng.Float64())
	if k > net-1 {
		k = net - 1
	}
	return bins[k] + s.Rng.Float64()*(bins[k+1]-bins[k])
}

// sampleContTable inverts one continuous spectrum cdf, returning the
// outgoing energy before scale interpolation and the bin it landed in.
func (s *Sampler) sampleContTable(interp int, eout, pdf, cdf []float64) (float64, int) {
	xi := s.Rng.Float64()
	k := len(eout) - 2
	for j := 0; j < len(eout)-1; j++ {
		if xi < cdf[j+1] {
			k = j
			break
		}
	}
	return invertBin(xi, interp, eout, pdf, cdf, k), k
}

// sampleContinuous implements law 4: stochastic incident-table pick, cdf
// inversion, then scale interpolation of the sampled energy between the
// bracketing tables' energy ranges.
func (s *Sampler) sampleContinuous(d *data.LawContinuous, ein float64) float64 {
	i, l, r := s.pickTable(d.Incident, ein)
	t := &d.Tables[l]
	eout, _ := s.sampleContTable(t.Interp, t.Eout, t.PDF, t.CDF)
	if len(d.Incident) > 1 {
		lo, hi := &d.Tables[i], &d.Tables[i+1]
		eout = scaleInterp(eout, r,
			lo.Eout[0], lo.Eout[len(lo.Eout)-1],
			hi.Eout[0], hi.Eout[len(hi.Eout)-1],
			t.Eout[0], t.Eout[len(t.Eout)-1])
	}
	return eout
}

func (s *Sampler) sampleEvaporation(d *data.LawEvaporation, ein float64) (float64, error) {
	if ein <= d.U {
		return 0, fmt.Errorf("%w: evaporation spectrum below restriction energy (E=%g, U=%g)",
			data.ErrBadData, ein, d.U)
	}
	t := d.Theta.Evaluate(ein)
	for {
		eout := -t * math.Log(s.Rng.Float64()*s.Rng.Float64())
		if eout <= ein-d.U {
			return eout, nil
		}
	}
}

// sampleKalbach implements law 44: law-4 energy sampling plus the
// Kalbach-Mann correlated cosine.
func (s *Sampler) sampleKalbach(d *data.LawKalbach, ein float64, mu *float64) float64 {
	i, l, r := s.pickTable(d.Incident, ein)
	t := &d.Tables[l]
	eout, k := s.sampleContTable(t.Interp, t.Eout, t.PDF, t.CDF)

	var kmR, kmA float64
	if t.Interp == data.InterpHistogram || k+1 >= len(t.Eout) || t.Eout[k+1] == t.Eout[k] {
		kmR, kmA = t.R[k], t.A[k]
	} else {
		kmR = utils.LinLin(eout, t.Eout[k], t.Eout[k+1], t.R[k], t.R[k+1])
		kmA = utils.LinLin(eout, t.Eout[k], t.Eout[k+1], t.A[k], t.A[k+1])
	}

	if len(d.Incident) > 1 {
		lo, hi := &d.Tables[i], &d.Tables[i+1]
		eout = scaleInterp(eout, r,
			lo.Eout[0], lo.Eout[len(lo.Eout)-1],
			hi.Eout[0], hi.Eout[len(hi.Eout)-1],
			t.Eout[0], t.Eout[len(t.Eout)-1])
	}

	r3 := s.Rng.Float64()
	r4 := s.Rng.Float64()
	if kmA < 1e-12 {
		*mu = 2.*r4 - 1.
		return eout
	}
	if r3 > kmR {
		tt := (2.*r4 - 1.) * math.Sinh(kmA)
		*mu = math.Log(tt+math.Sqrt(tt*tt+1.)) / kmA
	} else {
		*mu = math.Log(r4*math.Exp(kmA)+(1.-r4)*math.Exp(-kmA)) / kmA
	}
	return eout
}

// sampleCorrelated implements law 61: law-4 energy sampling, then the
// angular table attached to the sampled outgoing bin (isotropic when
// absent).
func (s *Sampler) sampleCorrelated(d *data.LawCorrelated, ein float64, mu *float64) float64 {
	i, l, r := s.pickTable(d.Incident, ein)
	t := &d.Tables[l]
	eout, k := s.sampleContTable(t.Interp, t.Eout, t.PDF, t.CDF)

	if at := t.Angle[k]; at == nil {
		*mu = 2.*s.Rng.Float64() - 1.
	} else {
		m := s.invertTabular(at.Interp, at.Cosine, at.PDF, at.CDF)
		if m < -1. || m > 1. {
			s.warnMu(m)
			m = math.Max(-1., math.Min(1., m))
		}
		*mu = m
	}

	if len(d.Incident) > 1 {
		lo, hi := &d.Tables[i], &d.Tables[i+1]
		eout = scaleInterp(eout, r,
			lo.Eout[0], lo.Eout[len(lo.Eout)-1],
			hi.Eout[0], hi.Eout[len(hi.Eout)-1],
			t.Eout[0], t.Eout[len(t.Eout)-1])
	}
	return eout
}

// sampleNBody implements law 66: N-body phase-space distribution.
func (s *Sampler) sampleNBody(d *data.LawNBody, ein float64) float64 {
	a := d.AWR
	eMax := (d.Ap - 1.) / d.Ap * (a/(a+1.)*ein + d.Q)

	x := s.Maxwell(1.)
	var y float64
	switch d.NBodies {
	case 3:
		y = s.Maxwell(1.)
	case 4:
		y = -math.Log(s.Rng.Float64() * s.Rng.Float64() * s.Rng.Float64())
	case 5:
		y = -math.Log(s.Rng.Float64() * s.Rng.Float64() * s.Rng.Float64() * s.Rng.Float64())
		c := math.Cos(math.Pi / 2. * s.Rng.Float64())
		y -= math.Log(s.Rng.Float64()) * c * c
	}
	return eMax * x / (x + y)
}
