package physics

import (
	"fmt"

	"github.com/ethanio12345/OpenMC/internal/constants"
	"github.com/ethanio12345/OpenMC/internal/data"
)

// NuTotal evaluates total nu-bar at E.
func NuTotal(nuc *data.Nuclide, e float64) float64 {
	return nuc.NuTotal.Value(e)
}

// NuPrompt evaluates prompt nu-bar, falling back to total when the
// evaluation carries no separate prompt tabulation.
func NuPrompt(nuc *data.Nuclide, e float64) float64 {
	if nuc.NuPrompt.Form == data.NuNone {
		return nuc.NuTotal.Value(e)
	}
	return nuc.NuPrompt.Value(e)
}

// NuDelayed evaluates delayed nu-bar; zero when absent.
func NuDelayed(nuc *data.Nuclide, e float64) float64 {
	return nuc.NuDelayed.Value(e)
}

// DelayedFraction is beta = nu_d / nu_t at E.
func DelayedFraction(nuc *data.Nuclide, e float64) float64 {
	nuT := NuTotal(nuc, e)
	if nuT <= 0 {
		return 0
	}
	return NuDelayed(nuc, e) / nuT
}

// SamplePrecursorGroup picks a delayed-neutron precursor group by inverting
// the cumulative group-yield table, yields interpolated in E.
func (s *Sampler) SamplePrecursorGroup(nuc *data.Nuclide, e float64) (int, error) {
	if len(nuc.Precursors) == 0 {
		return 0, fmt.Errorf("%w: delayed neutron from %s without precursor data", data.ErrBadData, nuc.Name)
	}
	total := 0.0
	for i := range nuc.Precursors {
		total += nuc.Precursors[i].Yield.Evaluate(e)
	}
	cutoff := s.Rng.Float64() * total
	cum := 0.0
	for i := range nuc.Precursors {
		cum += nuc.Precursors[i].Yield.Evaluate(e)
		if cutoff < cum {
			return i, nil
		}
	}
	return len(nuc.Precursors) - 1, nil
}

// SampleFissionNeutron draws one fission daughter's cosine and energy at
// incident energy ein. With probability beta the daughter is delayed: a
// precursor group is sampled and its spectrum used; otherwise the prompt
// spectrum of the fission channel applies. Energies at or above 20 MeV are
// resampled.
func (s *Sampler) SampleFissionNeutron(nuc *data.Nuclide, rxn *data.Reaction, ein float64) (eOut, mu float64, delayed bool, group int, err error) {
	mu = s.SampleAngle(rxn.Angle, ein)
	delayed = s.Rng.Float64() < DelayedFraction(nuc, ein)

	var ed data.EnergyDist
	if delayed {
		group, err = s.SamplePrecursorGroup(nuc, ein)
		if err != nil {
			return
		}
		ed = nuc.DelayedEnergy[group]
	} else {
		ed = rxn.Energy
	}
	if ed == nil {
		err = fmt.Errorf("%w: fission channel MT=%d of %s without a spectrum", data.ErrBadData, rxn.MT, nuc.Name)
		return
	}

	for {
		eOut, err = s.SampleEnergy(ed, ein, &mu)
		if err != nil {
			return
		}
		if eOut < constants.MaxFissionEnergy {
			return
		}
	}
}
