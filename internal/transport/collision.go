package transport

import (
	"fmt"
	"math"

	"github.com/ethanio12345/OpenMC/internal/constants"
	"github.com/ethanio12345/OpenMC/internal/data"
	"github.com/ethanio12345/OpenMC/internal/physics"
)

// Collision samples the target nuclide and reaction at the particle's
// position and dispatches the event. With survival biasing on, absorption
// becomes deterministic weight attenuation, fission banks implicitly, and
// low-weight particles play Russian roulette.
func (c *Context) Collision(p *Particle) error {
	p.LastWgt = p.Wgt
	p.LastE = p.E
	p.NCollisions++

	inuc, err := c.sampleNuclide(p)
	if err != nil {
		return err
	}
	nuc := c.Lib.Nuclides[inuc]
	micro := &c.Micro[inuc]

	scattered := false
	if c.Opt.SurvivalBiasing {
		// implicit capture
		p.Wgt *= 1. - micro.Absorption/micro.Total

		if nuc.Fissionable {
			if err := c.createFissionSites(p, inuc, nuc.FissionReaction(), false); err != nil {
				return err
			}
		}

		if p.Wgt < c.Opt.WeightCutoff {
			if c.Sampler.Rng.Float64() < p.Wgt/c.Opt.WeightSurvive {
				p.Wgt = c.Opt.WeightSurvive
			} else {
				p.Wgt = 0
				p.Kill()
			}
		}

		if p.Alive {
			if err := c.sampleScatter(p, nuc, micro); err != nil {
				return err
			}
			scattered = true
		}
	} else {
		rxn, err := c.sampleReaction(p, nuc, micro)
		if err != nil {
			return err
		}
		switch {
		case rxn.MT == data.MTElastic:
			c.elastic(p, nuc, rxn)
			scattered = true
		case data.IsFission(rxn.MT):
			if err := c.createFissionSites(p, inuc, rxn, true); err != nil {
				return err
			}
		case data.IsDisappearance(rxn.MT):
			p.Kill()
		case data.IsInelasticScatter(rxn.MT):
			if err := c.inelastic(p, nuc, rxn); err != nil {
				return err
			}
			scattered = true
		default:
			c.Sampler.Warnf("reaction MT=%d of %s not modelled, collision skipped", rxn.MT, nuc.Name)
		}
	}

	if p.E < constants.EnergyFloor || p.E < c.Opt.EnergyCutoff {
		if p.E < constants.EnergyFloor {
			c.Sampler.Warnf("particle %d killed at E=%g", p.ID, p.E)
		}
		p.Kill()
	}

	if c.Opt.Tallies && c.Tally != nil {
		c.Tally.Score(p, scattered)
	}
	c.FindEnergyIndex(p)
	return nil
}

// sampleNuclide picks the collision target by a cumulative scan of
// density-weighted totals against the macroscopic total.
func (c *Context) sampleNuclide(p *Particle) (int, error) {
	mat := c.Lib.Materials[p.Material]
	cutoff := c.Sampler.Rng.Float64() * c.Macro.Total
	cum := 0.0
	for i, inuc := range mat.Nuclides {
		cum += mat.Densities[i] * c.Micro[inuc].Total
		if cutoff < cum {
			return inuc, nil
		}
	}
	return 0, fmt.Errorf("%w: nuclide scan exhausted in material %s (cutoff=%g, sum=%g)",
		ErrInconsistentXS, mat.Name, cutoff, cum)
}

// sampleScatter picks elastic vs inelastic under survival biasing, where
// absorption has already been removed from the game.
func (c *Context) sampleScatter(p *Particle, nuc *data.Nuclide, micro *MicroXs) error {
	sigmaSc := micro.Total - micro.Absorption
	cutoff := c.Sampler.Rng.Float64() * sigmaSc
	if cutoff < micro.Elastic {
		c.elastic(p, nuc, nuc.Reaction(data.MTElastic))
		return nil
	}

	// inelastic channel: cumulative over scattering reactions above the
	// elastic share, skipping production summaries (MT >= 200) and the
	// total-inelastic umbrella (MT = 4)
	cutoff -= micro.Elastic
	cum := 0.0
	var last *data.Reaction
	for i := range nuc.Reactions {
		rxn := &nuc.Reactions[i]
		if rxn.MT == data.MTElastic || rxn.MT == data.MTLevelInelastic || rxn.MT >= data.MTGasProduction {
			continue
		}
		if data.IsFission(rxn.MT) || data.IsDisappearance(rxn.MT) {
			continue
		}
		if micro.Index < rxn.ThresholdIndex {
			continue
		}
		last = rxn
		cum += rxn.XS(micro.Index, micro.Interp)
		if cutoff < cum {
			break
		}
	}
	if last == nil {
		return fmt.Errorf("%w: no inelastic channel available in %s at E=%g",
			ErrInconsistentXS, nuc.Name, p.E)
	}
	return c.inelastic(p, nuc, last)
}

// sampleReaction picks the analog reaction by inverting a cumulative over
// the total cross section, skipping MT >= 200 and MT = 4.
func (c *Context) sampleReaction(p *Particle, nuc *data.Nuclide, micro *MicroXs) (*data.Reaction, error) {
	cutoff := c.Sampler.Rng.Float64() * micro.Total
	cum := 0.0
	var last *data.Reaction
	for i := range nuc.Reactions {
		rxn := &nuc.Reactions[i]
		if rxn.MT == data.MTLevelInelastic || rxn.MT >= data.MTGasProduction {
			continue
		}
		if micro.Index < rxn.ThresholdIndex {
			continue
		}
		last = rxn
		cum += rxn.XS(micro.Index, micro.Interp)
		if cutoff < cum {
			break
		}
	}
	if last == nil {
		return nil, fmt.Errorf("%w: reaction scan exhausted in %s at E=%g",
			ErrInconsistentXS, nuc.Name, p.E)
	}
	return last, nil
}

func (c *Context) elastic(p *Particle, nuc *data.Nuclide, rxn *data.Reaction) {
	var ad *data.AngleDist
	if rxn != nil {
		ad = rxn.Angle
	}
	e, u, v, w, mu := c.Sampler.ElasticScatter(p.E, p.U, p.V, p.W, nuc.AWR, ad)
	p.E, p.U, p.V, p.W, p.Mu = e, u, v, w, mu
}

func (c *Context) inelastic(p *Particle, nuc *data.Nuclide, rxn *data.Reaction) error {
	e, u, v, w, mu, yield, err := c.Sampler.InelasticScatter(p.E, p.U, p.V, p.W, nuc.AWR, rxn)
	if err != nil {
		return err
	}
	p.E, p.U, p.V, p.W, p.Mu = e, u, v, w, mu
	if yield > 1 {
		p.Wgt *= float64(yield)
	}
	return nil
}

// createFissionSites banks the expected next-generation daughters of a
// fission event. actual marks an analog fission (the parent dies);
// otherwise the implicit survival-biasing estimate applies. Writes beyond
// the bank capacity saturate silently.
func (c *Context) createFissionSites(p *Particle, inuc int, rxn *data.Reaction, actual bool) error {
	if rxn == nil {
		return fmt.Errorf("%w: fission sampled without a fission channel", ErrInconsistentXS)
	}
	nuc := c.Lib.Nuclides[inuc]
	micro := &c.Micro[inuc]

	nuT := physics.NuTotal(nuc, p.E)
	var nu float64
	if actual {
		nu = p.Wgt / c.Keff * nuT
	} else {
		nu = p.LastWgt * micro.Fission / (c.Keff * micro.Total) * nuT
	}

	n := int(nu)
	if c.Sampler.Rng.Float64() < nu-math.Floor(nu) {
		n++
	}
	if free := c.Bank.Capacity() - c.Bank.Len(); n > free {
		n = free
	}

	for i := 0; i < n; i++ {
		eOut, mu, _, _, err := c.Sampler.SampleFissionNeutron(nuc, rxn, p.E)
		if err != nil {
			return err
		}
		phi := 2. * math.Pi * c.Sampler.Rng.Float64()
		sin := math.Sqrt(math.Max(0., 1.-mu*mu))
		c.Bank.Push(Site{
			UID: p.ID,
			X:   p.X, Y: p.Y, Z: p.Z,
			U: mu, V: sin * math.Cos(phi), W: sin * math.Sin(phi),
			E: eOut,
		})
	}

	if actual {
		p.Kill()
	}
	return nil
}
