package transport

import (
	"github.com/ethanio12345/OpenMC/internal/physics"
)

// MicroXs is the per-nuclide scratch cache: microscopic cross sections at
// the particle's current energy plus the nuclide-grid position they were
// interpolated at. Overwritten on every CalculateXs call.
type MicroXs struct {
	Total      float64
	Elastic    float64
	Absorption float64
	Fission    float64
	NuFission  float64

	Index  int
	Interp float64
}

// MacroXs is the aggregated macroscopic cross section of the particle's
// current material [1/cm].
type MacroXs struct {
	Total      float64
	Elastic    float64
	Absorption float64
	Fission    float64
	NuFission  float64
}

// CalculateXs refreshes the micro and macro caches for the particle's
// material and energy. Both material and energy key the short-circuit: a
// collision changes E with the material unchanged, so comparing the
// material alone would serve stale cross sections.
func (c *Context) CalculateXs(p *Particle) {
	if p.Material == c.lastMaterial && p.E == c.lastE {
		return
	}
	c.Macro = MacroXs{}

	// Locate on the unionized grid; out-of-range energies clamp to the end
	// intervals and extrapolate through the interpolation factor.
	ie, f := c.Lib.FindEnergyIndex(p.E)
	p.IE, p.Interp = ie, f

	mat := c.Lib.Materials[p.Material]
	for i, inuc := range mat.Nuclides {
		nuc := c.Lib.Nuclides[inuc]
		density := mat.Densities[i]

		ien := int(nuc.GridIndex[ie])
		fn := (p.E - nuc.Energy[ien]) / (nuc.Energy[ien+1] - nuc.Energy[ien])

		m := &c.Micro[inuc]
		m.Index, m.Interp = ien, fn
		m.Total = (1-fn)*nuc.Total[ien] + fn*nuc.Total[ien+1]
		m.Elastic = (1-fn)*nuc.Elastic[ien] + fn*nuc.Elastic[ien+1]
		m.Absorption = (1-fn)*nuc.Absorption[ien] + fn*nuc.Absorption[ien+1]
		if nuc.Fissionable {
			m.Fission = (1-fn)*nuc.Fission[ien] + fn*nuc.Fission[ien+1]
			m.NuFission = physics.NuTotal(nuc, p.E) * m.Fission
		} else {
			m.Fission = 0
			m.NuFission = 0
		}

		c.Macro.Total += density * m.Total
		c.Macro.Elastic += density * m.Elastic
		c.Macro.Absorption += density * m.Absorption
		c.Macro.Fission += density * m.Fission
		c.Macro.NuFission += density * m.NuFission
	}

	c.lastMaterial = p.Material
	c.lastE = p.E
}

// FindEnergyIndex refreshes the particle's cached unionized-grid position
// after a collision changed its energy.
func (c *Context) FindEnergyIndex(p *Particle) {
	p.IE, p.Interp = c.Lib.FindEnergyIndex(p.E)
}
