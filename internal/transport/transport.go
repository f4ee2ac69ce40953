package transport

import (
	"fmt"
	"math"
)

// Transport runs one particle history to completion: absorption, leakage,
// weight-cutoff kill, or energy cutoff. The fission bank receives any
// next-generation sites produced along the way.
func (c *Context) Transport(p *Particle) error {
	if p.Cell == 0 {
		if !c.Geom.FindCell(p) {
			return fmt.Errorf("%w: id=%d at (%g, %g, %g)", ErrLostParticle, p.ID, p.X, p.Y, p.Z)
		}
		p.CellBorn = p.Cell
	}

	for p.Alive {
		c.CalculateXs(p)

		dBoundary, surface, lattice := c.Geom.DistanceToBoundary(p)

		dCollision := math.Inf(1)
		if c.Macro.Total > 0 {
			dCollision = -math.Log(c.Sampler.Rng.Float64()) / c.Macro.Total
		}

		d := math.Min(dBoundary, dCollision)
		p.Move(d)

		if dCollision > dBoundary {
			p.Surface = surface
			lastCell := p.Cell
			p.Cell = 0
			if lattice {
				c.Geom.CrossLattice(p)
			} else {
				c.Geom.CrossSurface(p, lastCell)
			}
		} else {
			if err := c.Collision(p); err != nil {
				return err
			}
		}
	}
	return nil
}
