package transport

import "math"

// Geometry is the cell-traversal collaborator consumed by the transport
// loop. Implementations mutate the particle's cell bookkeeping on crossing.
type Geometry interface {
	// FindCell locates the particle, setting Cell and Material; false when
	// the position is outside the geometry.
	FindCell(p *Particle) bool

	// DistanceToBoundary returns the flight distance to the nearest
	// boundary, the surface that would be hit, and whether the crossing is
	// a lattice crossing.
	DistanceToBoundary(p *Particle) (d float64, surface int, lattice bool)

	// CrossSurface moves the particle across the stored surface.
	CrossSurface(p *Particle, lastCell int)

	// CrossLattice moves the particle across a lattice boundary.
	CrossLattice(p *Particle)
}

// Tally is the scoring collaborator; Score is called once per collision
// with the scattered flag.
type Tally interface {
	Score(p *Particle, scattered bool)
}

// Box is a single-cell rectangular geometry with vacuum boundaries,
// centered on the origin. It stands in for the external geometry engine in
// the driver and in end-to-end tests; particles crossing any face leak.
type Box struct {
	HalfX, HalfY, HalfZ float64
	Material            int
}

// NewBox builds a box from full edge lengths [cm].
func NewBox(lx, ly, lz float64, material int) *Box {
	return &Box{HalfX: lx / 2, HalfY: ly / 2, HalfZ: lz / 2, Material: material}
}

func (b *Box) FindCell(p *Particle) bool {
	if math.Abs(p.X) > b.HalfX || math.Abs(p.Y) > b.HalfY || math.Abs(p.Z) > b.HalfZ {
		return false
	}
	p.Cell = 1
	p.Material = b.Material
	return true
}

func (b *Box) DistanceToBoundary(p *Particle) (float64, int, bool) {
	d := math.Inf(1)
	surface := 0
	axis := func(x, u, half float64, negID, posID int) {
		if u > 0 {
			if t := (half - x) / u; t < d {
				d, surface = t, posID
			}
		} else if u < 0 {
			if t := (-half - x) / u; t < d {
				d, surface = t, negID
			}
		}
	}
	axis(p.X, p.U, b.HalfX, 1, 2)
	axis(p.Y, p.V, b.HalfY, 3, 4)
	axis(p.Z, p.W, b.HalfZ, 5, 6)
	return d, surface, false
}

// CrossSurface leaks the particle: all box faces are vacuum.
func (b *Box) CrossSurface(p *Particle, lastCell int) {
	p.Kill()
}

func (b *Box) CrossLattice(p *Particle) {}
