// Package transport implements the per-particle random walk: cross-section
// lookup on the unionized grid, collision sampling, survival biasing, and
// fission-site banking. All nuclear data is borrowed read-only from the
// data arena; every worker owns its context, so the hot path is lock-free.
package transport

import "errors"

var (
	// ErrLostParticle reports a particle the geometry cannot locate at birth.
	ErrLostParticle = errors.New("particle could not be located")

	// ErrInconsistentXS reports a cumulative sampling scan falling off the
	// end: the macroscopic total disagrees with the microscopic values.
	ErrInconsistentXS = errors.New("cross sections inconsistent with macroscopic total")
)

// Particle is the transient state of one history.
type Particle struct {
	ID int64

	X, Y, Z float64 // position [cm]
	U, V, W float64 // direction cosines, unit norm
	E       float64 // energy [MeV], strictly positive while alive
	Wgt     float64 // statistical weight

	Alive bool

	Cell     int // current cell, 0 when unlocated
	Material int // index into Library.Materials
	Surface  int // most recent surface crossed
	CellBorn int

	NCollisions int

	// cached unionized-grid position, refreshed after each collision
	IE     int
	Interp float64

	// snapshot at the last collision, for tallies and implicit fission
	LastWgt float64
	LastE   float64

	Mu float64 // last sampled scattering cosine
}

// Move advances the particle d along its flight direction.
func (p *Particle) Move(d float64) {
	p.X += d * p.U
	p.Y += d * p.V
	p.Z += d * p.W
}

// Kill marks the particle dead; the transport loop exits on the next check.
func (p *Particle) Kill() {
	p.Alive = false
}
