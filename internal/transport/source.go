package transport

import (
	"math"

	"github.com/ethanio12345/OpenMC/internal/physics"
)

// Watt parameters of the thermal U235 fission spectrum, used for the
// initial source guess before the first fission bank exists.
const (
	wattA = 0.988 // [MeV]
	wattB = 2.249 // [1/MeV]
)

// SourceParticle samples a first-generation particle: a point source at the
// origin with an isotropic direction and a Watt spectrum energy.
func SourceParticle(s *physics.Sampler, id int64) *Particle {
	mu := 2.*s.Rng.Float64() - 1.
	phi := 2. * math.Pi * s.Rng.Float64()
	sin := math.Sqrt(math.Max(0., 1.-mu*mu))
	return &Particle{
		ID:    id,
		U:     mu,
		V:     sin * math.Cos(phi),
		W:     sin * math.Sin(phi),
		E:     s.Watt(wattA, wattB),
		Wgt:   1,
		Alive: true,
	}
}

// ParticleFromSite revives a banked fission site as a next-generation
// source particle.
func ParticleFromSite(site Site, id int64) *Particle {
	return &Particle{
		ID:    id,
		X:     site.X,
		Y:     site.Y,
		Z:     site.Z,
		U:     site.U,
		V:     site.V,
		W:     site.W,
		E:     site.E,
		Wgt:   1,
		Alive: true,
	}
}
