package physics

import (
	"math"

	"github.com/ethanio12345/OpenMC/internal/data"
)

// ElasticScatter performs target-at-rest elastic scattering: boost to the
// center of mass, sample the CM cosine from the reaction's angular
// distribution, rotate, boost back. Speeds are carried as sqrt(E); the mass
// factors cancel in the velocity ratios. Returns the outgoing energy and
// direction with the sampled CM cosine.
func (s *Sampler) ElasticScatter(e, u, v, w, awr float64, ad *data.AngleDist) (eOut, uOut, vOut, wOut, mu float64) {
	vel := math.Sqrt(e)

	// neutron velocity and CM velocity along the flight direction
	vnx, vny, vnz := vel*u, vel*v, vel*w
	vcx, vcy, vcz := vnx/(awr+1.), vny/(awr+1.), vnz/(awr+1.)

	// neutron velocity in the CM frame; magnitude is invariant under the
	// CM rotation
	vx, vy, vz := vnx-vcx, vny-vcy, vnz-vcz
	speed := math.Sqrt(vx*vx + vy*vy + vz*vz)

	mu = s.SampleAngle(ad, e)
	ru, rv, rw := s.RotateAngle(vx/speed, vy/speed, vz/speed, mu)

	// back to the lab frame
	vx, vy, vz = speed*ru+vcx, speed*rv+vcy, speed*rw+vcz
	eOut = vx*vx + vy*vy + vz*vz
	norm := math.Sqrt(eOut)
	uOut, vOut, wOut = vx/norm, vy/norm, vz/norm
	return
}

// InelasticScatter samples the secondary energy and cosine for a reaction
// with an energy distribution, converting CM results to the lab frame when
// the evaluation is CM-native (TY < 0). Returns the outgoing energy,
// direction, lab cosine, and the secondary multiplicity to fold into the
// particle weight.
func (s *Sampler) InelasticScatter(e, u, v, w, awr float64, rxn *data.Reaction) (eOut, uOut, vOut, wOut, mu float64, yield int, err error) {
	yield = rxn.Multiplicity()

	if rxn.Energy == nil {
		// no secondary-energy data: direction change only
		mu = s.SampleAngle(rxn.Angle, e)
		uOut, vOut, wOut = s.RotateAngle(u, v, w, mu)
		eOut = e
		return
	}

	switch rxn.Energy.(type) {
	case *data.LawKalbach, *data.LawCorrelated:
		eOut, err = s.SampleEnergy(rxn.Energy, e, &mu)
	default:
		mu = s.SampleAngle(rxn.Angle, e)
		eOut, err = s.SampleEnergy(rxn.Energy, e, nil)
	}
	if err != nil {
		return
	}

	if rxn.CMFrame() {
		eCM := eOut
		a1 := awr + 1.
		eOut = eCM + (e+2.*mu*a1*math.Sqrt(e*eCM))/(a1*a1)
		mu = mu*math.Sqrt(eCM/eOut) + math.Sqrt(e/eOut)/a1
	}
	if mu < -1. || mu > 1. {
		s.warnMu(mu)
		mu = math.Max(-1., math.Min(1., mu))
	}
	uOut, vOut, wOut = s.RotateAngle(u, v, w, mu)
	return
}
