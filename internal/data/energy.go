package data

import "fmt"

// EnergyDist is a secondary-energy distribution. One variant exists per
// evaluated-data law; the flat-blob layout of the source format is unpacked
// into the variant at load time.
type EnergyDist interface {
	Law() int
}

// LawEquiBins is law 1: tabular equiprobable energy bins. Tables[i] holds
// the outgoing-energy bin bounds at Incident[i]; all tables share a length
// of NET+1 bounds for NET bins.
type LawEquiBins struct {
	Incident []float64
	Tables   [][]float64
}

func (*LawEquiBins) Law() int { return 1 }

// LawLevel is law 3, inelastic level scattering: Eout = Scale*(Ein - Shift).
// Shift is ((A+1)/A)*|Q| and Scale is (A/(A+1))^2 for a level with Q < 0.
type LawLevel struct {
	Shift, Scale float64
}

func (*LawLevel) Law() int { return 3 }

// ContTable is one continuous tabular spectrum: outgoing energies with pdf
// and cdf, histogram or lin-lin interpolated. R and A are the Kalbach-Mann
// precompound fraction and slope, present only under law 44.
type ContTable struct {
	Interp   int
	Eout     []float64
	PDF, CDF []float64
	R, A     []float64
}

// LawContinuous is law 4: continuous tabular spectra on an incident grid.
type LawContinuous struct {
	Incident []float64
	Tables   []ContTable
}

func (*LawContinuous) Law() int { return 4 }

// LawGeneralEvaporation is law 5. Recognized but not modelled; sampling it
// is a fatal error.
type LawGeneralEvaporation struct {
	Theta Tab1
	X     []float64
}

func (*LawGeneralEvaporation) Law() int { return 5 }

// LawMaxwell is law 7: Maxwell fission spectrum with tabulated nuclear
// temperature.
type LawMaxwell struct {
	Theta Tab1
	U     float64
}

func (*LawMaxwell) Law() int { return 7 }

// LawEvaporation is law 9: evaporation spectrum with restriction energy U.
type LawEvaporation struct {
	Theta Tab1
	U     float64
}

func (*LawEvaporation) Law() int { return 9 }

// LawWatt is law 11: energy-dependent Watt spectrum.
type LawWatt struct {
	A, B Tab1
	U    float64
}

func (*LawWatt) Law() int { return 11 }

// LawKalbach is law 44: Kalbach-Mann correlated energy-angle. Tables carry
// R and A alongside the spectrum.
type LawKalbach struct {
	Incident []float64
	Tables   []ContTable
}

func (*LawKalbach) Law() int { return 44 }

// CorrTable is one law-61 spectrum: a continuous tabular energy table with
// angular data attached per outgoing-energy point; nil Angle entries are
// isotropic.
type CorrTable struct {
	Interp   int
	Eout     []float64
	PDF, CDF []float64
	Angle    []*AngleTable
}

// LawCorrelated is law 61: continuous tabular energy with a tabulated
// angular distribution attached to each outgoing-energy point.
type LawCorrelated struct {
	Incident []float64
	Tables   []CorrTable
}

func (*LawCorrelated) Law() int { return 61 }

// LawNBody is law 66: N-body phase-space distribution. Ap is the total mass
// ratio of the N bodies; AWR and Q are baked in from the owning reaction.
type LawNBody struct {
	NBodies int
	Ap      float64
	AWR     float64
	Q       float64
}

func (*LawNBody) Law() int { return 66 }

// LawLabAngleEnergy is law 67. Recognized but not modelled; sampling it is
// a fatal error.
type LawLabAngleEnergy struct{}

func (*LawLabAngleEnergy) Law() int { return 67 }

// UnpackINTT splits the packed INTT + 10*ND interpolation code of a
// continuous tabular spectrum. Discrete lines (ND > 0) are rejected, as is
// any interpolation scheme other than histogram or lin-lin.
func UnpackINTT(code int) (interp int, err error) {
	nd := code / 10
	interp = code % 10
	if nd > 0 {
		return 0, fmt.Errorf("%w: discrete lines in continuous tabular spectrum (ND=%d)", ErrBadData, nd)
	}
	if interp != InterpHistogram && interp != InterpLinLin {
		return 0, fmt.Errorf("%w: unknown interpolation code %d", ErrBadData, interp)
	}
	return interp, nil
}

// NewContTable validates a continuous tabular spectrum. code is the packed
// INTT + 10*ND interpolation flag. r and a may be nil except under law 44.
func NewContTable(code int, eout, pdf, cdf, r, a []float64) (ContTable, error) {
	interp, err := UnpackINTT(code)
	if err != nil {
		return ContTable{}, err
	}
	np := len(eout)
	if np < 2 || len(pdf) != np || len(cdf) != np {
		return ContTable{}, fmt.Errorf("%w: spectrum with %d points, %d pdf, %d cdf", ErrBadData, np, len(pdf), len(cdf))
	}
	if (r != nil || a != nil) && (len(r) != np || len(a) != np) {
		return ContTable{}, fmt.Errorf("%w: Kalbach parameters with %d R, %d A for %d points", ErrBadData, len(r), len(a), np)
	}
	return ContTable{Interp: interp, Eout: eout, PDF: pdf, CDF: cdf, R: r, A: a}, nil
}

// NewLawNBody validates the body count of a phase-space distribution.
func NewLawNBody(nBodies int, ap, awr, q float64) (*LawNBody, error) {
	if nBodies < 3 || nBodies > 5 {
		return nil, fmt.Errorf("%w: N-body phase space with %d bodies", ErrBadData, nBodies)
	}
	return &LawNBody{NBodies: nBodies, Ap: ap, AWR: awr, Q: q}, nil
}
