package data

import "fmt"

// Interpolation codes for tabular probability densities.
const (
	InterpHistogram = 1
	InterpLinLin    = 2
)

type AngleType int

const (
	AngleIsotropic AngleType = iota
	AngleEquiBins
	AngleTabular
)

// AngleTable is a tabulated angular pdf at one incident energy: NP cosines
// with pdf and cdf values, histogram or lin-lin interpolated.
type AngleTable struct {
	Interp   int
	Cosine   []float64
	PDF, CDF []float64
}

// AngleData is the angular distribution at one incident-energy breakpoint.
// For AngleEquiBins, Bins holds the 33 cosine bounds of 32 equiprobable
// bins. For AngleTabular, Table holds the cdf.
type AngleData struct {
	Type  AngleType
	Bins  []float64
	Table *AngleTable
}

// AngleDist is a per-reaction angular distribution: one AngleData per
// incident-energy breakpoint. A nil AngleDist means isotropic scattering.
type AngleDist struct {
	Energy []float64
	Data   []AngleData
}

// NewAngleTable validates a tabular angular pdf.
func NewAngleTable(interp int, cosine, pdf, cdf []float64) (*AngleTable, error) {
	if interp != InterpHistogram && interp != InterpLinLin {
		return nil, fmt.Errorf("%w: unknown interpolation code %d", ErrBadData, interp)
	}
	if len(cosine) < 2 || len(pdf) != len(cosine) || len(cdf) != len(cosine) {
		return nil, fmt.Errorf("%w: angular table with %d cosines, %d pdf, %d cdf",
			ErrBadData, len(cosine), len(pdf), len(cdf))
	}
	return &AngleTable{Interp: interp, Cosine: cosine, PDF: pdf, CDF: cdf}, nil
}

// NewAngleDist validates breakpoint consistency.
func NewAngleDist(energy []float64, dists []AngleData) (*AngleDist, error) {
	if len(energy) == 0 || len(energy) != len(dists) {
		return nil, fmt.Errorf("%w: angular distribution with %d energies, %d tables",
			ErrBadData, len(energy), len(dists))
	}
	for i := 1; i < len(energy); i++ {
		if energy[i] <= energy[i-1] {
			return nil, fmt.Errorf("%w: non-increasing angular breakpoint at index %d", ErrBadData, i)
		}
	}
	for i := range dists {
		switch dists[i].Type {
		case AngleIsotropic:
		case AngleEquiBins:
			if len(dists[i].Bins) != 33 {
				return nil, fmt.Errorf("%w: equiprobable-bin table with %d bounds", ErrBadData, len(dists[i].Bins))
			}
		case AngleTabular:
			if dists[i].Table == nil {
				return nil, fmt.Errorf("%w: tabular angular data without a table", ErrBadData)
			}
		default:
			return nil, fmt.Errorf("%w: unknown angular distribution type %d", ErrBadData, dists[i].Type)
		}
	}
	return &AngleDist{Energy: energy, Data: dists}, nil
}
