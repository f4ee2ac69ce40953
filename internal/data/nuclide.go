package data

import "fmt"

// ENDF MT reaction identifiers the core dispatches on.
const (
	MTTotal          = 1
	MTElastic        = 2
	MTLevelInelastic = 4 // umbrella over MT 51-91; never sampled directly
	MTN2N            = 16
	MTN3N            = 17
	MTFission        = 18
	MTFissionFirst   = 19
	MTFissionSecond  = 20
	MTFissionThird   = 21
	MTFissionFourth  = 38
	MTDisappearFirst = 102
	MTDisappearLast  = 117
	MTGasProduction  = 200 // MT >= 200 are production summaries, never sampled
)

// IsFission reports whether mt is total or partial fission.
func IsFission(mt int) bool {
	switch mt {
	case MTFission, MTFissionFirst, MTFissionSecond, MTFissionThird, MTFissionFourth:
		return true
	}
	return false
}

// IsDisappearance reports whether mt absorbs the neutron without secondaries.
func IsDisappearance(mt int) bool {
	return mt >= MTDisappearFirst && mt <= MTDisappearLast
}

// IsInelasticScatter reports whether mt is a scattering channel with
// secondary neutrons: (n,n'), (n,2n) and the continuum/level family.
func IsInelasticScatter(mt int) bool {
	if mt >= 51 && mt <= 91 {
		return true
	}
	switch mt {
	case 11, 16, 17, 22, 23, 24, 25, 28, 29, 30, 32, 33, 34, 35, 36, 37, 41, 42, 44, 45:
		return true
	}
	return false
}

// Reaction is one channel of a nuclide. Sigma is aligned to the owning
// nuclide's grid starting at ThresholdIndex: Sigma[j] corresponds to
// Energy[ThresholdIndex+j].
type Reaction struct {
	MT             int
	Q              float64 // [MeV]
	TY             int     // sign: CM (<0) vs lab frame; magnitude: secondary multiplicity
	ThresholdIndex int
	Sigma          []float64
	Angle          *AngleDist // nil: isotropic
	Energy         EnergyDist // nil: no secondary-energy change
}

// CMFrame reports whether the secondary distributions are given in the
// center-of-mass frame.
func (r *Reaction) CMFrame() bool { return r.TY < 0 }

// Multiplicity is the number of secondary neutrons per event.
func (r *Reaction) Multiplicity() int {
	if r.TY < 0 {
		return -r.TY
	}
	return r.TY
}

// XS evaluates the reaction cross section from a nuclide-grid index and
// interpolation fraction, zero below threshold.
func (r *Reaction) XS(ie int, f float64) float64 {
	j := ie - r.ThresholdIndex
	if j < 0 || j+1 >= len(r.Sigma) {
		if j+1 == len(r.Sigma) && f == 0 {
			return r.Sigma[j]
		}
		return 0
	}
	return (1-f)*r.Sigma[j] + f*r.Sigma[j+1]
}

type NuForm int

const (
	NuNone NuForm = iota
	NuPolynomial
	NuTabular
)

// Nu is a nu-bar representation: mean neutrons per fission as either a
// polynomial in E or a tabulated function.
type Nu struct {
	Form   NuForm
	Coeffs []float64
	Table  Tab1
}

// Value evaluates nu-bar at E [MeV]; zero for the NuNone form.
func (n Nu) Value(e float64) float64 {
	switch n.Form {
	case NuPolynomial:
		v := 0.0
		for i := len(n.Coeffs) - 1; i >= 0; i-- {
			v = v*e + n.Coeffs[i]
		}
		return v
	case NuTabular:
		return n.Table.Evaluate(e)
	}
	return 0
}

// Precursor is one delayed-neutron precursor group: decay constant plus the
// group yield fraction as a function of incident energy.
type Precursor struct {
	DecayConstant float64 // [1/s]
	Yield         Tab1    // fraction of delayed neutrons in this group
}

// Nuclide is one evaluated nuclide, read-only after load.
type Nuclide struct {
	Name string
	AWR  float64 // atomic weight ratio to the neutron

	// Energy is the nuclide's own grid, strictly increasing; the summed
	// cross-section arrays share its length. Fission is nil for
	// non-fissionable nuclides.
	Energy     []float64
	Total      []float64
	Elastic    []float64
	Absorption []float64
	Fission    []float64

	// GridIndex maps a unionized-grid index to this nuclide's own grid
	// index; built once by Library.Unionize.
	GridIndex []int32

	Reactions []Reaction

	Fissionable       bool
	HasPartialFission bool
	IndexFission      []int // indices into Reactions of the fission channels

	NuTotal   Nu
	NuPrompt  Nu // NuNone when the evaluation has no prompt/total split
	NuDelayed Nu

	Precursors    []Precursor
	DelayedEnergy []EnergyDist // daughter spectrum per precursor group
}

// Validate checks the structural invariants of the nuclide tables.
func (n *Nuclide) Validate() error {
	ne := len(n.Energy)
	if ne < 2 {
		return fmt.Errorf("%w: nuclide %s with %d grid points", ErrBadData, n.Name, ne)
	}
	for i := 1; i < ne; i++ {
		if n.Energy[i] <= n.Energy[i-1] {
			return fmt.Errorf("%w: nuclide %s grid not strictly increasing at %d", ErrBadData, n.Name, i)
		}
	}
	if len(n.Total) != ne || len(n.Elastic) != ne || len(n.Absorption) != ne {
		return fmt.Errorf("%w: nuclide %s summed cross sections do not span the grid", ErrBadData, n.Name)
	}
	if n.Fissionable {
		if len(n.Fission) != ne {
			return fmt.Errorf("%w: fissionable nuclide %s without a fission array", ErrBadData, n.Name)
		}
		if n.NuTotal.Form == NuNone {
			return fmt.Errorf("%w: fissionable nuclide %s without nu-bar", ErrBadData, n.Name)
		}
		if len(n.IndexFission) == 0 {
			return fmt.Errorf("%w: fissionable nuclide %s without a fission channel", ErrBadData, n.Name)
		}
		if len(n.Precursors) != len(n.DelayedEnergy) {
			return fmt.Errorf("%w: nuclide %s with %d precursor groups, %d delayed spectra",
				ErrBadData, n.Name, len(n.Precursors), len(n.DelayedEnergy))
		}
		for _, i := range n.IndexFission {
			if i < 0 || i >= len(n.Reactions) || !IsFission(n.Reactions[i].MT) {
				return fmt.Errorf("%w: nuclide %s fission index %d does not name a fission channel",
					ErrBadData, n.Name, i)
			}
			if n.Reactions[i].MT != MTFission {
				n.HasPartialFission = true
			}
		}
	}
	for i := range n.Reactions {
		r := &n.Reactions[i]
		if r.ThresholdIndex < 0 || r.ThresholdIndex+len(r.Sigma) > ne {
			return fmt.Errorf("%w: nuclide %s reaction MT=%d sigma misaligned with grid", ErrBadData, n.Name, r.MT)
		}
	}
	return nil
}

// Reaction returns the first channel with the given MT, nil when absent.
func (n *Nuclide) Reaction(mt int) *Reaction {
	for i := range n.Reactions {
		if n.Reactions[i].MT == mt {
			return &n.Reactions[i]
		}
	}
	return nil
}

// FissionReaction returns the channel used for fission sampling: the total
// fission channel when present, else the first partial.
func (n *Nuclide) FissionReaction() *Reaction {
	if !n.Fissionable {
		return nil
	}
	for _, i := range n.IndexFission {
		if n.Reactions[i].MT == MTFission {
			return &n.Reactions[i]
		}
	}
	return &n.Reactions[n.IndexFission[0]]
}
