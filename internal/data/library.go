package data

import (
	"fmt"
	"sort"

	"github.com/facette/natsort"

	"github.com/ethanio12345/OpenMC/internal/utils"
)

// Material is an ordered list of nuclides with atom densities in
// atoms/(barn*cm).
type Material struct {
	Name      string
	Nuclides  []int // indices into Library.Nuclides
	Densities []float64
}

// Library is the read-only data arena shared by every worker: nuclides,
// materials, and the unionized energy grid. Cross-references are integer
// indices into the arena.
type Library struct {
	Nuclides  []*Nuclide
	Materials []*Material
	EGrid     []float64
}

// AddNuclide validates and appends a nuclide, returning its arena index.
func (l *Library) AddNuclide(n *Nuclide) (int, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}
	l.Nuclides = append(l.Nuclides, n)
	return len(l.Nuclides) - 1, nil
}

// AddMaterial validates and appends a material, returning its arena index.
func (l *Library) AddMaterial(m *Material) (int, error) {
	if len(m.Nuclides) == 0 || len(m.Nuclides) != len(m.Densities) {
		return 0, fmt.Errorf("%w: material %s with %d nuclides, %d densities",
			ErrBadData, m.Name, len(m.Nuclides), len(m.Densities))
	}
	for i, in := range m.Nuclides {
		if in < 0 || in >= len(l.Nuclides) {
			return 0, fmt.Errorf("%w: material %s references nuclide %d", ErrBadData, m.Name, in)
		}
		if m.Densities[i] <= 0 {
			return 0, fmt.Errorf("%w: material %s with non-positive density for %s",
				ErrBadData, m.Name, l.Nuclides[in].Name)
		}
	}
	l.Materials = append(l.Materials, m)
	return len(l.Materials) - 1, nil
}

// NuclideNames lists the loaded nuclide names in natural order
// (H1, H2, ..., U235, U238).
func (l *Library) NuclideNames() []string {
	names := make([]string, len(l.Nuclides))
	for i, n := range l.Nuclides {
		names[i] = n.Name
	}
	sort.Slice(names, func(i, j int) bool { return natsort.Compare(names[i], names[j]) })
	return names
}

// Unionize merges every nuclide grid into one strictly increasing energy
// grid and builds each nuclide's GridIndex map onto it. Must be called once
// after loading, before transport.
func (l *Library) Unionize() error {
	if len(l.Nuclides) == 0 {
		return fmt.Errorf("%w: empty library", ErrBadData)
	}
	var merged []float64
	for _, n := range l.Nuclides {
		merged = append(merged, n.Energy...)
	}
	sort.Float64s(merged)
	grid := merged[:0]
	var prev float64
	for i, e := range merged {
		if i == 0 || e != prev {
			grid = append(grid, e)
			prev = e
		}
	}
	l.EGrid = grid

	for _, n := range l.Nuclides {
		n.GridIndex = make([]int32, len(grid))
		last := len(n.Energy) - 2
		for k, e := range grid {
			i := utils.BinarySearch(n.Energy, e)
			if i > last {
				i = last
			}
			n.GridIndex[k] = int32(i)
		}
	}
	return nil
}

// FindEnergyIndex locates E on the unionized grid. Under-range returns
// index 0 with a negative fraction; over-range returns the last interval
// with a fraction above 1.
func (l *Library) FindEnergyIndex(e float64) (ie int, f float64) {
	n := len(l.EGrid)
	switch {
	case e < l.EGrid[0]:
		ie = 0
	case e > l.EGrid[n-1]:
		ie = n - 2
	default:
		ie = utils.BinarySearch(l.EGrid, e)
	}
	f = (e - l.EGrid[ie]) / (l.EGrid[ie+1] - l.EGrid[ie])
	return
}
