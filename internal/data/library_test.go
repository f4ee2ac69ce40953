package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatNuclide(name string, grid []float64, sigma float64) *Nuclide {
	n := len(grid)
	flat := make([]float64, n)
	for i := range flat {
		flat[i] = sigma
	}
	return &Nuclide{
		Name:       name,
		AWR:        1.,
		Energy:     grid,
		Total:      flat,
		Elastic:    flat,
		Absorption: make([]float64, n),
		Reactions:  []Reaction{{MT: MTElastic, TY: 1, Sigma: flat}},
	}
}

func TestUnionizeIndexInvariant(t *testing.T) {
	lib := &Library{}
	a := flatNuclide("A", []float64{1., 3., 7., 10.}, 1.)
	b := flatNuclide("B", []float64{2., 5., 10.}, 1.)
	_, err := lib.AddNuclide(a)
	require.NoError(t, err)
	_, err = lib.AddNuclide(b)
	require.NoError(t, err)
	require.NoError(t, lib.Unionize())

	assert.Equal(t, []float64{1., 2., 3., 5., 7., 10.}, lib.EGrid)

	for _, nuc := range lib.Nuclides {
		require.Len(t, nuc.GridIndex, len(lib.EGrid))
		for k, e := range lib.EGrid {
			i := int(nuc.GridIndex[k])
			assert.LessOrEqual(t, i, len(nuc.Energy)-2)
			if e >= nuc.Energy[0] && e < nuc.Energy[len(nuc.Energy)-1] {
				assert.LessOrEqual(t, nuc.Energy[i], e, "nuclide %s grid point %d", nuc.Name, k)
				assert.Greater(t, nuc.Energy[i+1], e, "nuclide %s grid point %d", nuc.Name, k)
			}
		}
	}
}

func TestFindEnergyIndexClamps(t *testing.T) {
	lib := &Library{}
	_, err := lib.AddNuclide(flatNuclide("A", []float64{1., 2., 4.}, 1.))
	require.NoError(t, err)
	require.NoError(t, lib.Unionize())

	ie, f := lib.FindEnergyIndex(0.5)
	assert.Equal(t, 0, ie)
	assert.Less(t, f, 0., "under-range factor")

	ie, f = lib.FindEnergyIndex(8.)
	assert.Equal(t, len(lib.EGrid)-2, ie)
	assert.Greater(t, f, 1., "over-range factor")

	ie, f = lib.FindEnergyIndex(3.)
	assert.Equal(t, 1, ie)
	assert.InDelta(t, 0.5, f, 1e-15)
}

func TestNuclideNamesNaturalOrder(t *testing.T) {
	lib := &Library{}
	for _, name := range []string{"U238", "H2", "U235", "H1"} {
		_, err := lib.AddNuclide(flatNuclide(name, []float64{1., 2.}, 1.))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"H1", "H2", "U235", "U238"}, lib.NuclideNames())
}

func TestAddMaterialValidation(t *testing.T) {
	lib := &Library{}
	i, err := lib.AddNuclide(flatNuclide("A", []float64{1., 2.}, 1.))
	require.NoError(t, err)

	_, err = lib.AddMaterial(&Material{Name: "m", Nuclides: []int{i}, Densities: []float64{-1.}})
	assert.ErrorIs(t, err, ErrBadData, "non-positive density")
	_, err = lib.AddMaterial(&Material{Name: "m", Nuclides: []int{5}, Densities: []float64{1.}})
	assert.ErrorIs(t, err, ErrBadData, "dangling nuclide index")
	_, err = lib.AddMaterial(&Material{Name: "m", Nuclides: []int{i}, Densities: []float64{0.02}})
	assert.NoError(t, err)
}

func TestNuValue(t *testing.T) {
	poly := Nu{Form: NuPolynomial, Coeffs: []float64{2.4, 0.1}}
	assert.InDelta(t, 2.4, poly.Value(0.), 1e-15)
	assert.InDelta(t, 2.6, poly.Value(2.), 1e-15)

	tab, err := NewTab1(1, []float64{0., 10.}, []float64{2., 3.})
	require.NoError(t, err)
	nu := Nu{Form: NuTabular, Table: tab}
	assert.InDelta(t, 2.5, nu.Value(5.), 1e-15)

	assert.Zero(t, Nu{}.Value(1.))
}

func TestReactionXS(t *testing.T) {
	r := Reaction{MT: 51, ThresholdIndex: 2, Sigma: []float64{0., 1., 2.}}
	assert.Zero(t, r.XS(1, 0.5), "below threshold")
	assert.InDelta(t, 0.5, r.XS(2, 0.5), 1e-15)
	assert.InDelta(t, 2., r.XS(4, 0.), 1e-15, "last grid point")
	assert.Zero(t, r.XS(5, 0.3), "beyond tabulated range")
}
