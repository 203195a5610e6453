package mesa

import (
	"maps"
	"math"
	"slices"

	"github.com/aretw0/photosphere/pkg/domain"
	"gonum.org/v1/gonum/floats"
)

// ElementSet reports which atomic numbers the atom data covers.
type ElementSet interface {
	Has(z int) bool
}

// ToStellarModel converts the (possibly truncated) profile. Nuclides of
// elements above finalAtomicNumber, or missing from atoms, are left out;
// each element's mass fraction is the sum of its isotopes.
func (m *Model) ToStellarModel(atoms ElementSet, finalAtomicNumber int) (*domain.StellarModel, error) {
	n := m.rows

	logT, _ := m.Column("logT")
	logRho, _ := m.Column("logRho")
	logP, _ := m.Column("logP")

	sm := &domain.StellarModel{
		Geometry:         m.geometry(),
		Temperature:      pow10(logT),
		Density:          pow10(logRho),
		ElectronPressure: make([]float64, n),
		GasPressure:      pow10(logP),
		Microturbulence:  m.microturbulence(),
		Source: domain.Source{
			Format: domain.FormatMESA,
			Path:   m.Path,
		},
	}
	if v, ok := m.Header("model_number"); ok {
		sm.Source.Name = "model " + v
	}

	byColumn := m.NuclideColumns()
	names := slices.Collect(maps.Keys(byColumn))
	slices.SortFunc(names, func(a, b string) int { return domain.CompareNuclides(byColumn[a], byColumn[b]) })

	var (
		nuclideKeys []domain.Nuclide
		nuclideCols []string
		elements    = make(map[int][]float64)
	)
	for _, name := range names {
		nuc := byColumn[name]
		z := nuc.AtomicNumber
		if z > finalAtomicNumber || !atoms.Has(z) {
			continue
		}
		if slices.Contains(nuclideKeys, nuc) {
			return nil, &domain.CompositionError{Reason: "nuclide " + nuc.String() + " appears in more than one column"}
		}
		nuclideKeys = append(nuclideKeys, nuc)
		nuclideCols = append(nuclideCols, name)

		col, _ := m.Column(name)
		if sum, ok := elements[z]; ok {
			floats.Add(sum, col)
		} else {
			elements[z] = col
		}
	}

	nuclides, err := domain.NewTable(n, nuclideKeys)
	if err != nil {
		return nil, err
	}
	for i, key := range nuclideKeys {
		col, _ := m.Column(nuclideCols[i])
		if err := nuclides.SetColumn(key, col); err != nil {
			return nil, err
		}
	}

	zs := slices.Sorted(maps.Keys(elements))
	elemental, err := domain.NewTable(n, zs)
	if err != nil {
		return nil, err
	}
	for _, z := range zs {
		if err := elemental.SetColumn(z, elements[z]); err != nil {
			return nil, err
		}
	}

	sm.Composition = &domain.Composition{
		ElementalMassFraction: elemental,
		NuclideMassFraction:   nuclides,
	}
	return sm, nil
}

func (m *Model) geometry() []float64 {
	if radius, ok := m.Column("radius"); ok {
		floats.Scale(SolarRadius, radius)
		return radius
	}
	logR, _ := m.Column("logR")
	r := pow10(logR)
	floats.Scale(SolarRadius, r)
	return r
}

func (m *Model) microturbulence() []float64 {
	for _, name := range []string{"vturb", "conv_vel"} {
		if v, ok := m.Column(name); ok {
			return v
		}
	}
	return make([]float64, m.rows)
}

func pow10(logs []float64) []float64 {
	out := make([]float64, len(logs))
	for i, v := range logs {
		out[i] = math.Pow(10, v)
	}
	return out
}
