package marcs

import (
	"fmt"
	"math"
	"slices"

	"github.com/aretw0/photosphere/pkg/domain"
	"gonum.org/v1/gonum/floats"
)

// kmToCm converts km/s to cm/s.
const kmToCm = 1e5

// MassTable provides atomic masses in u.
type MassTable interface {
	Mass(z int) (float64, bool)
}

// Options controls how abundances become mass fractions.
type Options struct {
	FinalAtomicNumber int
	// CompositionSource is domain.CompositionFromModel or
	// domain.CompositionAsplund2009.
	CompositionSource string
	// HeliumMassFractionY and HeavyMetalMassFractionZ override the model
	// composition unless equal to domain.NoCompositionOverride.
	HeliumMassFractionY     float64
	HeavyMetalMassFractionZ float64
}

// ToStellarModel converts the parsed file into the canonical model. Mass
// fractions are identical at every depth and the nuclide table is empty.
func (m *Model) ToStellarModel(atoms MassTable, opts Options) (*domain.StellarModel, error) {
	zs, fractions, err := m.MassFractions(atoms, opts)
	if err != nil {
		return nil, err
	}

	n := m.ShellCount()
	elemental, err := domain.NewTable(n, zs)
	if err != nil {
		return nil, err
	}
	column := make([]float64, n)
	for i, z := range zs {
		for row := range column {
			column[row] = fractions[i]
		}
		if err := elemental.SetColumn(z, column); err != nil {
			return nil, err
		}
	}
	nuclides, err := domain.NewTable[domain.Nuclide](n, nil)
	if err != nil {
		return nil, err
	}

	sm := &domain.StellarModel{
		Geometry:         make([]float64, n),
		Temperature:      make([]float64, n),
		Density:          make([]float64, n),
		ElectronPressure: make([]float64, n),
		GasPressure:      make([]float64, n),
		Microturbulence:  make([]float64, n),
		Composition: &domain.Composition{
			ElementalMassFraction: elemental,
			NuclideMassFraction:   nuclides,
		},
		Source: domain.Source{
			Format:               domain.FormatMARCS,
			Path:                 m.Path,
			Name:                 m.Header.Name,
			EffectiveTemperature: m.Header.EffectiveTemperature,
		},
	}
	if m.Header.SurfaceGravity > 0 {
		sm.Source.LogG = math.Log10(m.Header.SurfaceGravity)
	}
	for i, l := range m.Layers {
		sm.Geometry[i] = l.Depth
		sm.Temperature[i] = l.T
		sm.Density[i] = l.Density
		sm.ElectronPressure[i] = l.Pe
		sm.GasPressure[i] = l.Pg
		sm.Microturbulence[i] = m.Header.Microturbulence * kmToCm
	}
	return sm, nil
}

// MassFractions returns the atomic numbers kept, ascending, and their mass
// fractions. Elements at or below AbsentAbundance, or without a mass in
// atoms, are left out.
func (m *Model) MassFractions(atoms MassTable, opts Options) ([]int, []float64, error) {
	abundance := m.Abundance
	switch opts.CompositionSource {
	case "", domain.CompositionFromModel:
	case domain.CompositionAsplund2009:
		abundance = Asplund2009
	default:
		return nil, nil, &domain.CompositionError{Reason: fmt.Sprintf("unknown composition source %q", opts.CompositionSource)}
	}

	limit := min(opts.FinalAtomicNumber, NumAbundances)
	var (
		zs      []int
		weights []float64
	)
	for z := 1; z <= limit; z++ {
		logEps, ok := abundance(z)
		if !ok || logEps <= AbsentAbundance {
			continue
		}
		mass, ok := atoms.Mass(z)
		if !ok {
			continue
		}
		zs = append(zs, z)
		weights = append(weights, math.Pow(10, logEps-12)*mass)
	}
	if len(zs) == 0 {
		return nil, nil, &domain.CompositionError{Reason: fmt.Sprintf("no element up to Z=%d has both an abundance and a mass", limit)}
	}

	floats.Scale(1/floats.Sum(weights), weights)
	if err := rescale(zs, weights, opts.HeliumMassFractionY, opts.HeavyMetalMassFractionZ); err != nil {
		return nil, nil, err
	}
	return zs, weights, nil
}

// rescale applies the helium (Y) and metal (Z) overrides in place.
func rescale(zs []int, w []float64, y, z float64) error {
	he, _ := slices.BinarySearch(zs, 2)
	hasHe := he < len(zs) && zs[he] == 2

	if y != domain.NoCompositionOverride {
		if y < 0 || y > 1 {
			return &domain.CompositionError{Reason: fmt.Sprintf("helium mass fraction %g outside [0, 1]", y)}
		}
		if !hasHe {
			return &domain.CompositionError{Reason: "helium mass fraction set but helium is absent"}
		}
		others := 1 - w[he]
		if others <= 0 && y < 1 {
			return &domain.CompositionError{Reason: "no elements besides helium to rescale"}
		}
		for i := range w {
			if i != he && others > 0 {
				w[i] *= (1 - y) / others
			}
		}
		w[he] = y
	}

	if z != domain.NoCompositionOverride {
		if z < 0 || z > 1 {
			return &domain.CompositionError{Reason: fmt.Sprintf("metal mass fraction %g outside [0, 1]", z)}
		}
		helium := 0.0
		if hasHe {
			helium = w[he]
		}
		if helium+z > 1 {
			return &domain.CompositionError{Reason: fmt.Sprintf("Y + Z = %g exceeds 1", helium+z)}
		}
		if zs[0] != 1 {
			return &domain.CompositionError{Reason: "metal mass fraction set but hydrogen is absent"}
		}

		metals := 0.0
		for i, atomic := range zs {
			if atomic >= 3 {
				metals += w[i]
			}
		}
		if metals == 0 && z > 0 {
			return &domain.CompositionError{Reason: "metal mass fraction set but no metals are present"}
		}
		for i, atomic := range zs {
			if atomic >= 3 && metals > 0 {
				w[i] *= z / metals
			}
		}
		w[0] = 1 - helium - z
	}

	for i, v := range w {
		if v < 0 {
			if v > -1e-12 {
				w[i] = 0
				continue
			}
			return &domain.CompositionError{Reason: fmt.Sprintf("negative mass fraction %g for Z=%d", v, zs[i])}
		}
	}
	return nil
}
