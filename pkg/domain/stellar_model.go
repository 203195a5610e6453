package domain

import (
	"fmt"
	"slices"
)

// Composition holds the elemental and nuclide mass-fraction tables of a model.
type Composition struct {
	// ElementalMassFraction is shells x atomic numbers, columns ascending.
	ElementalMassFraction *Table[int]
	// NuclideMassFraction is shells x nuclides.
	NuclideMassFraction *Table[Nuclide]
}

// AtomicNumbers returns the elemental column labels.
func (c *Composition) AtomicNumbers() []int {
	return c.ElementalMassFraction.Keys()
}

// Source records where a StellarModel came from.
type Source struct {
	Format ModelFormat
	Path   string
	Name   string
	// EffectiveTemperature in K; 0 when the format does not record it.
	EffectiveTemperature float64
	// LogG is log10 of the surface gravity in cgs; 0 when unknown.
	LogG float64
}

// StellarModel is the canonical, format-independent structure handed to the
// radiative-transfer engine. Every depth-indexed slice has NoOfShells entries.
type StellarModel struct {
	// Geometry is the depth (MARCS) or radius (MESA) of each shell in cm.
	Geometry []float64
	// Temperature in K.
	Temperature []float64
	// Density in g/cm^3.
	Density []float64
	// ElectronPressure in dyn/cm^2; zero-filled when the format lacks it.
	ElectronPressure []float64
	// GasPressure in dyn/cm^2.
	GasPressure []float64
	// Microturbulence velocity in cm/s.
	Microturbulence []float64

	Composition *Composition
	Source      Source
}

// NoOfShells returns the number of depth points.
func (m *StellarModel) NoOfShells() int {
	return len(m.Temperature)
}

// DepthProfiles returns every depth-indexed slice keyed by name.
func (m *StellarModel) DepthProfiles() map[string][]float64 {
	return map[string][]float64{
		"geometry":          m.Geometry,
		"temperature":       m.Temperature,
		"density":           m.Density,
		"electron_pressure": m.ElectronPressure,
		"gas_pressure":      m.GasPressure,
		"microturbulence":   m.Microturbulence,
	}
}

// Validate checks the shape invariants: one shell count across profiles and
// composition tables, non-negative elemental fractions, and ascending
// elemental columns bounded by maxAtomicNumber.
func (m *StellarModel) Validate(maxAtomicNumber int) error {
	n := m.NoOfShells()

	names := make([]string, 0, 6)
	profiles := m.DepthProfiles()
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if len(profiles[name]) != n {
			return fmt.Errorf("%w: %s has %d values, temperature has %d", ErrShapeMismatch, name, len(profiles[name]), n)
		}
	}

	if m.Composition == nil || m.Composition.ElementalMassFraction == nil || m.Composition.NuclideMassFraction == nil {
		return &CompositionError{Reason: "missing composition tables"}
	}
	elemental := m.Composition.ElementalMassFraction
	if elemental.Rows() != n || m.Composition.NuclideMassFraction.Rows() != n {
		return fmt.Errorf("%w: composition has %d/%d shells, profiles have %d", ErrShapeMismatch,
			elemental.Rows(), m.Composition.NuclideMassFraction.Rows(), n)
	}
	if elemental.Min() < 0 {
		return &CompositionError{Reason: "negative elemental mass fraction"}
	}

	keys := elemental.Keys()
	if !slices.IsSorted(keys) {
		return &CompositionError{Reason: "elemental columns are not ascending"}
	}
	if len(keys) > 0 && (keys[0] < 1 || keys[len(keys)-1] > maxAtomicNumber) {
		return &CompositionError{Reason: fmt.Sprintf("elemental columns outside [1, %d]", maxAtomicNumber)}
	}
	return nil
}

// ZeroMicroturbulence sets every microturbulence entry to zero in place.
func (m *StellarModel) ZeroMicroturbulence() {
	for i := range m.Microturbulence {
		m.Microturbulence[i] = 0
	}
}

// Composition sources for MARCS models.
const (
	CompositionFromModel   = "from_model"
	CompositionAsplund2009 = "asplund_2009"
)

// NoCompositionOverride keeps the helium or metal mass fraction of the model.
const NoCompositionOverride = -99.0
