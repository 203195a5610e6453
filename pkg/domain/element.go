package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Element is one entry of an atomic dataset.
type Element struct {
	AtomicNumber int    `json:"atomic_number" yaml:"atomic_number" mapstructure:"atomic_number"`
	Symbol       string `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	// Mass is the standard atomic weight in u.
	Mass float64 `json:"mass" yaml:"mass" mapstructure:"mass"`
	// IonizationEnergies in eV; entry i removes the (i+1)-th electron.
	IonizationEnergies []float64 `json:"ionization_energies,omitempty" yaml:"ionization_energies,omitempty" mapstructure:"ionization_energies"`
}

// Validate checks the element against the periodic table and fills in a
// missing symbol.
func (e *Element) Validate() error {
	if e.AtomicNumber < 1 || e.AtomicNumber > MaxAtomicNumber {
		return fmt.Errorf("%w: atomic number %d outside [1, %d]", ErrInvalidElement, e.AtomicNumber, MaxAtomicNumber)
	}
	want := Symbol(e.AtomicNumber)
	switch {
	case e.Symbol == "":
		e.Symbol = want
	case !strings.EqualFold(e.Symbol, want):
		return fmt.Errorf("%w: symbol %q does not match Z=%d (%s)", ErrInvalidElement, e.Symbol, e.AtomicNumber, want)
	default:
		e.Symbol = want
	}
	if e.Mass <= 0 {
		return fmt.Errorf("%w: %s has non-positive mass %g", ErrInvalidElement, want, e.Mass)
	}
	if len(e.IonizationEnergies) > e.AtomicNumber {
		return fmt.Errorf("%w: %s lists %d ionization energies", ErrInvalidElement, want, len(e.IonizationEnergies))
	}
	return nil
}

// Clone returns a copy that does not share the ionization slice.
func (e Element) Clone() Element {
	e.IonizationEnergies = slices.Clone(e.IonizationEnergies)
	return e
}

// CloneElements copies a slice of elements.
func CloneElements(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}
