package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Nuclide identifies a species by atomic and mass number. A zero MassNumber
// stands for the element at its natural isotopic mix.
type Nuclide struct {
	AtomicNumber int
	MassNumber   int
}

// String renders the nuclide as "Ni-56", or just the symbol for MassNumber 0.
func (n Nuclide) String() string {
	if n.MassNumber == 0 {
		return Symbol(n.AtomicNumber)
	}
	return fmt.Sprintf("%s-%d", Symbol(n.AtomicNumber), n.MassNumber)
}

// ParseNuclide accepts "Ni56", "ni56", "Ni-56", "he4" and bare symbols such
// as "Fe".
func ParseNuclide(s string) (Nuclide, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Nuclide{}, fmt.Errorf("%w: empty identifier", ErrUnknownNuclide)
	}

	split := strings.IndexFunc(raw, func(r rune) bool { return r == '-' || (r >= '0' && r <= '9') })
	symbol, rest := raw, ""
	if split >= 0 {
		symbol, rest = raw[:split], strings.TrimPrefix(raw[split:], "-")
	}

	z, ok := AtomicNumber(symbol)
	if !ok {
		return Nuclide{}, fmt.Errorf("%w: %q", ErrUnknownNuclide, s)
	}

	n := Nuclide{AtomicNumber: z}
	if rest == "" {
		if split >= 0 {
			return Nuclide{}, fmt.Errorf("%w: %q has no mass number", ErrUnknownNuclide, s)
		}
		return n, nil
	}

	a, err := strconv.Atoi(rest)
	if err != nil {
		return Nuclide{}, fmt.Errorf("%w: %q", ErrUnknownNuclide, s)
	}
	if a < z || a > 300 {
		return Nuclide{}, fmt.Errorf("%w: %q has implausible mass number %d", ErrUnknownNuclide, s, a)
	}
	n.MassNumber = a
	return n, nil
}

// CompareNuclides orders by atomic number, then mass number.
func CompareNuclides(a, b Nuclide) int {
	if c := cmp.Compare(a.AtomicNumber, b.AtomicNumber); c != 0 {
		return c
	}
	return cmp.Compare(a.MassNumber, b.MassNumber)
}

// SortNuclides sorts in place by CompareNuclides.
func SortNuclides(ns []Nuclide) {
	slices.SortFunc(ns, CompareNuclides)
}
