package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNuclide(t *testing.T) {
	tests := []struct {
		in   string
		want Nuclide
	}{
		{"Ni56", Nuclide{AtomicNumber: 28, MassNumber: 56}},
		{"ni56", Nuclide{AtomicNumber: 28, MassNumber: 56}},
		{"Ni-56", Nuclide{AtomicNumber: 28, MassNumber: 56}},
		{"he4", Nuclide{AtomicNumber: 2, MassNumber: 4}},
		{"h1", Nuclide{AtomicNumber: 1, MassNumber: 1}},
		{"Fe", Nuclide{AtomicNumber: 26}},
		{" o16 ", Nuclide{AtomicNumber: 8, MassNumber: 16}},
	}

	for _, tt := range tests {
		got, err := ParseNuclide(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseNuclide_Invalid(t *testing.T) {
	for _, in := range []string{"", "neut", "prot", "Xx12", "Ni-", "He1", "C12x"} {
		_, err := ParseNuclide(in)
		assert.ErrorIs(t, err, ErrUnknownNuclide, in)
	}
}

func TestNuclide_String(t *testing.T) {
	assert.Equal(t, "Ni-56", Nuclide{AtomicNumber: 28, MassNumber: 56}.String())
	assert.Equal(t, "Fe", Nuclide{AtomicNumber: 26}.String())
}

func TestSortNuclides(t *testing.T) {
	ns := []Nuclide{{8, 16}, {2, 4}, {2, 3}, {1, 1}}
	SortNuclides(ns)
	assert.Equal(t, []Nuclide{{1, 1}, {2, 3}, {2, 4}, {8, 16}}, ns)
}

func TestSymbolRoundTrip(t *testing.T) {
	for z := 1; z <= MaxAtomicNumber; z++ {
		got, ok := AtomicNumber(Symbol(z))
		require.True(t, ok, "symbol for %d", z)
		assert.Equal(t, z, got)
	}
	assert.Equal(t, "", Symbol(0))
	assert.Equal(t, "", Symbol(119))
}
