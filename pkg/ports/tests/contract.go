package tests

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/ports"
)

// AtomDataSourceContractTest verifies that a source returns exactly the
// elements it was seeded with, in any order.
func AtomDataSourceContractTest(t *testing.T, source ports.AtomDataSource, want []domain.Element) {
	t.Helper()

	t.Run("Elements", func(t *testing.T) {
		got, err := source.Elements(context.Background())
		if err != nil {
			t.Fatalf("unexpected error listing elements: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d elements, got %d", len(want), len(got))
		}

		byZ := func(es []domain.Element) {
			sort.Slice(es, func(i, j int) bool { return es[i].AtomicNumber < es[j].AtomicNumber })
		}
		got = domain.CloneElements(got)
		want = domain.CloneElements(want)
		byZ(got)
		byZ(want)

		for i := range want {
			if got[i].AtomicNumber != want[i].AtomicNumber || got[i].Mass != want[i].Mass {
				t.Errorf("element %d mismatch. got %+v, want %+v", i, got[i], want[i])
			}
			if len(got[i].IonizationEnergies) != len(want[i].IonizationEnergies) {
				t.Errorf("element %d ionization energies mismatch. got %v, want %v", i, got[i].IonizationEnergies, want[i].IonizationEnergies)
			}
		}
	})

	t.Run("Elements is repeatable", func(t *testing.T) {
		first, err := source.Elements(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := source.Elements(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first) != len(second) {
			t.Errorf("repeat call returned %d elements, first returned %d", len(second), len(first))
		}
	})
}
