package postprocess

import (
	"context"
	"maps"
	"slices"

	"github.com/aretw0/photosphere/pkg/atomdata"
	"github.com/aretw0/photosphere/pkg/domain"
)

// Microturbulence zeroes the microturbulence profile when Disable is set.
type Microturbulence struct {
	Disable bool
}

func (Microturbulence) Name() domain.Stage { return domain.StageMicroturbulence }

func (p Microturbulence) Process(_ context.Context, st *State) error {
	if p.Disable {
		st.Model.ZeroMicroturbulence()
	}
	return nil
}

// ElementRangeClamp prepares the atom data over the elements the model
// actually carries, bounded by FinalAtomicNumber.
type ElementRangeClamp struct {
	FinalAtomicNumber int
}

func (ElementRangeClamp) Name() domain.Stage { return domain.StagePrepareAtomData }

func (p ElementRangeClamp) Process(_ context.Context, st *State) error {
	if st.Atoms == nil {
		return &atomdata.PrepareError{Reason: "no atom data loaded"}
	}
	n := EffectiveElementCount(st.Model, p.FinalAtomicNumber)
	prepared, err := st.Atoms.Prepare(atomdata.PrepareRequest{
		ElementRange:                atomdata.ElementRange(n),
		LineInteractionType:         atomdata.LineInteractionMacroatom,
		NLTESpecies:                 []atomdata.Species{},
		ContinuumInteractionSpecies: []atomdata.Species{},
	})
	if err != nil {
		return err
	}
	st.Atoms = prepared
	return nil
}

// EffectiveElementCount is min(elemental columns of m, finalAtomicNumber).
func EffectiveElementCount(m *domain.StellarModel, finalAtomicNumber int) int {
	if m.Composition == nil || m.Composition.ElementalMassFraction == nil {
		return 0
	}
	return max(0, min(m.Composition.ElementalMassFraction.Len(), finalAtomicNumber))
}

// NuclideRescaling sets each named nuclide to its value at every depth.
// Missing columns are appended. A nil or empty map changes nothing.
type NuclideRescaling struct {
	Values map[domain.Nuclide]float64
}

func (NuclideRescaling) Name() domain.Stage { return domain.StageRescaleNuclides }

func (p NuclideRescaling) Process(_ context.Context, st *State) error {
	if len(p.Values) == 0 {
		return nil
	}
	if st.Model.Composition == nil || st.Model.Composition.NuclideMassFraction == nil {
		return &domain.CompositionError{Reason: "model has no nuclide table to rescale"}
	}
	table := st.Model.Composition.NuclideMassFraction
	for _, n := range slices.SortedFunc(maps.Keys(p.Values), domain.CompareNuclides) {
		table.Upsert(n, p.Values[n])
	}
	return nil
}
