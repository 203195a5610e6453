package atomdata

import (
	"fmt"
	"slices"

	"github.com/aretw0/photosphere/pkg/domain"
)

// Line interaction types understood by the radiative-transfer engine.
const (
	LineInteractionScatter    = "scatter"
	LineInteractionDownbranch = "downbranch"
	LineInteractionMacroatom  = "macroatom"
)

// LineInteractionTypes lists the accepted line interaction types.
func LineInteractionTypes() []string {
	return []string{LineInteractionScatter, LineInteractionDownbranch, LineInteractionMacroatom}
}

// Species is one ionization stage of an element. IonNumber 0 is neutral.
type Species struct {
	AtomicNumber int
	IonNumber    int
}

func (s Species) String() string {
	return fmt.Sprintf("(%d, %d)", s.AtomicNumber, s.IonNumber)
}

// PrepareRequest restricts a dataset to the species a run uses.
type PrepareRequest struct {
	// ElementRange must be 1..n, ascending and contiguous.
	ElementRange                []int
	LineInteractionType         string
	NLTESpecies                 []Species
	ContinuumInteractionSpecies []Species
}

// Preparation records the request a prepared dataset was built from.
type Preparation struct {
	ElementRange                []int
	LineInteractionType         string
	NLTESpecies                 []Species
	ContinuumInteractionSpecies []Species
}

func (p Preparation) clone() Preparation {
	return Preparation{
		ElementRange:                slices.Clone(p.ElementRange),
		LineInteractionType:         p.LineInteractionType,
		NLTESpecies:                 slices.Clone(p.NLTESpecies),
		ContinuumInteractionSpecies: slices.Clone(p.ContinuumInteractionSpecies),
	}
}

// ElementRange returns [1, 2, ..., n]. n < 1 yields an empty range.
func ElementRange(n int) []int {
	if n < 1 {
		return []int{}
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Prepare validates req and returns a new dataset restricted to
// req.ElementRange. On success the receiver is consumed and any further
// Prepare on it fails with ErrConsumed. A rejected request leaves the
// receiver usable.
func (d *Dataset) Prepare(req PrepareRequest) (*Dataset, error) {
	if d.consumed.Load() {
		return nil, &PrepareError{Reason: "dataset " + d.source, Err: ErrConsumed}
	}
	if err := d.checkRequest(req); err != nil {
		return nil, err
	}

	restricted := &Dataset{
		source:   d.source,
		elements: make([]domain.Element, 0, len(req.ElementRange)),
		index:    make(map[int]int, len(req.ElementRange)),
		prepared: &Preparation{
			ElementRange:                slices.Clone(req.ElementRange),
			LineInteractionType:         req.LineInteractionType,
			NLTESpecies:                 slices.Clone(req.NLTESpecies),
			ContinuumInteractionSpecies: slices.Clone(req.ContinuumInteractionSpecies),
		},
	}
	for i, z := range req.ElementRange {
		restricted.elements = append(restricted.elements, d.elements[d.index[z]].Clone())
		restricted.index[z] = i
	}

	if !d.consumed.CompareAndSwap(false, true) {
		return nil, &PrepareError{Reason: "dataset " + d.source, Err: ErrConsumed}
	}
	return restricted, nil
}

func (d *Dataset) checkRequest(req PrepareRequest) error {
	if len(req.ElementRange) == 0 {
		return &PrepareError{Reason: "empty element range"}
	}
	for i, z := range req.ElementRange {
		if z != i+1 {
			return &PrepareError{Reason: fmt.Sprintf("element range must be contiguous from 1, found %d at position %d", z, i)}
		}
		if !d.Has(z) {
			return &PrepareError{Reason: fmt.Sprintf("Z=%d", z), Err: ErrMissingElement}
		}
	}

	if !slices.Contains(LineInteractionTypes(), req.LineInteractionType) {
		return &PrepareError{Reason: fmt.Sprintf("line interaction type %q is not one of %v", req.LineInteractionType, LineInteractionTypes())}
	}

	last := req.ElementRange[len(req.ElementRange)-1]
	for _, group := range []struct {
		name    string
		species []Species
	}{
		{"nlte species", req.NLTESpecies},
		{"continuum interaction species", req.ContinuumInteractionSpecies},
	} {
		for _, s := range group.species {
			if s.AtomicNumber < 1 || s.AtomicNumber > last {
				return &PrepareError{Reason: fmt.Sprintf("%s %s outside element range 1..%d", group.name, s, last)}
			}
			if s.IonNumber < 0 || s.IonNumber > s.AtomicNumber {
				return &PrepareError{Reason: fmt.Sprintf("%s %s has ion number outside [0, %d]", group.name, s, s.AtomicNumber)}
			}
		}
	}
	return nil
}
