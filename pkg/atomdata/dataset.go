// Package atomdata holds the atomic dataset used to interpret stellar
// composition, and restricts it to the species a run needs.
package atomdata

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/aretw0/photosphere/pkg/domain"
)

// Dataset is a validated set of elements ordered by atomic number.
//
// A Dataset is prepared at most once. Prepare returns a new, restricted
// Dataset and marks the receiver consumed.
type Dataset struct {
	source   string
	elements []domain.Element
	index    map[int]int

	prepared *Preparation
	consumed atomic.Bool
}

// NewDataset validates elements and returns a Dataset sorted by atomic
// number. elements is copied.
func NewDataset(source string, elements []domain.Element) (*Dataset, error) {
	if len(elements) == 0 {
		return nil, ErrEmptyDataset
	}

	sorted := domain.CloneElements(elements)
	for i := range sorted {
		if err := sorted[i].Validate(); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	slices.SortFunc(sorted, func(a, b domain.Element) int { return a.AtomicNumber - b.AtomicNumber })

	index := make(map[int]int, len(sorted))
	for i, e := range sorted {
		if _, dup := index[e.AtomicNumber]; dup {
			return nil, fmt.Errorf("%w: Z=%d (%s)", ErrDuplicateElement, e.AtomicNumber, e.Symbol)
		}
		index[e.AtomicNumber] = i
	}

	return &Dataset{source: source, elements: sorted, index: index}, nil
}

// Source is the path the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of elements.
func (d *Dataset) Len() int { return len(d.elements) }

// Elements returns a copy of the elements in ascending atomic number.
func (d *Dataset) Elements() []domain.Element {
	return domain.CloneElements(d.elements)
}

// AtomicNumbers returns the atomic numbers present, ascending.
func (d *Dataset) AtomicNumbers() []int {
	out := make([]int, len(d.elements))
	for i, e := range d.elements {
		out[i] = e.AtomicNumber
	}
	return out
}

// Element returns the element with atomic number z.
func (d *Dataset) Element(z int) (domain.Element, bool) {
	i, ok := d.index[z]
	if !ok {
		return domain.Element{}, false
	}
	return d.elements[i].Clone(), true
}

// Has reports whether z is present.
func (d *Dataset) Has(z int) bool {
	_, ok := d.index[z]
	return ok
}

// Mass returns the atomic mass of z in u.
func (d *Dataset) Mass(z int) (float64, bool) {
	i, ok := d.index[z]
	if !ok {
		return 0, false
	}
	return d.elements[i].Mass, true
}

// Prepared returns the restriction applied to this dataset, if any.
func (d *Dataset) Prepared() (Preparation, bool) {
	if d.prepared == nil {
		return Preparation{}, false
	}
	return d.prepared.clone(), true
}

// Consumed reports whether Prepare already transferred this dataset.
func (d *Dataset) Consumed() bool {
	return d.consumed.Load()
}
