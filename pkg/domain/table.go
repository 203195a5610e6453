package domain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Table is a depth x species matrix of mass fractions with labelled columns.
// Rows are shells in model order; columns follow insertion order of keys.
type Table[K comparable] struct {
	rows  int
	keys  []K
	index map[K]int
	// data is nil while the table has no rows or no columns; gonum does not
	// allow zero-sized dense matrices.
	data *mat.Dense
}

// NewTable creates a zero-filled table with the given shells and columns.
// Duplicate keys are rejected.
func NewTable[K comparable](rows int, keys []K) (*Table[K], error) {
	if rows < 0 {
		return nil, fmt.Errorf("negative row count %d", rows)
	}
	t := &Table[K]{rows: rows, index: make(map[K]int, len(keys))}
	for _, k := range keys {
		if _, dup := t.index[k]; dup {
			return nil, fmt.Errorf("duplicate column %v", k)
		}
		t.index[k] = len(t.keys)
		t.keys = append(t.keys, k)
	}
	if rows > 0 && len(keys) > 0 {
		t.data = mat.NewDense(rows, len(keys), nil)
	}
	return t, nil
}

// Rows returns the number of shells.
func (t *Table[K]) Rows() int { return t.rows }

// Len returns the number of species columns.
func (t *Table[K]) Len() int { return len(t.keys) }

// Keys returns the column labels in order.
func (t *Table[K]) Keys() []K { return append([]K(nil), t.keys...) }

// Has reports whether k labels a column.
func (t *Table[K]) Has(k K) bool {
	_, ok := t.index[k]
	return ok
}

// At returns the value for shell row and species k.
func (t *Table[K]) At(row int, k K) (float64, bool) {
	j, ok := t.index[k]
	if !ok || row < 0 || row >= t.rows {
		return 0, false
	}
	return t.data.At(row, j), true
}

// Column returns a copy of the depth profile of species k.
func (t *Table[K]) Column(k K) ([]float64, bool) {
	j, ok := t.index[k]
	if !ok {
		return nil, false
	}
	if t.data == nil {
		return []float64{}, true
	}
	return mat.Col(nil, j, t.data), true
}

// SetColumn overwrites the depth profile of an existing species.
func (t *Table[K]) SetColumn(k K, values []float64) error {
	j, ok := t.index[k]
	if !ok {
		return fmt.Errorf("no column %v", k)
	}
	if len(values) != t.rows {
		return fmt.Errorf("%w: column %v has %d values, table has %d shells", ErrShapeMismatch, k, len(values), t.rows)
	}
	if t.data != nil {
		t.data.SetCol(j, values)
	}
	return nil
}

// Upsert sets species k to value at every shell, appending the column when
// it does not exist yet.
func (t *Table[K]) Upsert(k K, value float64) {
	j, ok := t.index[k]
	if !ok {
		j = t.appendColumn(k)
	}
	if t.data == nil {
		return
	}
	for i := 0; i < t.rows; i++ {
		t.data.Set(i, j, value)
	}
}

func (t *Table[K]) appendColumn(k K) int {
	j := len(t.keys)
	t.index[k] = j
	t.keys = append(t.keys, k)
	if t.rows == 0 {
		return j
	}

	grown := mat.NewDense(t.rows, j+1, nil)
	if t.data != nil {
		grown.Slice(0, t.rows, 0, j).(*mat.Dense).Copy(t.data)
	}
	t.data = grown
	return j
}

// RowSums returns the total mass fraction per shell.
func (t *Table[K]) RowSums() []float64 {
	sums := make([]float64, t.rows)
	if t.data == nil {
		return sums
	}
	for i := range sums {
		sums[i] = mat.Sum(t.data.RowView(i))
	}
	return sums
}

// Min returns the smallest entry, or 0 for an empty table.
func (t *Table[K]) Min() float64 {
	if t.data == nil {
		return 0
	}
	return mat.Min(t.data)
}

// Matrix exposes the values read-only; nil for an empty table.
func (t *Table[K]) Matrix() mat.Matrix {
	if t.data == nil {
		return nil
	}
	return t.data
}

// Clone returns an independent copy.
func (t *Table[K]) Clone() *Table[K] {
	c := &Table[K]{rows: t.rows, keys: t.Keys(), index: make(map[K]int, len(t.keys))}
	for k, j := range t.index {
		c.index[k] = j
	}
	if t.data != nil {
		c.data = mat.DenseCopyOf(t.data)
	}
	return c
}
