// Package mesa reads MESA stellar-evolution profile files and converts them
// to domain.StellarModel.
package mesa

import (
	"slices"

	"github.com/aretw0/photosphere/pkg/domain"
)

// SolarRadius is the IAU nominal solar radius in cm.
const SolarRadius = 6.957e10

// Model is a parsed MESA profile. Rows are shells in file order.
type Model struct {
	Path string
	// HeaderNames and HeaderValues are the profile-level scalars, paired.
	HeaderNames  []string
	HeaderValues []string

	columns []string
	index   map[string]int
	// data is column-major: data[column][shell].
	data [][]float64
	rows int
}

// Format reports domain.FormatMESA.
func (m *Model) Format() domain.ModelFormat { return domain.FormatMESA }

// ShellCount returns the number of shells.
func (m *Model) ShellCount() int { return m.rows }

// Columns returns the column names in file order.
func (m *Model) Columns() []string { return slices.Clone(m.columns) }

// Column returns a copy of the named column.
func (m *Model) Column(name string) ([]float64, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(m.data[i][:m.rows]), true
}

// Header returns a header value by name.
func (m *Model) Header(name string) (string, bool) {
	for i, n := range m.HeaderNames {
		if n == name {
			return m.HeaderValues[i], true
		}
	}
	return "", false
}

// NuclideColumns maps each abundance column to its nuclide. Columns whose
// names do not parse as a nuclide with a mass number are not abundances.
func (m *Model) NuclideColumns() map[string]domain.Nuclide {
	out := make(map[string]domain.Nuclide)
	for _, name := range m.columns {
		n, err := domain.ParseNuclide(name)
		if err != nil || n.MassNumber == 0 {
			continue
		}
		out[name] = n
	}
	return out
}

// Truncate keeps the first n shells in file order. domain.NoTruncation is a
// no-op; any other negative n is an InvalidTruncationError. n larger than
// the shell count keeps every shell.
func (m *Model) Truncate(n int) error {
	if n == domain.NoTruncation {
		return nil
	}
	if n < 0 {
		return &domain.InvalidTruncationError{Requested: n}
	}
	m.rows = min(n, m.rows)
	for i := range m.data {
		m.data[i] = m.data[i][:m.rows:m.rows]
	}
	return nil
}
