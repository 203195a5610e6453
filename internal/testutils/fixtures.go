package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/stretchr/testify/require"
)

// standardMasses holds IUPAC standard atomic weights for Z = 1..30.
var standardMasses = [...]float64{
	0,
	1.008, 4.0026, 6.94, 9.0122, 10.81, 12.011, 14.007, 15.999, 18.998, 20.180,
	22.990, 24.305, 26.982, 28.085, 30.974, 32.06, 35.45, 39.948, 39.098, 40.078,
	44.956, 47.867, 50.942, 51.996, 54.938, 55.845, 58.933, 58.693, 63.546, 65.38,
}

// MaxFixtureElement is the highest atomic number Elements can produce.
const MaxFixtureElement = len(standardMasses) - 1

// Elements returns element records for Z = 1..n with standard masses.
func Elements(n int) []domain.Element {
	if n > MaxFixtureElement {
		n = MaxFixtureElement
	}
	out := make([]domain.Element, 0, n)
	for z := 1; z <= n; z++ {
		out = append(out, domain.Element{
			AtomicNumber: z,
			Symbol:       domain.Symbol(z),
			Mass:         standardMasses[z],
		})
	}
	return out
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write fixture %s", name)
	return path
}

// AtomDataYAML renders elements as an atom data document.
func AtomDataYAML(elements []domain.Element) string {
	var b strings.Builder
	b.WriteString("elements:\n")
	for _, e := range elements {
		fmt.Fprintf(&b, "  - atomic_number: %d\n    symbol: %s\n    mass: %g\n", e.AtomicNumber, e.Symbol, e.Mass)
	}
	return b.String()
}

// WriteAtomData writes an atom data file with Z = 1..n to dir.
func WriteAtomData(t *testing.T, dir string, n int) string {
	t.Helper()
	return WriteFile(t, dir, "atoms.yaml", AtomDataYAML(Elements(n)))
}

// WriteAtomDataDir writes one Markdown document per element under
// dir/atoms and returns that directory.
func WriteAtomDataDir(t *testing.T, dir string, n int) string {
	t.Helper()
	root := filepath.Join(dir, "atoms")
	for _, e := range Elements(n) {
		WriteFile(t, root, strings.ToLower(e.Symbol)+".md", ElementMarkdown(e))
	}
	return root
}
