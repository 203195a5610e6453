package testutils

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/stretchr/testify/require"
)

// ElementMarkdown renders e as a Markdown document with YAML front matter.
func ElementMarkdown(e domain.Element) string {
	var b strings.Builder
	fmt.Fprintf(&b, "---\natomic_number: %d\nsymbol: %s\nmass: %g\n", e.AtomicNumber, e.Symbol, e.Mass)
	if len(e.IonizationEnergies) > 0 {
		parts := make([]string, len(e.IonizationEnergies))
		for i, v := range e.IonizationEnergies {
			parts[i] = fmt.Sprintf("%g", v)
		}
		fmt.Fprintf(&b, "ionization_energies: [%s]\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, "---\n%s\n", e.Symbol)
	return b.String()
}

// SetupAtomRepo initializes a Loam repository in a temporary directory and
// saves one document per element, named after its lower-case symbol.
// It returns the absolute path and the repository, failing the test on error.
func SetupAtomRepo(t *testing.T, elements []domain.Element, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	ctx := context.Background()
	for _, e := range elements {
		doc := core.Document{
			ID:       strings.ToLower(e.Symbol) + ".md",
			Content:  e.Symbol,
			Metadata: ElementMetadata(e),
		}
		require.NoError(t, repo.Save(ctx, doc), "Failed to save %s", doc.ID)
	}
	return absPath, repo
}

// ElementMetadata returns the front matter fields of an element document.
func ElementMetadata(e domain.Element) core.Metadata {
	meta := core.Metadata{
		"atomic_number": e.AtomicNumber,
		"symbol":        e.Symbol,
		"mass":          e.Mass,
	}
	if len(e.IonizationEnergies) > 0 {
		meta["ionization_energies"] = append([]float64(nil), e.IonizationEnergies...)
	}
	return meta
}
