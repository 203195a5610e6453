package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/photosphere/internal/testutils"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Contract(t *testing.T) {
	_, repo := testutils.SetupAtomRepo(t, nil)
	ctx := context.Background()

	docH := core.Document{
		ID:      "h.md",
		Content: "Hydrogen",
		Metadata: core.Metadata{
			"atomic_number":       1,
			"symbol":              "H",
			"mass":                1.008,
			"ionization_energies": []float64{13.598},
		},
	}
	docFe := core.Document{
		ID:      "fe.md",
		Content: "Iron",
		Metadata: core.Metadata{
			"atomic_number":       26,
			"symbol":              "Fe",
			"mass":                55.845,
			"ionization_energies": []float64{7.902, 16.199},
		},
	}

	if err := repo.Save(ctx, docH); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, docFe); err != nil {
		t.Fatal(err)
	}

	source := New(loam.NewTypedRepository[ElementMetadata](repo))

	tests.AtomDataSourceContractTest(t, source, []domain.Element{
		{AtomicNumber: 1, Mass: 1.008, IonizationEnergies: []float64{13.598}},
		{AtomicNumber: 26, Mass: 55.845, IonizationEnergies: []float64{7.902, 16.199}},
	})
}

func TestSource_Elements_NameFromBody(t *testing.T) {
	_, repo := testutils.SetupAtomRepo(t, testutils.Elements(2))
	source := New(loam.NewTypedRepository[ElementMetadata](repo))

	elements, err := source.Elements(context.Background())
	require.NoError(t, err)
	require.Len(t, elements, 2)

	names := map[int]string{}
	for _, e := range elements {
		names[e.AtomicNumber] = e.Name
	}
	assert.Equal(t, map[int]string{1: "H", 2: "He"}, names)
}

func TestSource_Elements_ResolvesIdentity(t *testing.T) {
	tmpDir, repo := testutils.SetupAtomRepo(t, nil)

	files := map[string]string{
		// Atomic number from the symbol.
		"helium.md": `---
symbol: He
mass: 4.0026
---
Helium`,
		// Atomic number from the file name, name from metadata.
		"ni.json": `{
  "name": "Nickel",
  "mass": 58.693
}`,
	}

	for filename, content := range files {
		err := os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644)
		require.NoError(t, err)
	}

	source := New(loam.NewTypedRepository[ElementMetadata](repo))

	elements, err := source.Elements(context.Background())
	require.NoError(t, err)
	require.Len(t, elements, 2)

	byZ := map[int]domain.Element{}
	for _, e := range elements {
		byZ[e.AtomicNumber] = e
	}
	assert.Equal(t, "Helium", byZ[2].Name, "name falls back to the document body")
	assert.Equal(t, 4.0026, byZ[2].Mass)
	assert.Equal(t, "Nickel", byZ[28].Name)
	assert.Equal(t, 58.693, byZ[28].Mass)
}

func TestSource_Elements_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupAtomRepo(t, nil)

	files := map[string]string{
		"iron.md": `---
atomic_number: 26
mass: 55.845
---
Iron`,
		"fe.json": `{
  "atomic_number": 26,
  "mass": 55.845
}`,
	}

	for filename, content := range files {
		err := os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644)
		require.NoError(t, err)
	}

	source := New(loam.NewTypedRepository[ElementMetadata](repo))

	_, err := source.Elements(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestOpen_ReadOnlyDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "h.md"), []byte("---\natomic_number: 1\nmass: 1.008\n---\nHydrogen"), 0644))

	source, err := Open(dir)
	require.NoError(t, err)

	elements, err := source.Elements(context.Background())
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, 1, elements[0].AtomicNumber)
	assert.Equal(t, "Hydrogen", elements[0].Name)
}

func TestOpen_SeededRepository(t *testing.T) {
	elements := testutils.Elements(5)
	elements[0].IonizationEnergies = []float64{13.598}
	elements[1].IonizationEnergies = []float64{24.587, 54.418}
	dir, _ := testutils.SetupAtomRepo(t, elements)

	source, err := Open(dir)
	require.NoError(t, err)
	tests.AtomDataSourceContractTest(t, source, elements)

	got, err := source.Elements(context.Background())
	require.NoError(t, err)
	for _, e := range got {
		assert.Equal(t, domain.Symbol(e.AtomicNumber), e.Symbol)
		assert.Equal(t, e.Symbol, e.Name, "name falls back to the document body")
	}
}
