package loam

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/photosphere/pkg/domain"
)

// Source adapts a Loam repository of element documents to
// ports.AtomDataSource. Each document (h.md, fe.yaml, ...) describes one
// element in its metadata.
type Source struct {
	Repo *loam.TypedRepository[ElementMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ElementMetadata]) *Source {
	return &Source{
		Repo: repo,
	}
}

// Open initializes a strict, read-only Loam repository at path.
func Open(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode gives consistent numeric types across JSON and YAML
	// documents. Read-only keeps Loam from sandboxing the directory.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ElementMetadata](repo)), nil
}

// Elements reads every element document in the repository. Documents that
// name neither an atomic number nor a symbol, and whose file name is not an
// element symbol, are not element records and are skipped.
func (s *Source) Elements(ctx context.Context) ([]domain.Element, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[int]string)
	elements := make([]domain.Element, 0, len(docs))

	for _, listed := range docs {
		// List carries metadata only; Get loads the body the name falls back to.
		doc, err := s.Repo.Get(ctx, listed.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", listed.ID, err)
		}
		meta := doc.Data
		z, ok := resolveAtomicNumber(doc.ID, meta)
		if !ok {
			continue
		}

		// Collision Detection
		if existing, dup := seen[z]; dup {
			return nil, fmt.Errorf("collision detected: Z=%d is defined in both '%s' and '%s'", z, existing, doc.ID)
		}
		seen[z] = doc.ID

		name := meta.Name
		if name == "" {
			name = firstLine(doc.Content)
		}
		elements = append(elements, domain.Element{
			AtomicNumber:       z,
			Symbol:             meta.Symbol,
			Name:               name,
			Mass:               meta.Mass,
			IonizationEnergies: append([]float64(nil), meta.IonizationEnergies...),
		})
	}
	return elements, nil
}

func resolveAtomicNumber(docID string, meta ElementMetadata) (int, bool) {
	if meta.AtomicNumber != 0 {
		return meta.AtomicNumber, true
	}
	if meta.Symbol != "" {
		if z, ok := domain.AtomicNumber(meta.Symbol); ok {
			return z, true
		}
	}
	return domain.AtomicNumber(trimExtension(filepath.Base(docID)))
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return strings.TrimSuffix(id, ext)
	}
	return id
}

func firstLine(content string) string {
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
