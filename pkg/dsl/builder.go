package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Builder manages the document construction.
type Builder struct {
	doc     map[string]any
	baseDir string
}

// New creates a builder for a configuration reading atom data from path.
func New(atomData string) *Builder {
	return &Builder{
		doc: map[string]any{"atom_data": atomData},
	}
}

// BaseDir sets the directory relative paths resolve against.
func (b *Builder) BaseDir(dir string) *Builder {
	b.baseDir = dir
	return b
}

// MARCS selects a MARCS model file.
func (b *Builder) MARCS(fname string) *ModelBuilder {
	return b.model(domain.FormatMARCS, fname)
}

// MESA selects a MESA profile.
func (b *Builder) MESA(fname string) *ModelBuilder {
	return b.model(domain.FormatMESA, fname)
}

func (b *Builder) model(format domain.ModelFormat, fname string) *ModelBuilder {
	b.Set("input_model.type", format.String())
	b.Set("input_model.fname", fname)
	return &ModelBuilder{builder: b}
}

// DisableMicroturbulence zeroes the microturbulence profile after
// normalization.
func (b *Builder) DisableMicroturbulence() *Builder {
	return b.Set("opacity.line.disable_microturbulence", true)
}

// Set assigns value at a dotted path, creating intermediate sections.
func (b *Builder) Set(key string, value any) *Builder {
	segments := strings.Split(key, ".")
	node := b.doc
	for _, s := range segments[:len(segments)-1] {
		next, ok := node[s].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[s] = next
		}
		node = next
	}
	node[segments[len(segments)-1]] = value
	return b
}

// Build validates the document and returns the Configuration.
func (b *Builder) Build() (*config.Configuration, error) {
	cfg, err := config.FromMap(b.doc, b.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to build configuration: %w", err)
	}
	return cfg, nil
}

// YAML renders the document as written, before defaults are applied.
func (b *Builder) YAML() ([]byte, error) {
	return yaml.Marshal(b.doc)
}
