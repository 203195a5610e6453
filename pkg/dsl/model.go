package dsl

import "github.com/aretw0/photosphere/pkg/config"

// ModelBuilder provides a fluent API for the input_model section.
type ModelBuilder struct {
	builder *Builder
}

func (m *ModelBuilder) set(key string, value any) *ModelBuilder {
	m.builder.Set("input_model."+key, value)
	return m
}

// Gzipped marks the MARCS file as gzip-compressed.
func (m *ModelBuilder) Gzipped() *ModelBuilder {
	return m.set("gzipped", true)
}

// FinalAtomicNumber bounds the elements kept from the model.
func (m *ModelBuilder) FinalAtomicNumber(z int) *ModelBuilder {
	return m.set("final_atomic_number", z)
}

// Composition overrides the helium and heavy-metal mass fractions. Pass
// config.NoCompositionOverride to keep either from the model.
func (m *ModelBuilder) Composition(y, z float64) *ModelBuilder {
	m.set("composition_Y", y)
	return m.set("composition_Z", z)
}

// Asplund2009 takes the abundances from the Asplund et al. 2009 solar table.
func (m *ModelBuilder) Asplund2009() *ModelBuilder {
	return m.set("composition_source", config.CompositionAsplund2009)
}

// TruncateToShell keeps the first n shells of a MESA profile.
func (m *ModelBuilder) TruncateToShell(n int) *ModelBuilder {
	return m.set("truncate_to_shell", n)
}

// Rescale sets the mass fraction of a nuclide at every shell.
func (m *ModelBuilder) Rescale(nuclide string, fraction float64) *ModelBuilder {
	dict, ok := m.section()["nuclide_rescaling_dict"].(map[string]any)
	if !ok {
		dict = make(map[string]any)
		m.set("nuclide_rescaling_dict", dict)
	}
	dict[nuclide] = fraction
	return m
}

func (m *ModelBuilder) section() map[string]any {
	s, _ := m.builder.doc["input_model"].(map[string]any)
	return s
}

// End returns to the document builder.
func (m *ModelBuilder) End() *Builder {
	return m.builder
}

// Build is a shortcut for End().Build().
func (m *ModelBuilder) Build() (*config.Configuration, error) {
	return m.builder.Build()
}
