package dsl_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_MARCS(t *testing.T) {
	base := t.TempDir()
	cfg, err := dsl.New("atoms.yaml").
		BaseDir(base).
		MARCS("sun.mod.gz").
		Gzipped().
		FinalAtomicNumber(26).
		Composition(0.28, 0.02).
		Rescale("Ni56", 0.1).
		Rescale("Co56", 0.05).
		End().
		DisableMicroturbulence().
		Build()
	require.NoError(t, err)

	typed := cfg.Typed()
	assert.Equal(t, filepath.Join(base, "atoms.yaml"), typed.AtomData)
	assert.Equal(t, filepath.Join(base, "sun.mod.gz"), typed.InputModel.Fname)
	assert.Equal(t, "marcs", typed.InputModel.Type)
	assert.True(t, typed.InputModel.Gzipped)
	assert.Equal(t, 26, typed.InputModel.FinalAtomicNumber)
	assert.Equal(t, 0.28, typed.InputModel.CompositionY)
	assert.Equal(t, 0.02, typed.InputModel.CompositionZ)
	assert.Equal(t, config.CompositionFromModel, typed.InputModel.CompositionSource)
	assert.Equal(t, domain.NoTruncation, typed.InputModel.TruncateToShell)
	assert.True(t, typed.Opacity.Line.DisableMicroturbulence)

	rescale, err := typed.InputModel.NuclideRescaling()
	require.NoError(t, err)
	assert.Equal(t, map[domain.Nuclide]float64{
		{AtomicNumber: 28, MassNumber: 56}: 0.1,
		{AtomicNumber: 27, MassNumber: 56}: 0.05,
	}, rescale)
}

func TestBuilder_MESA(t *testing.T) {
	cfg, err := dsl.New("/data/atoms.yaml").
		MESA("/data/profile1.data").
		TruncateToShell(10).
		Build()
	require.NoError(t, err)

	in := cfg.Typed().InputModel
	format, err := in.Format()
	require.NoError(t, err)
	assert.Equal(t, domain.FormatMESA, format)
	assert.Equal(t, 10, in.TruncateToShell)
	assert.Equal(t, config.DefaultFinalAtomicNumber, in.FinalAtomicNumber)
}

func TestBuilder_Asplund(t *testing.T) {
	cfg, err := dsl.New("atoms.yaml").MARCS("sun.mod").Asplund2009().Build()
	require.NoError(t, err)
	assert.Equal(t, config.CompositionAsplund2009, cfg.Typed().InputModel.CompositionSource)
}

func TestBuilder_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		builder *dsl.Builder
	}{
		{"no model", dsl.New("atoms.yaml")},
		{"atomic number out of range", dsl.New("atoms.yaml").MARCS("sun.mod").FinalAtomicNumber(200).End()},
		{"unknown nuclide", dsl.New("atoms.yaml").MARCS("sun.mod").Rescale("Xx56", 0.1).End()},
		{"unknown key", dsl.New("atoms.yaml").MARCS("sun.mod").End().Set("input_model.colour", "red")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			var ve *config.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestBuilder_YAML(t *testing.T) {
	b := dsl.New("atoms.yaml").MESA("profile1.data").TruncateToShell(5).End()
	data, err := b.YAML()
	require.NoError(t, err)

	fromYAML, err := config.Parse(data, "/data")
	require.NoError(t, err)
	fromBuilder, err := b.BaseDir("/data").Build()
	require.NoError(t, err)
	assert.Equal(t, fromBuilder.Typed(), fromYAML.Typed())
}
