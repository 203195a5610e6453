package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
atom_data: atoms/kurucz.yaml
input_model:
  type: marcs
  fname: models/sun.mod
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	typed := cfg.Typed()
	assert.Equal(t, 1.0, typed.Version)
	assert.Equal(t, "marcs", typed.InputModel.Type)
	assert.False(t, typed.InputModel.Gzipped)
	assert.Equal(t, DefaultFinalAtomicNumber, typed.InputModel.FinalAtomicNumber)
	assert.Equal(t, CompositionFromModel, typed.InputModel.CompositionSource)
	assert.Equal(t, NoCompositionOverride, typed.InputModel.CompositionY)
	assert.Equal(t, NoCompositionOverride, typed.InputModel.CompositionZ)
	assert.Equal(t, domain.NoTruncation, typed.InputModel.TruncateToShell)
	assert.Empty(t, typed.InputModel.NuclideRescalingDict)
	assert.False(t, typed.Opacity.Line.DisableMicroturbulence)
	assert.Empty(t, typed.Opacity.Rayleigh)
	assert.Equal(t, 20, typed.NoOfThetas)
	assert.Equal(t, 1, typed.NThreads)
	assert.True(t, typed.ResultOptions.ReturnRadiationField)
	assert.False(t, cfg.Merged())
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, minimalYAML)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	require.NoError(t, err)

	typed := cfg.Typed()
	assert.Equal(t, filepath.Join(dir, "atoms", "kurucz.yaml"), typed.AtomData)
	assert.Equal(t, filepath.Join(dir, "models", "sun.mod"), typed.InputModel.Fname)
	assert.Equal(t, dir, cfg.BaseDir())
	assert.Equal(t, path, cfg.Path())

	// The tree keeps the document as written.
	raw, ok := cfg.Get("input_model.fname")
	require.True(t, ok)
	assert.Equal(t, "models/sun.mod", raw)
}

func TestLoad_AbsolutePathsUntouched(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "atoms.yaml")
	path := writeConfig(t, "atom_data: "+abs+"\ninput_model:\n  type: mesa\n  fname: p.data\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Typed().AtomData)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		keys    []string
	}{
		{
			name:    "missing atom_data",
			content: "input_model:\n  type: marcs\n  fname: a.mod\n",
			keys:    []string{"atom_data"},
		},
		{
			name:    "missing model type",
			content: "atom_data: a.yaml\ninput_model:\n  fname: a.mod\n",
			keys:    []string{"input_model.type"},
		},
		{
			name:    "final atomic number out of range",
			content: "atom_data: a.yaml\ninput_model:\n  type: marcs\n  fname: a.mod\n  final_atomic_number: 119\n",
			keys:    []string{"input_model.final_atomic_number"},
		},
		{
			name:    "unknown top-level key",
			content: minimalYAML + "colour: blue\n",
			keys:    []string{"colour"},
		},
		{
			name:    "bad nuclide key",
			content: minimalYAML + "  nuclide_rescaling_dict:\n    Xx56: 0.1\n",
			keys:    []string{"input_model.nuclide_rescaling_dict.Xx56"},
		},
		{
			name:    "empty model path",
			content: "atom_data: a.yaml\ninput_model:\n  type: marcs\n  fname: \"  \"\n",
			keys:    []string{"input_model.fname"},
		},
		{
			name:    "non-positive config version",
			content: "stardis_config_version: 0\n" + minimalYAML,
			keys:    []string{"stardis_config_version"},
		},
		{
			name:    "rayleigh enum",
			content: minimalYAML + "opacity:\n  rayleigh: [H, Fe]\n",
			keys:    []string{"opacity.rayleigh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := Load(path)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, path, ve.Path)
			assert.ElementsMatch(t, tt.keys, schema.Keys(err))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("atom_data: [unterminated"), "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestTyped_IsACopy(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML+"  nuclide_rescaling_dict:\n    Ni56: 0.5\n"), "")
	require.NoError(t, err)

	typed := cfg.Typed()
	typed.InputModel.NuclideRescalingDict["Ni56"] = 0.9
	assert.Equal(t, 0.5, cfg.Typed().InputModel.NuclideRescalingDict["Ni56"])
}

func TestInputModel_NuclideRescaling(t *testing.T) {
	t.Run("empty is nil", func(t *testing.T) {
		got, err := InputModel{}.NuclideRescaling()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("parses keys", func(t *testing.T) {
		got, err := InputModel{NuclideRescalingDict: map[string]float64{"Ni56": 0.1, "Fe-56": 0.2}}.NuclideRescaling()
		require.NoError(t, err)
		assert.Equal(t, map[domain.Nuclide]float64{
			{AtomicNumber: 28, MassNumber: 56}: 0.1,
			{AtomicNumber: 26, MassNumber: 56}: 0.2,
		}, got)
	})

	t.Run("duplicate spelling", func(t *testing.T) {
		_, err := InputModel{NuclideRescalingDict: map[string]float64{"Ni56": 0.1, "Ni-56": 0.2}}.NuclideRescaling()
		assert.Error(t, err)
	})
}

func TestInputModel_Format(t *testing.T) {
	f, err := InputModel{Type: "mesa"}.Format()
	require.NoError(t, err)
	assert.Equal(t, domain.FormatMESA, f)

	_, err = InputModel{Type: "foo"}.Format()
	assert.ErrorIs(t, err, domain.ErrUnsupportedModelType)
}

func TestLoad_UnknownModelTypeIsDeferred(t *testing.T) {
	cfg, err := Load(writeConfig(t, "atom_data: a.yaml\ninput_model:\n  type: foo\n  fname: a.mod\n"))
	require.NoError(t, err)

	_, err = cfg.Typed().InputModel.Format()
	var ue *domain.UnsupportedModelTypeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "foo", ue.Type)
}
