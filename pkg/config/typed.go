package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/photosphere/pkg/domain"
)

// Config is the typed view of a validated document.
type Config struct {
	Version       float64       `mapstructure:"stardis_config_version"`
	AtomData      string        `mapstructure:"atom_data"`
	InputModel    InputModel    `mapstructure:"input_model"`
	Opacity       Opacity       `mapstructure:"opacity"`
	NoOfThetas    int           `mapstructure:"no_of_thetas"`
	NThreads      int           `mapstructure:"n_threads"`
	ResultOptions ResultOptions `mapstructure:"result_options"`
}

// InputModel selects and parameterizes the stellar model reader.
type InputModel struct {
	Type              string  `mapstructure:"type"`
	Fname             string  `mapstructure:"fname"`
	Gzipped           bool    `mapstructure:"gzipped"`
	FinalAtomicNumber int     `mapstructure:"final_atomic_number"`
	CompositionSource string  `mapstructure:"composition_source"`
	CompositionY      float64 `mapstructure:"composition_Y"`
	CompositionZ      float64 `mapstructure:"composition_Z"`
	TruncateToShell   int     `mapstructure:"truncate_to_shell"`
	// NuclideRescalingDict maps nuclide identifiers ("Ni56") to the mass
	// fraction written at every shell.
	NuclideRescalingDict map[string]float64 `mapstructure:"nuclide_rescaling_dict"`
}

// Opacity holds the opacity switches the ingestion pipeline reads.
type Opacity struct {
	Line                      LineOpacity `mapstructure:"line"`
	Rayleigh                  []string    `mapstructure:"rayleigh"`
	DisableElectronScattering bool        `mapstructure:"disable_electron_scattering"`
}

// LineOpacity configures line opacity and microturbulence.
type LineOpacity struct {
	Disable                bool     `mapstructure:"disable"`
	DisableMicroturbulence bool     `mapstructure:"disable_microturbulence"`
	Min                    float64  `mapstructure:"min"`
	Max                    float64  `mapstructure:"max"`
	Broadening             []string `mapstructure:"broadening"`
}

// ResultOptions lists what the downstream engine should return.
type ResultOptions struct {
	ReturnModel          bool `mapstructure:"return_model"`
	ReturnPlasma         bool `mapstructure:"return_plasma"`
	ReturnRadiationField bool `mapstructure:"return_radiation_field"`
}

// Format resolves the model format tag.
func (m InputModel) Format() (domain.ModelFormat, error) {
	return domain.ParseModelFormat(m.Type)
}

// NuclideRescaling returns the parsed rescaling map, or nil when none is
// requested. Nil is the explicit "no rescaling" value.
func (m InputModel) NuclideRescaling() (map[domain.Nuclide]float64, error) {
	if len(m.NuclideRescalingDict) == 0 {
		return nil, nil
	}

	out := make(map[domain.Nuclide]float64, len(m.NuclideRescalingDict))
	for _, key := range slices.Sorted(maps.Keys(m.NuclideRescalingDict)) {
		n, err := domain.ParseNuclide(key)
		if err != nil {
			return nil, fmt.Errorf("input_model.nuclide_rescaling_dict: %w", err)
		}
		if _, dup := out[n]; dup {
			return nil, fmt.Errorf("input_model.nuclide_rescaling_dict: %q names %s twice", key, n)
		}
		out[n] = m.NuclideRescalingDict[key]
	}
	return out, nil
}

func (c Config) clone() Config {
	out := c
	out.InputModel.NuclideRescalingDict = maps.Clone(c.InputModel.NuclideRescalingDict)
	out.Opacity.Rayleigh = slices.Clone(c.Opacity.Rayleigh)
	out.Opacity.Line.Broadening = slices.Clone(c.Opacity.Line.Broadening)
	return out
}
