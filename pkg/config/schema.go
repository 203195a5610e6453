package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/schema"
)

// Sentinel defaults shared with the model readers.
const (
	// NoCompositionOverride keeps the helium or metal fraction of the model.
	NoCompositionOverride = domain.NoCompositionOverride
	// DefaultFinalAtomicNumber bounds the species axis when unset.
	DefaultFinalAtomicNumber = 30
)

// Composition sources accepted by input_model.composition_source.
const (
	CompositionFromModel   = domain.CompositionFromModel
	CompositionAsplund2009 = domain.CompositionAsplund2009
)

var pathType = schema.Custom("path", checkPath)

// Schema is the document schema every configuration is validated against.
var Schema = schema.Object(
	schema.Optional("stardis_config_version", schema.Positive(), 1.0),
	schema.Required("atom_data", pathType),
	schema.Required("input_model", schema.Object(
		// type is resolved by domain.ParseModelFormat when the model is read.
		schema.Required("type", schema.String()),
		schema.Required("fname", pathType),
		schema.Optional("gzipped", schema.Bool(), false),
		schema.Optional("final_atomic_number", schema.IntRange(1, domain.MaxAtomicNumber), DefaultFinalAtomicNumber),
		schema.Optional("composition_source", schema.Enum(CompositionFromModel, CompositionAsplund2009), CompositionFromModel),
		schema.Optional("composition_Y", schema.Float(), NoCompositionOverride),
		schema.Optional("composition_Z", schema.Float(), NoCompositionOverride),
		schema.Optional("truncate_to_shell", schema.Int(), domain.NoTruncation),
		schema.Optional("nuclide_rescaling_dict", schema.Map(schema.Float()).WithKeys(checkNuclide), map[string]any{}),
	)),
	schema.Optional("opacity", schema.Object(
		schema.Optional("line", schema.Object(
			schema.Optional("disable", schema.Bool(), false),
			schema.Optional("disable_microturbulence", schema.Bool(), false),
			schema.Optional("min", schema.Float(), 0.0),
			schema.Optional("max", schema.Float(), 0.0),
			schema.Optional("broadening", schema.Slice(schema.Enum(
				"linear_stark", "quadratic_stark", "van_der_waals", "radiation",
			)), []any{}),
		), nil),
		schema.Optional("rayleigh", schema.Slice(schema.Enum("H", "He", "H2")), []any{}),
		schema.Optional("disable_electron_scattering", schema.Bool(), false),
	), nil),
	schema.Optional("no_of_thetas", schema.IntRange(1, 1000), 20),
	schema.Optional("n_threads", schema.IntRange(0, 1024), 1),
	schema.Optional("result_options", schema.Object(
		schema.Optional("return_model", schema.Bool(), false),
		schema.Optional("return_plasma", schema.Bool(), false),
		schema.Optional("return_radiation_field", schema.Bool(), true),
	), nil),
)

func checkNuclide(key string) error {
	_, err := domain.ParseNuclide(key)
	return err
}

func checkPath(v any) error {
	p, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected path string, got %T", v)
	}
	if strings.TrimSpace(p) == "" {
		return errors.New("path is empty")
	}
	return nil
}
