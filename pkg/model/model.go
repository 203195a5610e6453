// Package model reads raw stellar models by format and normalizes them into
// domain.StellarModel.
//
// Formats are a closed set (domain.ModelFormat); every switch in this
// package is exhaustive over it.
package model

import (
	"fmt"

	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/model/marcs"
	"github.com/aretw0/photosphere/pkg/model/mesa"
)

// Raw is a parsed model before normalization: *marcs.Model or *mesa.Model.
type Raw interface {
	Format() domain.ModelFormat
	ShellCount() int
}

// ReadOptions locate and trim a model file.
type ReadOptions struct {
	Path    string
	Gzipped bool // MARCS only
	// TruncateToShell keeps the first n shells of a MESA profile.
	// domain.NoTruncation keeps every shell. Ignored for MARCS.
	TruncateToShell int
}

// NormalizeOptions control species selection and composition overrides.
type NormalizeOptions struct {
	FinalAtomicNumber       int
	CompositionSource       string
	HeliumMassFractionY     float64
	HeavyMetalMassFractionZ float64
}

// Atoms is the view of the atom data normalization needs. *atomdata.Dataset
// satisfies it.
type Atoms interface {
	Mass(z int) (float64, bool)
	Has(z int) bool
}

// Options splits the input_model section into read and normalize options.
func Options(in config.InputModel) (ReadOptions, NormalizeOptions) {
	read := ReadOptions{
		Path:            in.Fname,
		Gzipped:         in.Gzipped,
		TruncateToShell: in.TruncateToShell,
	}
	normalize := NormalizeOptions{
		FinalAtomicNumber:       in.FinalAtomicNumber,
		CompositionSource:       in.CompositionSource,
		HeliumMassFractionY:     in.CompositionY,
		HeavyMetalMassFractionZ: in.CompositionZ,
	}
	return read, normalize
}

// Read parses the model file in the given format. MESA profiles are
// truncated before they are returned.
func Read(format domain.ModelFormat, opts ReadOptions) (Raw, error) {
	switch format {
	case domain.FormatMARCS:
		m, err := marcs.Read(opts.Path, opts.Gzipped)
		if err != nil {
			return nil, err
		}
		return m, nil
	case domain.FormatMESA:
		m, err := mesa.Read(opts.Path)
		if err != nil {
			return nil, err
		}
		if err := m.Truncate(opts.TruncateToShell); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, &domain.UnsupportedModelTypeError{Type: format.String()}
	}
}

// ReadInput resolves input_model.type and reads the model it names.
func ReadInput(in config.InputModel) (Raw, error) {
	format, err := in.Format()
	if err != nil {
		return nil, err
	}
	opts, _ := Options(in)
	return Read(format, opts)
}

// Normalize converts raw into the canonical model and checks its shape.
func Normalize(raw Raw, atoms Atoms, opts NormalizeOptions) (*domain.StellarModel, error) {
	var (
		sm  *domain.StellarModel
		err error
	)
	switch m := raw.(type) {
	case *marcs.Model:
		sm, err = m.ToStellarModel(atoms, marcs.Options{
			FinalAtomicNumber:       opts.FinalAtomicNumber,
			CompositionSource:       opts.CompositionSource,
			HeliumMassFractionY:     opts.HeliumMassFractionY,
			HeavyMetalMassFractionZ: opts.HeavyMetalMassFractionZ,
		})
	case *mesa.Model:
		sm, err = m.ToStellarModel(atoms, opts.FinalAtomicNumber)
	default:
		return nil, fmt.Errorf("normalize: unsupported raw model %T", raw)
	}
	if err != nil {
		return nil, err
	}

	if err := sm.Validate(opts.FinalAtomicNumber); err != nil {
		return nil, fmt.Errorf("normalized %s model: %w", raw.Format(), err)
	}
	return sm, nil
}
