// Package validator runs pre-flight checks on the inputs a configuration
// points at, without running the pipeline.
package validator

import (
	"context"
	"fmt"
	"os"
	"strings"

	loamAdapter "github.com/aretw0/photosphere/pkg/adapters/loam"
	"github.com/aretw0/photosphere/pkg/atomdata"
	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/model/marcs"
)

// ValidateInputs checks that the atom data and model files referenced by
// cfg exist and agree with the settings describing them.
func ValidateInputs(ctx context.Context, cfg config.Config) error {
	var errors []string
	add := func(format string, args ...any) {
		errors = append(errors, fmt.Sprintf(format, args...))
	}

	// 1. Atom data
	if info, err := os.Stat(cfg.AtomData); err != nil {
		add("atom data %s: %v", cfg.AtomData, err)
	} else if info.IsDir() {
		if err := checkAtomDirectory(ctx, cfg.AtomData); err != nil {
			add("atom data %s: %v", cfg.AtomData, err)
		}
	}

	// 2. Model
	in := cfg.InputModel
	format, err := in.Format()
	if err != nil {
		add("%v", err)
	}
	if info, err := os.Stat(in.Fname); err != nil {
		add("model %s: %v", in.Fname, err)
	} else if info.IsDir() {
		add("model %s: is a directory", in.Fname)
	} else if format == domain.FormatMARCS {
		isGzip, err := marcs.IsGzip(in.Fname)
		switch {
		case err != nil:
			add("model %s: %v", in.Fname, err)
		case isGzip && !in.Gzipped:
			add("model %s is gzip-compressed but input_model.gzipped is false", in.Fname)
		case !isGzip && in.Gzipped:
			add("model %s is not gzip-compressed but input_model.gzipped is true", in.Fname)
		}
	}

	// 3. Settings the schema cannot judge alone
	if format == domain.FormatMESA && in.TruncateToShell < 0 && in.TruncateToShell != domain.NoTruncation {
		add("%v", &domain.InvalidTruncationError{Requested: in.TruncateToShell})
	}
	if format == domain.FormatMARCS {
		checkFraction(add, "composition_Y", in.CompositionY)
		checkFraction(add, "composition_Z", in.CompositionZ)
		if in.CompositionY != domain.NoCompositionOverride && in.CompositionZ != domain.NoCompositionOverride &&
			in.CompositionY+in.CompositionZ > 1 {
			add("composition_Y + composition_Z = %g exceeds 1", in.CompositionY+in.CompositionZ)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

func checkFraction(add func(string, ...any), name string, v float64) {
	if v != domain.NoCompositionOverride && (v < 0 || v > 1) {
		add("%s = %g outside [0, 1]", name, v)
	}
}

func checkAtomDirectory(ctx context.Context, dir string) error {
	src, err := loamAdapter.Open(dir)
	if err != nil {
		return err
	}
	elements, err := src.Elements(ctx)
	if err != nil {
		return err
	}
	if len(elements) == 0 {
		return atomdata.ErrEmptyDataset
	}
	return nil
}
