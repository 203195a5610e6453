package cli

import (
	"context"
	"io"

	"github.com/aretw0/photosphere/internal/presentation/report"
	"github.com/aretw0/photosphere/internal/validator"
	"github.com/aretw0/photosphere/pkg/config"
)

// Validate loads the configuration at path, applies the key=value
// overrides and checks the inputs it references.
func Validate(ctx context.Context, path string, set []string, out io.Writer) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	overrides, err := config.ParseOverrides(set)
	if err != nil {
		return err
	}
	cfg, err = cfg.MergeOverrides(overrides)
	if err != nil {
		return err
	}
	if err := validator.ValidateInputs(ctx, cfg.Typed()); err != nil {
		return err
	}
	report.Success(out, "%s is valid", cfg.Path())
	return nil
}
