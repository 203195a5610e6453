package cli

import (
	"io"

	"github.com/aretw0/photosphere/internal/presentation/report"
	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/model"
)

// InspectOptions selects the raw model to describe.
type InspectOptions struct {
	Path     string
	Type     string
	Gzipped  bool
	Truncate int
	Renderer report.Renderer
}

// InspectModel reads a raw model and writes a description of its header.
func InspectModel(opts InspectOptions, out io.Writer) error {
	raw, err := model.ReadInput(config.InputModel{
		Type:            opts.Type,
		Fname:           opts.Path,
		Gzipped:         opts.Gzipped,
		TruncateToShell: opts.Truncate,
	})
	if err != nil {
		return err
	}
	return render(out, opts.Renderer, report.ModelMarkdown(model.Describe(raw)))
}
