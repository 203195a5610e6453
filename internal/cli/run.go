package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/photosphere"
	"github.com/aretw0/photosphere/internal/presentation/report"
	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// RunOptions configures a pipeline run from the command line.
type RunOptions struct {
	GlobalOptions
	ConfigPath string
	// Set holds key=value overrides in dotted-path form.
	Set []string
	// MetricsOut, when set, receives the Prometheus text exposition of the run.
	MetricsOut string
	// Graph appends a Mermaid flowchart of the stages to the report.
	Graph  bool
	Banner bool
	// Renderer formats the markdown report; nil writes it as is.
	Renderer report.Renderer
	// Logs receives log records; nil means os.Stderr.
	Logs io.Writer
}

// Run executes the pipeline and writes the report to out. Metrics are
// written even when the run fails.
func Run(ctx context.Context, opts RunOptions, out io.Writer) (err error) {
	logs := opts.Logs
	if logs == nil {
		logs = os.Stderr
	}
	logger, err := opts.Logger(logs)
	if err != nil {
		return err
	}

	overrides, err := config.ParseOverrides(opts.Set)
	if err != nil {
		return err
	}

	cache, closeCache := opts.Cache()
	defer func() {
		if cerr := closeCache(); cerr != nil {
			logger.Warn("closing atom data cache", "err", cerr)
		}
	}()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	recorder := &report.Recorder{}
	if opts.MetricsOut != "" {
		defer func() {
			if werr := writeMetrics(opts.MetricsOut, metrics); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	pipeline := photosphere.New(
		photosphere.WithLogger(logger),
		photosphere.WithLifecycleHooks(metrics.Hooks().Merge(recorder.Hooks())),
		photosphere.WithAtomDataCache(cache),
	)

	if opts.Banner {
		report.PrintBanner(out)
	}

	res, err := pipeline.Run(ctx, opts.ConfigPath, overrides)
	if err != nil {
		if opts.Graph {
			if rerr := render(out, opts.Renderer, pipelineSection(recorder.Timings())); rerr != nil {
				logger.Warn("rendering stage flowchart", "err", rerr)
			}
		}
		return err
	}

	var md strings.Builder
	md.WriteString(report.RunMarkdown(res, recorder.Timings()))
	if opts.Graph {
		md.WriteString(pipelineSection(recorder.Timings()))
	}
	if err := render(out, opts.Renderer, md.String()); err != nil {
		return err
	}
	report.Success(out, "run %s finished: %d shells, %d elements", res.RunID, res.Model.NoOfShells(), res.AtomData.Len())
	return nil
}

// pipelineSection renders the stage flowchart as a fenced mermaid block.
func pipelineSection(timings []report.Timing) string {
	return "## Pipeline\n\n```mermaid\n" +
		report.Flowchart(domain.Stages(), report.OverlayFrom(timings)) +
		"```\n"
}

func writeMetrics(path string, m *observability.Metrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics output: %w", err)
	}
	defer f.Close()
	if err := m.WriteText(f); err != nil {
		return fmt.Errorf("metrics output: %w", err)
	}
	return f.Close()
}

func render(out io.Writer, r report.Renderer, markdown string) error {
	if r == nil {
		r = report.Plain
	}
	text, err := r(markdown)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err = io.WriteString(out, text)
	return err
}
