package photosphere

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/photosphere/internal/logging"
	loamAdapter "github.com/aretw0/photosphere/pkg/adapters/loam"
	"github.com/aretw0/photosphere/pkg/atomdata"
	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/model"
	"github.com/aretw0/photosphere/pkg/ports"
	"github.com/aretw0/photosphere/pkg/postprocess"
	"github.com/google/uuid"
)

// Result is the output of a successful run.
type Result struct {
	RunID    string
	Config   *config.Configuration
	AtomData *atomdata.Dataset
	Model    *domain.StellarModel
}

// Pipeline runs the ingestion stages. A Pipeline holds no per-run state and
// may be reused.
type Pipeline struct {
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	cache   ports.AtomDataCache
	openDir atomdata.DirectoryOpener
	newID   func() string
}

// Option defines a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger. Records carry run_id and stage.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pipeline) {
		p.hooks = hooks
	}
}

// WithAtomDataCache sets the cache consulted before the atom data store.
func WithAtomDataCache(cache ports.AtomDataCache) Option {
	return func(p *Pipeline) {
		p.cache = cache
	}
}

// WithDirectoryOpener replaces the Loam source used for atom data
// directories.
func WithDirectoryOpener(open atomdata.DirectoryOpener) Option {
	return func(p *Pipeline) {
		p.openDir = open
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		openDir: openLoam,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p
}

// Run executes a default Pipeline.
func Run(ctx context.Context, configPath string, overrides map[string]any) (*Result, error) {
	return New().Run(ctx, configPath, overrides)
}

// Run loads configPath, applies overrides and produces the prepared atom
// data and the normalized model. Nothing is returned on failure.
func (p *Pipeline) Run(ctx context.Context, configPath string, overrides map[string]any) (*Result, error) {
	return p.runWith(ctx, func() (*config.Configuration, error) {
		return config.Load(configPath)
	}, overrides)
}

// RunConfiguration is Run for a configuration built in memory, for example
// with package dsl. cfg is not modified.
func (p *Pipeline) RunConfiguration(ctx context.Context, cfg *config.Configuration, overrides map[string]any) (*Result, error) {
	return p.runWith(ctx, func() (*config.Configuration, error) {
		if cfg == nil {
			return nil, &config.ValidationError{Err: errors.New("nil configuration")}
		}
		return cfg, nil
	}, overrides)
}

func (p *Pipeline) runWith(ctx context.Context, load func() (*config.Configuration, error), overrides map[string]any) (*Result, error) {
	r := &run{
		Pipeline: p,
		id:       p.newID(),
	}
	r.logger = p.logger.With("run_id", r.id)
	start := time.Now()

	res, err := r.execute(ctx, load, overrides)

	duration := time.Since(start)
	if err != nil {
		r.logger.Error("run failed", "duration", duration, "err", err)
	} else {
		r.logger.Info("run finished",
			"format", r.format.String(),
			"shells", res.Model.NoOfShells(),
			"elements", res.AtomData.Len(),
			"duration", duration,
		)
	}
	if p.hooks.OnRunEnd != nil {
		ev := &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunEnd, RunID: r.id},
			Format:    r.format,
			Duration:  duration,
			Err:       err,
		}
		if res != nil {
			ev.Shells = res.Model.NoOfShells()
		}
		p.hooks.OnRunEnd(ctx, ev)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

type run struct {
	*Pipeline
	id     string
	logger *slog.Logger
	format domain.ModelFormat
}

func (r *run) execute(ctx context.Context, load func() (*config.Configuration, error), overrides map[string]any) (*Result, error) {
	var (
		cfg   *config.Configuration
		typed config.Config
		post  *postprocess.Pipeline
		atoms *atomdata.Dataset
		raw   model.Raw
		sm    *domain.StellarModel
	)

	err := r.stage(ctx, domain.StageLoadConfig, func() error {
		var err error
		cfg, err = load()
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, domain.StageMergeOverrides, func() error {
		if len(overrides) > 0 {
			r.logger.Info("updating config with overrides", "keys", len(overrides))
		}
		merged, err := cfg.MergeOverrides(overrides)
		if err != nil {
			return err
		}
		cfg, typed = merged, merged.Typed()
		post, err = postprocess.FromConfig(typed)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, domain.StageLoadAtomData, func() error {
		provider := atomdata.NewProvider(
			atomdata.WithCache(r.cache),
			atomdata.WithDirectoryOpener(r.openDir),
			atomdata.WithLogger(r.logger.With("stage", domain.StageLoadAtomData)),
		)
		var err error
		atoms, err = provider.Load(ctx, typed.AtomData)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, domain.StageReadModel, func() error {
		in := typed.InputModel
		format, err := in.Format()
		if err != nil {
			return err
		}
		r.format = format
		if format == domain.FormatMARCS && in.TruncateToShell != domain.NoTruncation {
			r.logger.Warn("truncate_to_shell only applies to mesa models", "truncate_to_shell", in.TruncateToShell)
		}
		opts, _ := model.Options(in)
		raw, err = model.Read(format, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, domain.StageNormalize, func() error {
		_, opts := model.Options(typed.InputModel)
		var err error
		sm, err = model.Normalize(raw, atoms, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	state := &postprocess.State{Model: sm, Atoms: atoms}
	var failed domain.Stage
	post.Observe(func(ctx context.Context, stage domain.Stage) func(error) {
		done := r.begin(ctx, stage)
		return func(err error) {
			if err != nil {
				failed = stage
			}
			done(err)
		}
	})
	if err := post.Run(ctx, state); err != nil {
		return nil, &StageError{Stage: failed, Err: err}
	}

	return &Result{
		RunID:    r.id,
		Config:   cfg,
		AtomData: state.Atoms,
		Model:    state.Model,
	}, nil
}

// stage runs fn as one named stage.
func (r *run) stage(ctx context.Context, stage domain.Stage, fn func() error) error {
	done := r.begin(ctx, stage)
	err := fn()
	done(err)
	if err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}

// begin emits the start of a stage and returns the func that ends it.
func (r *run) begin(ctx context.Context, stage domain.Stage) func(error) {
	start := time.Now()
	if r.hooks.OnStageStart != nil {
		r.hooks.OnStageStart(ctx, &domain.StageEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventStageStart, RunID: r.id},
			Stage:     stage,
		})
	}

	return func(err error) {
		duration := time.Since(start)
		if err != nil {
			r.logger.Debug("stage failed", "stage", stage, "duration", duration, "err", err)
		} else {
			r.logger.Debug("stage finished", "stage", stage, "duration", duration)
		}
		if r.hooks.OnStageEnd != nil {
			r.hooks.OnStageEnd(ctx, &domain.StageEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStageEnd, RunID: r.id},
				Stage:     stage,
				Duration:  duration,
				Err:       err,
			})
		}
	}
}

func openLoam(path string) (ports.AtomDataSource, error) {
	src, err := loamAdapter.Open(path)
	if err != nil {
		return nil, err
	}
	return src, nil
}
