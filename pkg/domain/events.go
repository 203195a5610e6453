package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageStart EventType = "stage_start"
	EventStageEnd   EventType = "stage_end"
	EventRunEnd     EventType = "run_end"
)

// Stage names one step of the ingestion pipeline.
type Stage string

const (
	StageLoadConfig      Stage = "load_config"
	StageMergeOverrides  Stage = "merge_overrides"
	StageLoadAtomData    Stage = "load_atom_data"
	StageReadModel       Stage = "read_model"
	StageNormalize       Stage = "normalize"
	StageMicroturbulence Stage = "microturbulence"
	StagePrepareAtomData Stage = "prepare_atom_data"
	StageRescaleNuclides Stage = "rescale_nuclides"
)

// Stages lists the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{
		StageLoadConfig,
		StageMergeOverrides,
		StageLoadAtomData,
		StageReadModel,
		StageNormalize,
		StageMicroturbulence,
		StagePrepareAtomData,
		StageRescaleNuclides,
	}
}

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// StageEvent marks the start or end of a stage. Duration and Err are only
// set on EventStageEnd.
type StageEvent struct {
	EventBase
	Stage    Stage         `json:"stage"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// RunEvent summarizes a finished run.
type RunEvent struct {
	EventBase
	Format   ModelFormat   `json:"format,omitempty"`
	Shells   int           `json:"shells,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for pipeline observability.
type LifecycleHooks struct {
	OnStageStart func(context.Context, *StageEvent)
	OnStageEnd   func(context.Context, *StageEvent)
	OnRunEnd     func(context.Context, *RunEvent)
}

// Merge returns hooks calling h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStageStart: chain(h.OnStageStart, other.OnStageStart),
		OnStageEnd:   chain(h.OnStageEnd, other.OnStageEnd),
		OnRunEnd:     chain(h.OnRunEnd, other.OnRunEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
