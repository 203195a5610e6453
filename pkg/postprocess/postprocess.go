// Package postprocess applies the ordered adjustments made to a normalized
// StellarModel before it is handed to the radiative-transfer engine:
// microturbulence suppression, atom data preparation over the effective
// element range, and nuclide rescaling.
package postprocess

import (
	"context"
	"fmt"

	"github.com/aretw0/photosphere/pkg/atomdata"
	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
)

// State is what processors read and update. Atoms is replaced by the
// prepared dataset once ElementRangeClamp has run.
type State struct {
	Model *domain.StellarModel
	Atoms *atomdata.Dataset
}

// Processor is one named adjustment.
type Processor interface {
	Name() domain.Stage
	Process(ctx context.Context, st *State) error
}

// Observer is notified before each processor runs; the returned func
// receives its result.
type Observer func(ctx context.Context, stage domain.Stage) func(error)

// Pipeline runs processors in order and stops at the first failure.
type Pipeline struct {
	processors []Processor
	observe    Observer
}

// New returns a pipeline running processors in the given order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// FromConfig builds the standard processor chain for cfg.
func FromConfig(cfg config.Config) (*Pipeline, error) {
	values, err := cfg.InputModel.NuclideRescaling()
	if err != nil {
		return nil, err
	}
	return New(
		Microturbulence{Disable: cfg.Opacity.Line.DisableMicroturbulence},
		ElementRangeClamp{FinalAtomicNumber: cfg.InputModel.FinalAtomicNumber},
		NuclideRescaling{Values: values},
	), nil
}

// Observe sets the observer and returns p.
func (p *Pipeline) Observe(o Observer) *Pipeline {
	p.observe = o
	return p
}

// Stages lists the processor names in run order.
func (p *Pipeline) Stages() []domain.Stage {
	out := make([]domain.Stage, len(p.processors))
	for i, proc := range p.processors {
		out[i] = proc.Name()
	}
	return out
}

// Run applies every processor to st.
func (p *Pipeline) Run(ctx context.Context, st *State) error {
	if st == nil || st.Model == nil {
		return fmt.Errorf("postprocess: no model")
	}
	for _, proc := range p.processors {
		var done func(error)
		if p.observe != nil {
			done = p.observe(ctx, proc.Name())
		}
		err := proc.Process(ctx, st)
		if done != nil {
			done(err)
		}
		if err != nil {
			return fmt.Errorf("processor %s: %w", proc.Name(), err)
		}
	}
	return nil
}
