package observability

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const namespace = "photosphere"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	runs          *prometheus.CounterVec
	shells        *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"stage"},
		),
		stageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_failures_total",
				Help:      "Number of runs aborted in each stage",
			},
			[]string{"stage"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Number of pipeline runs by outcome",
			},
			[]string{"outcome"},
		),
		shells: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "model_shells",
				Help:      "Shell count of the last model produced, by format",
			},
			[]string{"format"},
		),
	}
	reg.MustRegister(m.stageDuration, m.stageFailures, m.runs, m.shells)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) {
			stage := string(e.Stage)
			m.stageDuration.WithLabelValues(stage).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.stageFailures.WithLabelValues(stage).Inc()
			}
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				m.runs.WithLabelValues(OutcomeFailure).Inc()
				return
			}
			m.runs.WithLabelValues(OutcomeSuccess).Inc()
			m.shells.WithLabelValues(e.Format.String()).Set(float64(e.Shells))
		},
	}
}

// WriteText writes every registered metric family in the Prometheus text
// format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	return writeFamilies(w, families)
}

func writeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
