package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/photosphere"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/model"
)

// Timing is the outcome of one finished stage.
type Timing struct {
	Stage    domain.Stage
	Duration time.Duration
	Err      error
}

// Recorder collects stage timings from lifecycle hooks.
type Recorder struct {
	mu      sync.Mutex
	timings []Timing
}

// Hooks returns lifecycle hooks appending to the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.timings = append(r.timings, Timing{Stage: e.Stage, Duration: e.Duration, Err: e.Err})
		},
	}
}

// Timings returns the stages recorded so far in completion order.
func (r *Recorder) Timings() []Timing {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Timing(nil), r.timings...)
}

// RunMarkdown describes a finished run: the model, its outermost shell
// composition, the prepared atom data and, when given, the stage timings.
func RunMarkdown(res *photosphere.Result, timings []Timing) string {
	var b strings.Builder
	sm := res.Model

	fmt.Fprintf(&b, "# Run %s\n\n", res.RunID)
	if res.Config != nil && res.Config.Path() != "" {
		fmt.Fprintf(&b, "Configuration: `%s`\n\n", res.Config.Path())
	}

	b.WriteString("## Model\n\n")
	rows := [][2]string{
		{"Format", sm.Source.Format.String()},
		{"Path", "`" + sm.Source.Path + "`"},
	}
	if sm.Source.Name != "" {
		rows = append(rows, [2]string{"Name", sm.Source.Name})
	}
	rows = append(rows, [2]string{"Shells", strconv.Itoa(sm.NoOfShells())})
	if sm.Source.EffectiveTemperature != 0 {
		rows = append(rows, [2]string{"Teff [K]", formatFloat(sm.Source.EffectiveTemperature)})
	}
	if sm.Source.LogG != 0 {
		rows = append(rows, [2]string{"log g", formatFloat(sm.Source.LogG)})
	}
	writeTable(&b, [2]string{"Property", "Value"}, rows)

	if c := sm.Composition; c != nil && sm.NoOfShells() > 0 {
		b.WriteString("## Surface composition\n\n")
		rows = rows[:0]
		for _, z := range c.ElementalMassFraction.Keys() {
			v, _ := c.ElementalMassFraction.At(0, z)
			rows = append(rows, [2]string{fmt.Sprintf("%d %s", z, domain.Symbol(z)), formatFloat(v)})
		}
		writeTable(&b, [2]string{"Element", "Mass fraction"}, rows)

		if c.NuclideMassFraction.Len() > 0 {
			b.WriteString("## Nuclides\n\n")
			rows = rows[:0]
			for _, n := range c.NuclideMassFraction.Keys() {
				v, _ := c.NuclideMassFraction.At(0, n)
				rows = append(rows, [2]string{n.String(), formatFloat(v)})
			}
			writeTable(&b, [2]string{"Nuclide", "Mass fraction"}, rows)
		}
	}

	b.WriteString("## Atom data\n\n")
	rows = [][2]string{
		{"Source", "`" + res.AtomData.Source() + "`"},
		{"Elements", strconv.Itoa(res.AtomData.Len())},
	}
	if prep, ok := res.AtomData.Prepared(); ok {
		rows = append(rows,
			[2]string{"Element range", elementRange(prep.ElementRange)},
			[2]string{"Line interaction", prep.LineInteractionType},
		)
	}
	writeTable(&b, [2]string{"Property", "Value"}, rows)

	if len(timings) > 0 {
		b.WriteString("## Stages\n\n| Stage | Duration | Status |\n|---|---|---|\n")
		for _, t := range timings {
			status := "ok"
			if t.Err != nil {
				status = "failed: " + t.Err.Error()
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", t.Stage, t.Duration.Round(time.Microsecond), escape(status))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ModelMarkdown describes a raw model header.
func ModelMarkdown(d model.Description) string {
	var b strings.Builder

	title := d.Format + " model"
	if d.Name != "" {
		title += " " + d.Name
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "`%s`, %d shells\n\n", d.Path, d.Shells)

	if len(d.Header) > 0 {
		b.WriteString("## Header\n\n")
		rows := make([][2]string, 0, len(d.Header))
		for _, f := range d.Header {
			rows = append(rows, [2]string{f.Name, f.Value})
		}
		writeTable(&b, [2]string{"Field", "Value"}, rows)
	}

	if len(d.Columns) > 0 {
		b.WriteString("## Columns\n\n")
		for _, c := range d.Columns {
			fmt.Fprintf(&b, "- `%s`\n", c)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeTable(b *strings.Builder, head [2]string, rows [][2]string) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", head[0], head[1])
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", escape(r[0]), escape(r[1]))
	}
	b.WriteString("\n")
}

func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

func elementRange(zs []int) string {
	switch len(zs) {
	case 0:
		return "none"
	case 1:
		return domain.Symbol(zs[0])
	}
	return fmt.Sprintf("%s-%s (Z=%d..%d)", domain.Symbol(zs[0]), domain.Symbol(zs[len(zs)-1]), zs[0], zs[len(zs)-1])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
