package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/photosphere/pkg/domain"
)

// Overlay marks how far a run got through the stages.
type Overlay struct {
	Completed []domain.Stage
	Failed    domain.Stage
}

// OverlayFrom derives an overlay from recorded stage timings.
func OverlayFrom(timings []Timing) *Overlay {
	o := &Overlay{}
	for _, t := range timings {
		if t.Err != nil {
			o.Failed = t.Stage
			continue
		}
		o.Completed = append(o.Completed, t.Stage)
	}
	return o
}

// Flowchart produces a Mermaid flowchart of the stages in order. Config
// stages are drawn as input parallelograms and the model stages as
// subroutines.
func Flowchart(stages []domain.Stage, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, stage := range stages {
		id := mermaidID(stage)
		opener, closer := "[", "]"
		switch stage {
		case domain.StageLoadConfig, domain.StageMergeOverrides:
			opener, closer = "[/", "/]"
		case domain.StageReadModel, domain.StageNormalize:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, stage, closer)
		if i > 0 {
			fmt.Fprintf(&sb, "    %s --> %s\n", mermaidID(stages[i-1]), id)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Run overlay\n")
		sb.WriteString("    classDef done fill:#dcfce7,stroke:#15803d,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#fee2e2,stroke:#b91c1c,stroke-width:4px,color:#000;\n")
		seen := make(map[domain.Stage]bool)
		for _, s := range overlay.Completed {
			if !seen[s] {
				seen[s] = true
				fmt.Fprintf(&sb, "    class %s done;\n", mermaidID(s))
			}
		}
		if overlay.Failed != "" {
			fmt.Fprintf(&sb, "    class %s failed;\n", mermaidID(overlay.Failed))
		}
	}

	return sb.String()
}

func mermaidID(s domain.Stage) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_").Replace(string(s))
}
