package photosphere

import (
	"fmt"

	"github.com/aretw0/photosphere/pkg/domain"
)

// StageError reports the pipeline stage a run failed in. Err is the typed
// error of the failing component.
type StageError struct {
	Stage domain.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
