package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrHostUndetermined is returned by host resolution when the active
// authoring environment cannot be identified.
var ErrHostUndetermined = errors.New("could not determine current host")

// ProcessError records one plugin failure during stage processing. It
// carries a back-reference to the instance being processed and the
// diagnostic trace captured at the point of failure, so failures stay
// queryable through Context.Errors after the run moves on.
type ProcessError struct {
	// Plugin is the name of the plugin that failed
	Plugin string

	// Stage is the stage the plugin was running under
	Stage string

	// Instance is the instance being processed when the failure occurred
	Instance *Instance

	// Err is the underlying failure returned or raised by the plugin
	Err error

	// Trace is the diagnostic stack captured when the failure was observed
	Trace string

	// OccurredAt is when the failure was recorded
	OccurredAt time.Time
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s: plugin %s failed on %s: %v", e.Stage, e.Plugin, e.Instance, e.Err)
}

// Unwrap returns the underlying plugin failure.
func (e *ProcessError) Unwrap() error {
	return e.Err
}
