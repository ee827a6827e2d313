package report

import (
	"time"

	"github.com/google/uuid"

	"publishkit.dev/cli/internal/core/domain"
)

// Report summarizes one publish run for presentation. It is built by the
// caller between stages; the pipeline itself knows nothing about it.
type Report struct {
	// RunID uniquely identifies this run in logs and output
	RunID string

	// Host is the authoring host the run resolved to
	Host domain.HostID

	// StartedAt is when the run began
	StartedAt time.Time

	// Stages holds one result per executed stage, in execution order
	Stages []StageResult

	// Halted records whether the run stopped early on accumulated errors
	Halted bool
}

// StageResult captures the outcome of one stage pass.
type StageResult struct {
	// Stage is the stage name ("selectors", "validators", ...)
	Stage string

	// Duration is how long the stage pass took
	Duration time.Duration

	// Instances is how many instances the context held after the stage
	Instances int

	// NewErrors is how many errors the stage added
	NewErrors int
}

// New starts a report for a run against the given host.
func New(host domain.HostID) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Host:      host,
		StartedAt: time.Now(),
	}
}

// RecordStage appends the result of one stage pass, deriving the new-error
// count from the error total before the stage ran.
func (r *Report) RecordStage(stage string, ctx *domain.Context, errorsBefore int, duration time.Duration) {
	r.Stages = append(r.Stages, StageResult{
		Stage:     stage,
		Duration:  duration,
		Instances: ctx.Len(),
		NewErrors: len(ctx.Errors()) - errorsBefore,
	})
}

// TotalErrors returns the number of errors across all recorded stages.
func (r *Report) TotalErrors() int {
	total := 0
	for _, stage := range r.Stages {
		total += stage.NewErrors
	}
	return total
}

// Duration returns the elapsed time since the run started.
func (r *Report) Duration() time.Duration {
	return time.Since(r.StartedAt)
}
