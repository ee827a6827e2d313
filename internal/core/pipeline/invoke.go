package pipeline

import (
	"fmt"
	"runtime/debug"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/ports"
)

// invocationResult is the outcome of a single plugin invocation. The
// runners branch on it explicitly instead of letting failures unwind the
// loop, which keeps the never-abort contract visible in the code.
type invocationResult struct {
	// Err is nil on success
	Err error

	// Trace is the diagnostic stack captured when the failure was observed
	Trace string
}

// OK reports whether the invocation succeeded.
func (r invocationResult) OK() bool {
	return r.Err == nil
}

// invoke constructs a fresh behavior from the descriptor and runs it once.
// A panic inside the plugin is converted into a failed result so one
// misbehaving plugin can never take down the rest of the run. inst is nil
// for selector invocations.
func invoke(desc ports.PluginDescriptor, ctx *domain.Context, inst *domain.Instance) (res invocationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = invocationResult{
				Err:   fmt.Errorf("plugin %s panicked: %v", desc.Name, rec),
				Trace: string(debug.Stack()),
			}
		}
	}()

	if desc.New == nil {
		return invocationResult{
			Err:   fmt.Errorf("plugin %s has no behavior factory", desc.Name),
			Trace: string(debug.Stack()),
		}
	}

	if err := desc.New().Process(ctx, inst); err != nil {
		return invocationResult{Err: err, Trace: string(debug.Stack())}
	}
	return invocationResult{}
}
