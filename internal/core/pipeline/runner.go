package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/ports"
)

// Runner executes publish stages against a Context. It is single-threaded
// and synchronous: one plugin invocation completes (or fails) before the
// next is considered, and there is no cancellation of a running plugin.
type Runner struct {
	discovery ports.Discovery
	hosts     ports.HostResolver
	logger    logrus.FieldLogger
}

// NewRunner creates a Runner over the given discovery and host resolution
// collaborators. A nil logger falls back to the logrus standard logger.
func NewRunner(discovery ports.Discovery, hosts ports.HostResolver, logger logrus.FieldLogger) *Runner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runner{
		discovery: discovery,
		hosts:     hosts,
		logger:    logger,
	}
}

// Select builds the publish Context by running every discovered selector
// plugin that supports the current host. Passing nil starts a fresh
// Context; passing an existing one lets selectors extend it.
//
// Selection is best effort: a failing selector is logged with its identity
// and diagnostic trace and then skipped, so one bad selector never prevents
// others from contributing instances. The only non-nil error Select returns
// is a host-resolution failure, which fails the run before any plugin is
// considered.
func (r *Runner) Select(ctx *domain.Context) (*domain.Context, error) {
	if ctx == nil {
		ctx = domain.NewContext()
	}

	host, err := r.hosts.CurrentHost()
	if err != nil {
		return ctx, fmt.Errorf("selecting: %w", err)
	}

	for _, desc := range r.discovery.Discover(domain.StageSelectors) {
		if !desc.SupportsHost(host) {
			continue
		}

		r.logger.WithField("plugin", desc.Name).Info("Selecting")

		if res := invoke(desc, ctx, nil); !res.OK() {
			r.logger.WithFields(logrus.Fields{
				"plugin": desc.Name,
				"stage":  domain.StageSelectors,
				"trace":  res.Trace,
			}).WithError(res.Err).Error("Selector plugin failed")
		}
	}

	return ctx, nil
}

// Process runs every discovered plugin of the named stage against each
// instance in the context whose family and host match. Failures are logged,
// wrapped into a domain.ProcessError carrying the instance back-reference
// and captured trace, and appended to that instance's errors; the loop
// always moves on to the next plugin. The caller decides between stages
// whether accumulated errors should halt the run.
//
// Passing a nil context is a programming error and panics. The returned
// error is non-nil only when the current host cannot be resolved.
func (r *Runner) Process(stage string, ctx *domain.Context) (*domain.Context, error) {
	if ctx == nil {
		panic("pipeline: Process called with nil context")
	}

	host, err := r.hosts.CurrentHost()
	if err != nil {
		return ctx, fmt.Errorf("processing %s: %w", stage, err)
	}

	plugins := r.discovery.Discover(stage)

	for _, inst := range ctx.Instances() {
		family, hasFamily := inst.Family()

		r.logger.WithFields(logrus.Fields{
			"instance": inst.Path(),
			"family":   family,
			"stage":    stage,
		}).Info("Processing")

		for _, desc := range plugins {
			if !desc.SupportsHost(host) {
				continue
			}
			// No family means the instance matches nothing.
			if !hasFamily || !desc.SupportsFamily(family) {
				continue
			}

			r.logger.WithFields(logrus.Fields{
				"plugin":   desc.Name,
				"instance": inst.Path(),
				"stage":    stage,
			}).Info("Running plugin")

			res := invoke(desc, ctx, inst)
			if res.OK() {
				continue
			}

			r.logger.WithFields(logrus.Fields{
				"plugin":   desc.Name,
				"instance": inst.Path(),
				"stage":    stage,
				"trace":    res.Trace,
			}).WithError(res.Err).Error("Plugin failed")

			inst.RecordError(&domain.ProcessError{
				Plugin:     desc.Name,
				Stage:      stage,
				Instance:   inst,
				Err:        res.Err,
				Trace:      res.Trace,
				OccurredAt: time.Now(),
			})
		}
	}

	return ctx, nil
}
