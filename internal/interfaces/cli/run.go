package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/report"
)

// RunFlags holds command-line flags for the run command
type RunFlags struct {
	ContinueOnError bool
}

// NewRunCommand creates the run command
func NewRunCommand(container *CLIContainer) *cobra.Command {
	flags := &RunFlags{}

	cmd := &cobra.Command{
		Use:   "run [stages...]",
		Short: "Run a publish: select instances, then process each stage",
		Long: `Run a full publish pass. Selection always runs first; the processing
stages follow in the configured order, or in the order given as arguments.

The run halts between stages as soon as any instance carries an error,
unless --continue-on-error is set.

Examples:
  pk run                          # selectors, then configured stages
  pk run validators               # selectors, then validation only
  pk run --host standalone        # pin the host for file-based workflows
  pk run --continue-on-error      # run every stage regardless of failures`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(container, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.ContinueOnError, "continue-on-error", false, "Run remaining stages even when a stage left errors")

	return cmd
}

// runPublish drives one publish run and prints its report.
func runPublish(container *CLIContainer, flags *RunFlags, stages []string) error {
	rt := container.Runtime

	host, err := rt.Resolver.CurrentHost()
	if err != nil {
		if errors.Is(err, domain.ErrHostUndetermined) {
			return fmt.Errorf("%w; pass --host or set PK_HOST", err)
		}
		return err
	}

	if len(stages) == 0 {
		stages = rt.Config.Stages
	}

	rep := report.New(host)
	rt.Logger.WithField("run_id", rep.RunID).Info("Starting publish")

	ctx := domain.NewContext()

	start := time.Now()
	ctx, err = rt.Runner.Select(ctx)
	if err != nil {
		return err
	}
	rep.RecordStage(domain.StageSelectors, ctx, 0, time.Since(start))

	if ctx.Len() == 0 {
		fmt.Println(renderReport(rep, ctx))
		fmt.Println("Nothing to publish: no instances were selected.")
		return nil
	}

	for _, stage := range stages {
		errorsBefore := len(ctx.Errors())
		start = time.Now()
		ctx, err = rt.Runner.Process(stage, ctx)
		if err != nil {
			return err
		}
		rep.RecordStage(stage, ctx, errorsBefore, time.Since(start))

		if ctx.HasErrors() && !flags.ContinueOnError {
			rep.Halted = true
			break
		}
	}

	fmt.Println(renderReport(rep, ctx))

	if ctx.HasErrors() {
		return fmt.Errorf("publish failed with %d error(s)", len(ctx.Errors()))
	}
	return nil
}
