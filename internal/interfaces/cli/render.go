package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// renderReport renders the run summary table and, when the run failed, the
// per-instance error breakdown.
func renderReport(rep *report.Report, ctx *domain.Context) string {
	title := titleStyle.Render("Publish Report")
	meta := dimStyle.Render(fmt.Sprintf("run %s | host %s | %s",
		rep.RunID[:8], rep.Host, rep.Duration().Round(time.Millisecond)))

	rows := []string{
		headerStyle.Render(fmt.Sprintf("%-12s │ %-9s │ %-9s │ %s",
			"STAGE", "INSTANCES", "ERRORS", "DURATION")),
	}
	for _, stage := range rep.Stages {
		line := fmt.Sprintf("%-12s │ %-9d │ %-9d │ %s",
			stage.Stage, stage.Instances, stage.NewErrors,
			stage.Duration.Round(time.Millisecond))
		if stage.NewErrors > 0 {
			line = failStyle.Render(line)
		}
		rows = append(rows, line)
	}
	if rep.Halted {
		rows = append(rows, dimStyle.Render(fmt.Sprintf(
			"run halted: %d error(s) accumulated", rep.TotalErrors())))
	}

	sections := []string{title, meta, lipgloss.JoinVertical(lipgloss.Left, rows...)}

	if ctx.HasErrors() {
		sections = append(sections, renderErrors(ctx))
	} else {
		sections = append(sections, okStyle.Render("All instances published cleanly."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderErrors lists each failing instance with its accumulated errors.
func renderErrors(ctx *domain.Context) string {
	rows := []string{failStyle.Render("Failures")}
	for _, inst := range ctx.Instances() {
		errs := inst.Errors()
		if len(errs) == 0 {
			continue
		}
		family, _ := inst.Family()
		rows = append(rows, fmt.Sprintf("  %s (%s)", inst.Path(), family))
		for _, err := range errs {
			rows = append(rows, dimStyle.Render(fmt.Sprintf("    %s/%s: %v",
				err.Stage, err.Plugin, err.Err)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
