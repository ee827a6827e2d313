package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/report"
)

// DashboardFlags holds command-line flags for the dashboard command
type DashboardFlags struct {
	ContinueOnError bool
}

// NewDashboardCommand creates the dashboard command
func NewDashboardCommand(container *CLIContainer) *cobra.Command {
	flags := &DashboardFlags{}

	cmd := &cobra.Command{
		Use:   "dashboard [stages...]",
		Short: "Run a publish with a live terminal view",
		Long: `Run a publish like 'pk run', but inside an interactive terminal view
that updates as each stage completes.

Examples:
  pk dashboard                     # full run with live progress
  pk dashboard validators          # selection plus validation only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(container, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.ContinueOnError, "continue-on-error", false, "Run remaining stages even when a stage left errors")

	return cmd
}

// runDashboard starts the terminal view and drives the run inside it
func runDashboard(container *CLIContainer, flags *DashboardFlags, stages []string) error {
	rt := container.Runtime

	host, err := rt.Resolver.CurrentHost()
	if err != nil {
		return fmt.Errorf("%w; pass --host or set PK_HOST", err)
	}

	if len(stages) == 0 {
		stages = rt.Config.Stages
	}

	model := newDashboardModel(container, flags, host, stages)

	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	if m, ok := finalModel.(dashboardModel); ok {
		// Repeat the report on the regular terminal once the alt
		// screen is gone.
		fmt.Println(renderReport(m.rep, m.ctx))
		if m.ctx.HasErrors() {
			return fmt.Errorf("publish failed with %d error(s)", len(m.ctx.Errors()))
		}
	}
	return nil
}

// stageDoneMsg reports one completed stage pass
type stageDoneMsg struct {
	stage    string
	duration time.Duration
	err      error
}

// dashboardModel holds the state for the Bubble Tea run view.
//
// While a stage command runs, its goroutine has the context and report to
// itself; Update takes ownership back when stageDoneMsg arrives and refreshes
// the snapshot fields below. View renders only from those snapshots.
type dashboardModel struct {
	container *CLIContainer
	flags     *DashboardFlags

	ctx    *domain.Context
	rep    *report.Report
	stages []string
	next   int

	body       string
	instances  int
	errorCount int

	running string
	done    bool
	err     error

	windowWidth  int
	windowHeight int
}

// newDashboardModel creates a new dashboard model
func newDashboardModel(container *CLIContainer, flags *DashboardFlags, host domain.HostID, stages []string) dashboardModel {
	return dashboardModel{
		container: container,
		flags:     flags,
		ctx:       domain.NewContext(),
		rep:       report.New(host),
		stages:    stages,
		running:   domain.StageSelectors,
	}
}

// Init implements the Bubble Tea init method
func (m dashboardModel) Init() tea.Cmd {
	return m.selectCmd()
}

// Update implements the Bubble Tea update method
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case stageDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, nil
		}

		m.rep.RecordStage(msg.stage, m.ctx, m.errorCount, msg.duration)
		m.instances = m.ctx.Len()
		m.errorCount = len(m.ctx.Errors())

		if msg.stage != domain.StageSelectors && m.errorCount > 0 && !m.flags.ContinueOnError {
			m.rep.Halted = true
			m.done = true
		}
		if msg.stage == domain.StageSelectors && m.instances == 0 {
			m.done = true
		}
		if m.next >= len(m.stages) {
			m.done = true
		}

		m.body = renderReport(m.rep, m.ctx)
		if m.done {
			return m, nil
		}

		stage := m.stages[m.next]
		m.next++
		m.running = stage
		return m, m.processCmd(stage)
	}

	return m, nil
}

// selectCmd runs the selection pass
func (m dashboardModel) selectCmd() tea.Cmd {
	ctx := m.ctx
	runner := m.container.Runtime.Runner
	return func() tea.Msg {
		start := time.Now()
		_, err := runner.Select(ctx)
		return stageDoneMsg{stage: domain.StageSelectors, duration: time.Since(start), err: err}
	}
}

// processCmd runs one processing stage
func (m dashboardModel) processCmd(stage string) tea.Cmd {
	ctx := m.ctx
	runner := m.container.Runtime.Runner
	return func() tea.Msg {
		start := time.Now()
		_, err := runner.Process(stage, ctx)
		return stageDoneMsg{stage: stage, duration: time.Since(start), err: err}
	}
}

// View implements the Bubble Tea view method
func (m dashboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'q' to quit", m.err)
	}

	header := m.renderHeader()
	body := m.body
	if body == "" {
		body = dimStyle.Render("Selecting instances...")
	}
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderHeader renders the run status line
func (m dashboardModel) renderHeader() string {
	title := titleStyle.Render("Publishkit")

	status := okStyle.Render(fmt.Sprintf("RUNNING %s", m.running))
	if m.done {
		status = okStyle.Render("DONE")
		if m.errorCount > 0 {
			status = failStyle.Render("FAILED")
		}
	}

	info := dimStyle.Render(fmt.Sprintf("instances: %d | errors: %d",
		m.instances, m.errorCount))

	return lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", status, "  ", info)
}

// renderFooter renders the control instructions footer
func (m dashboardModel) renderFooter() string {
	return dimStyle.Render("Controls: [q] Quit")
}
