package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atredan/sheetgram/internal/tasks"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// maxLogLines is the number of recent progress messages kept on screen.
const maxLogLines = 8

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ConfirmView ViewState = iota
	RunView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	view          ViewState
	engine        *tasks.EnrichEngine
	opts          tasks.EnrichOpts
	spreadsheetID string

	width  int
	height int

	bar          progress.Model
	progressChan chan tasks.ProgressUpdate
	current      tasks.ProgressUpdate
	logLines     []string

	result *tasks.EnrichResult
	err    error

	help help.Model
	keys keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

type runCompleteMsg struct {
	result *tasks.EnrichResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.EnrichEngine, spreadsheetID string, opts tasks.EnrichOpts) *Model {
	return &Model{
		ctx:           ctx,
		view:          ConfirmView,
		engine:        engine,
		opts:          opts,
		spreadsheetID: spreadsheetID,
		bar:           progress.New(progress.WithDefaultGradient()),
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

// Init implements [tea.Model]; the run starts only after confirmation.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case RunView:
			// No cancel key during a run; rate-limit pauses make aborting via
			// ctx the caller's concern, and q would strand the goroutine.
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.current = tasks.ProgressUpdate(msg)
		m.appendLog(m.current.Message)
		return m, m.waitForProgress()

	case runCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ConfirmView:
		return m.renderConfirm()
	case RunView:
		return m.renderRun()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		return m, tea.Quit
	case "y":
		m.view = RunView
		return m, m.startRun()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) appendLog(line string) {
	if line == "" {
		return
	}
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

func (m *Model) startRun() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Run(m.ctx, m.progressChan, m.opts)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return runCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return runCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Enrich spreadsheet %s?", m.spreadsheetID))

	var flags []string
	if m.opts.TestMode {
		flags = append(flags, "test mode (first row only)")
	}
	if m.opts.Force {
		flags = append(flags, "force (overwrite existing data)")
	}
	info := ""
	if len(flags) > 0 {
		info = styles.warn.Render(strings.Join(flags, ", ")) + "\n"
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderRun() string {
	title := styles.title.Render("Enriching rows")

	var bar string
	if m.current.Total > 0 {
		bar = m.bar.ViewAs(float64(m.current.Step) / float64(m.current.Total))
	}

	var phase string
	switch m.current.Phase {
	case tasks.FetchRows:
		phase = "Fetching rows from spreadsheet..."
	case tasks.BatchPause:
		phase = "Pausing between batches..."
	case tasks.Lookup:
		phase = fmt.Sprintf("Looking up profiles (%d/%d)", m.current.Step, m.current.Total)
	case tasks.WriteRow:
		phase = fmt.Sprintf("Writing rows (%d/%d)", m.current.Step, m.current.Total)
	default:
		phase = "Processing..."
	}

	log := styles.help.Render(strings.Join(m.logLines, "\n"))
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, bar, phase, log)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Run failed: %v\n\nPress q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Run Complete")
	info := fmt.Sprintf(
		"\nRows visited: %d\nUpdated: %d\nSkipped: %d\nNo data: %d\nFailed: %d\nDuration: %s",
		m.result.Total,
		m.result.Updated,
		m.result.Skipped,
		m.result.NoData,
		m.result.Failed,
		m.result.Duration,
	)

	var failures string
	if m.result.Failed > 0 || m.result.NoData > 0 {
		var lines []string
		for _, outcome := range m.result.Outcomes {
			if outcome.Err != nil {
				lines = append(lines, fmt.Sprintf("  • row %d %s: %v", outcome.Index, outcome.Username, outcome.Err))
			}
		}
		if len(lines) > 0 {
			failures = "\n\n" + styles.warn.Render("Problems:") + "\n" + strings.Join(lines, "\n")
		}
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failures, helpView)
}
