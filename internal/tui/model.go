// internal/tui/model.go
//
// Progress view for a pipeline run. It uses bubbletea, which follows The Elm
// Architecture: runner events and log lines arrive as messages, Update folds
// them into the model and View renders the stage list, the progress bar of
// the running stage and the tail of the run log.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/combprep/internal/pipeline"
	"github.com/kingrea/combprep/internal/report"
	"github.com/kingrea/combprep/internal/stage"
)

const logLines = 8

type eventMsg pipeline.Event

type logMsg string

type doneMsg struct {
	report pipeline.RunReport
	err    error
}

// stageLine is one row of the stage list.
type stageLine struct {
	name    string
	status  stage.Status
	message string
	running bool
}

// Model is the bubbletea model of the progress view.
type Model struct {
	title   string
	stages  []stageLine
	current int
	done    int
	total   int

	spinner spinner.Model
	bar     progress.Model
	logs    []string
	width   int

	finished bool
	aborted  bool
	report   pipeline.RunReport
	err      error
	cancel   func()
}

// NewModel builds an empty progress view. cancel is invoked when the user
// quits before the run finishes.
func NewModel(title string, cancel func()) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	return Model{
		title:   title,
		current: -1,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		cancel:  cancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			m.aborted = !m.finished
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(10, min(60, msg.Width-10))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case eventMsg:
		m.applyEvent(pipeline.Event(msg))
	case logMsg:
		m.logs = append(m.logs, string(msg))
		if len(m.logs) > logLines {
			m.logs = m.logs[len(m.logs)-logLines:]
		}
	case doneMsg:
		m.finished = true
		m.report = msg.report
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) applyEvent(ev pipeline.Event) {
	for len(m.stages) < ev.Count {
		m.stages = append(m.stages, stageLine{})
	}
	if ev.Index < 0 || ev.Index >= len(m.stages) {
		return
	}
	line := &m.stages[ev.Index]
	line.name = ev.Name
	switch ev.Kind {
	case pipeline.EventStarted:
		line.running = true
		m.current, m.done, m.total = ev.Index, 0, 0
	case pipeline.EventProgress:
		m.done, m.total = ev.Done, ev.Total
	case pipeline.EventFinished, pipeline.EventSkipped:
		line.running = false
		line.status = ev.Run.Status
		line.message = ev.Run.Message
		if m.current == ev.Index {
			m.current = -1
		}
	}
}

// Percent is the completion ratio of the running stage.
func (m Model) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(1, float64(m.done)/float64(m.total))
}

// Report returns the run report once the run has finished.
func (m Model) Report() (pipeline.RunReport, error) {
	return m.report, m.err
}

// View implements tea.Model.
func (m Model) View() string {
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ " + strings.ToUpper(m.title))

	rows := make([]string, 0, len(m.stages))
	for _, line := range m.stages {
		rows = append(rows, m.renderLine(line))
	}
	if len(rows) == 0 {
		rows = append(rows, m.spinner.View()+" preparing run")
	}
	sections := []string{head, strings.Join(rows, "\n")}

	if m.current >= 0 {
		count := fmt.Sprintf("%d/%d", m.done, m.total)
		if m.total <= 0 {
			count = "working"
		}
		sections = append(sections, "", m.bar.ViewAs(m.Percent())+" "+count)
	}
	if len(m.logs) > 0 {
		sections = append(sections, "", lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1).
			Render(strings.Join(m.logs, "\n")))
	}
	footer := "q: abort"
	if m.finished {
		footer = "done"
	}
	sections = append(sections, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(footer))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLine(line stageLine) string {
	name := line.name
	if name == "" {
		name = "…"
	}
	switch {
	case line.running:
		return fmt.Sprintf("%s %s", m.spinner.View(), name)
	case line.status != "":
		out := fmt.Sprintf("%s %s", report.StatusLabel(line.status), name)
		if line.message != "" {
			out += lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Render(" · " + line.message)
		}
		return out
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Render("  " + name)
	}
}
