// Package report renders stage results and run summaries for the console.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/combprep/internal/pipeline"
	"github.com/kingrea/combprep/internal/stage"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	headStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	noOpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	detailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	boxStyle       = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// maxFailures caps the per-item failures listed for one stage.
const maxFailures = 10

// StatusStyle returns the style used for a stage status label.
func StatusStyle(status stage.Status) lipgloss.Style {
	switch status {
	case stage.StatusCompleted:
		return completedStyle
	case stage.StatusNoOp:
		return noOpStyle
	case stage.StatusFailed:
		return failedStyle
	default:
		return skippedStyle
	}
}

// StatusLabel renders status in brackets with its colour.
func StatusLabel(status stage.Status) string {
	return StatusStyle(status).Render(fmt.Sprintf("[%s]", status))
}

// Stage renders one stage run: status line, counters, samples and failures.
func Stage(run pipeline.StageRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", StatusLabel(run.Status), headStyle.Render(run.Name))
	if d := run.Duration(); d > 0 {
		b.WriteString(detailStyle.Render(fmt.Sprintf(" (%s)", d.Round(time.Millisecond))))
	}
	if run.Message != "" {
		b.WriteString("\n  " + run.Message)
	}
	res := stage.Result{Counters: run.Counters}
	if summary := res.Summary(); summary != "" {
		b.WriteString("\n  " + detailStyle.Render(summary))
	}
	if len(run.Samples) > 0 {
		b.WriteString("\n  samples:")
		for _, s := range run.Samples {
			b.WriteString("\n    " + s)
		}
	}
	if n := len(run.Failures); n > 0 {
		fmt.Fprintf(&b, "\n  %s", failedStyle.Render(fmt.Sprintf("%d failures:", n)))
		for i, f := range run.Failures {
			if i == maxFailures {
				fmt.Fprintf(&b, "\n    ... %d more", n-maxFailures)
				break
			}
			b.WriteString("\n    " + f)
		}
	}
	return b.String()
}

// Run renders the full run report inside a bordered box.
func Run(r pipeline.RunReport) string {
	lines := []string{
		titleStyle.Render("⬡ COMBPREP") + " " + StatusLabel(r.Status),
		detailStyle.Render(fmt.Sprintf("run %s · %s", r.RunID, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))),
	}
	for _, run := range r.Stages {
		lines = append(lines, "", Stage(run))
	}
	if r.Error != "" {
		lines = append(lines, "", failedStyle.Render("error: ")+r.Error)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// Progress renders a one-line progress update for plain console output.
func Progress(ev pipeline.Event) string {
	prefix := detailStyle.Render(fmt.Sprintf("[%d/%d]", ev.Index+1, ev.Count))
	switch ev.Kind {
	case pipeline.EventStarted:
		return fmt.Sprintf("%s %s ...", prefix, headStyle.Render(ev.Name))
	case pipeline.EventProgress:
		if ev.Total <= 0 {
			return fmt.Sprintf("%s %s %d", prefix, ev.Name, ev.Done)
		}
		return fmt.Sprintf("%s %s %d/%d", prefix, ev.Name, ev.Done, ev.Total)
	case pipeline.EventFinished, pipeline.EventSkipped:
		return fmt.Sprintf("%s %s %s", prefix, ev.Name, StatusLabel(ev.Run.Status))
	default:
		return ""
	}
}
