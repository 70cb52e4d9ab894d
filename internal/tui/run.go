package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/combprep/internal/logbook"
	"github.com/kingrea/combprep/internal/pipeline"
)

// Run executes the pipeline behind the progress view and returns its report.
// Quitting the view cancels the run.
func Run(ctx context.Context, runner *pipeline.Runner, lb *logbook.Logbook, targets ...string) (pipeline.RunReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel("combprep", cancel))
	runner.Observe(func(ev pipeline.Event) { p.Send(eventMsg(ev)) })
	lb.SetSink(func(level logbook.Level, message string) {
		p.Send(logMsg(fmt.Sprintf("%-5s %s", level, message)))
	})
	defer lb.SetSink(nil)
	defer runner.Observe(nil)

	result := make(chan doneMsg, 1)
	go func() {
		report, err := runner.Run(ctx, targets...)
		msg := doneMsg{report: report, err: err}
		result <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-result
		return pipeline.RunReport{}, fmt.Errorf("tui: %w", err)
	}
	done := <-result
	return done.report, done.err
}
