package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/combprep/internal/pipeline"
	"github.com/kingrea/combprep/internal/stage"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func TestEventsDriveStageList(t *testing.T) {
	m := NewModel("combprep", nil)
	m, _ = update(t, m, eventMsg(pipeline.Event{Kind: pipeline.EventSkipped, Name: "Dictionary Filter", Index: 0, Count: 3,
		Run: pipeline.StageRun{Status: pipeline.StatusSkipped, Message: "disabled in config"}}))
	m, _ = update(t, m, eventMsg(pipeline.Event{Kind: pipeline.EventStarted, Name: "Pangram Extractor", Index: 1, Count: 3}))
	m, _ = update(t, m, eventMsg(pipeline.Event{Kind: pipeline.EventProgress, Name: "Pangram Extractor", Index: 1, Count: 3, Done: 250, Total: 1000}))

	if len(m.stages) != 3 {
		t.Fatalf("expected 3 stage rows, got %d", len(m.stages))
	}
	if got := m.Percent(); got != 0.25 {
		t.Fatalf("percent = %v", got)
	}
	view := m.View()
	for _, want := range []string{"COMBPREP", "[skipped]", "Dictionary Filter", "Pangram Extractor", "250/1000"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = update(t, m, eventMsg(pipeline.Event{Kind: pipeline.EventFinished, Name: "Pangram Extractor", Index: 1, Count: 3,
		Run: pipeline.StageRun{Status: stage.StatusCompleted, Message: "created 3 game data files"}}))
	if m.current != -1 {
		t.Fatalf("expected no running stage, got %d", m.current)
	}
	if view := m.View(); !strings.Contains(view, "[completed]") || strings.Contains(view, "250/1000") {
		t.Fatalf("unexpected view after finish:\n%s", view)
	}
}

func TestLogTailIsBounded(t *testing.T) {
	m := NewModel("combprep", nil)
	for i := 0; i < logLines+4; i++ {
		m, _ = update(t, m, logMsg(strings.Repeat("x", i+1)))
	}
	if len(m.logs) != logLines {
		t.Fatalf("expected %d log lines, got %d", logLines, len(m.logs))
	}
	if m.logs[0] != strings.Repeat("x", 5) {
		t.Fatalf("oldest lines should be dropped, got %q", m.logs[0])
	}
}

func TestDoneQuitsWithReport(t *testing.T) {
	m := NewModel("combprep", nil)
	want := errors.New("boom")
	m, cmd := update(t, m, doneMsg{report: pipeline.RunReport{RunID: "r1"}, err: want})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	got, err := m.Report()
	if got.RunID != "r1" || !errors.Is(err, want) {
		t.Fatalf("unexpected report %+v err %v", got, err)
	}
}

func TestQuitCancelsUnfinishedRun(t *testing.T) {
	cancelled := false
	m := NewModel("combprep", func() { cancelled = true })
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !cancelled || !m.aborted || cmd == nil {
		t.Fatalf("expected cancel and quit, cancelled=%v aborted=%v", cancelled, m.aborted)
	}
}
