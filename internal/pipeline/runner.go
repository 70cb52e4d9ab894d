// Package pipeline orders registered stages by their dependencies, runs them
// one after another and records every run in the workspace.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/combprep/internal/config"
	"github.com/kingrea/combprep/internal/logbook"
	"github.com/kingrea/combprep/internal/stage"
)

// EventKind classifies runner notifications.
type EventKind string

const (
	EventStarted  EventKind = "started"
	EventProgress EventKind = "progress"
	EventFinished EventKind = "finished"
	EventSkipped  EventKind = "skipped"
)

// Event is emitted to the observer while a run progresses.
type Event struct {
	Kind  EventKind
	Stage string
	Name  string
	Index int
	Count int
	Done  int
	Total int
	Run   StageRun
	Err   error
}

// Observer receives events synchronously on the runner goroutine.
type Observer func(Event)

// Runner executes a pipeline definition against one project.
type Runner struct {
	def      Definition
	registry *stage.Registry
	cfg      *config.Config
	lb       *logbook.Logbook
	repo     *Repository
	observer Observer
	now      func() time.Time

	// SkipComplete skips stages whose outputs are already present.
	SkipComplete bool
}

// NewRunner validates def and binds it to a project.
func NewRunner(def Definition, registry *stage.Registry, cfg *config.Config, lb *logbook.Logbook) (*Runner, error) {
	if registry == nil {
		return nil, fmt.Errorf("pipeline: stage registry is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: config is required")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		def:      def,
		registry: registry,
		cfg:      cfg,
		lb:       lb,
		repo:     NewRepository(cfg.RunsDir()),
		now:      time.Now,
	}, nil
}

// Observe registers fn for run events.
func (r *Runner) Observe(fn Observer) {
	r.observer = fn
}

// Repository exposes the run report store.
func (r *Runner) Repository() *Repository {
	return r.repo
}

func (r *Runner) emit(ev Event) {
	if r.observer != nil {
		r.observer(ev)
	}
}

// Run executes targets, or the whole pipeline when none are given. The first
// stage error stops the run. The report is saved in every case.
func (r *Runner) Run(ctx context.Context, targets ...string) (RunReport, error) {
	report := RunReport{
		RunID:      uuid.NewString(),
		Pipeline:   r.def.ID,
		ProjectDir: r.cfg.ProjectDir,
		Targets:    append([]string(nil), targets...),
		StartedAt:  r.now(),
		Stages:     []StageRun{},
	}
	runErr := r.run(ctx, &report, targets)
	report.FinishedAt = r.now()
	report.Status = stage.StatusCompleted
	if runErr != nil {
		report.Status = stage.StatusFailed
		report.Error = runErr.Error()
	}
	if _, err := r.repo.Save(report); err != nil {
		r.lb.Error("pipeline: save run report %s: %v", report.RunID, err)
		if runErr == nil {
			runErr = fmt.Errorf("pipeline: save run report: %w", err)
		}
	}
	return report, runErr
}

func (r *Runner) run(ctx context.Context, report *RunReport, targets []string) error {
	plan, err := r.def.Plan(targets...)
	if err != nil {
		return err
	}
	full := len(targets) == 0
	r.lb.Info("pipeline: run %s started (%d stages)", report.RunID, len(plan))
	base := stage.NewContext(r.cfg, r.lb).WithParent(ctx)

	for idx, ref := range plan {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		st, err := r.registry.Resolve(ref.ID, ref.Options)
		if err != nil {
			return err
		}
		info := st.Info()
		ev := Event{Stage: ref.ID, Name: info.Name, Index: idx, Count: len(plan)}

		if reason := r.skipReason(base, ref, st, full); reason != "" {
			run := StageRun{ID: ref.ID, Name: info.Name, Status: StatusSkipped, Message: reason,
				StartedAt: r.now()}
			run.FinishedAt = run.StartedAt
			report.Stages = append(report.Stages, run)
			r.lb.Info("pipeline: %s skipped (%s)", ref.ID, reason)
			ev.Kind, ev.Run = EventSkipped, run
			r.emit(ev)
			continue
		}

		ev.Kind = EventStarted
		r.emit(ev)
		r.lb.Info("pipeline: %s started", ref.ID)
		sctx := base.WithProgress(func(done, total int) {
			progress := ev
			progress.Kind, progress.Done, progress.Total = EventProgress, done, total
			r.emit(progress)
		})

		run := StageRun{ID: ref.ID, Name: info.Name, StartedAt: r.now()}
		res, runErr := st.Run(sctx)
		run.FinishedAt = r.now()
		run.Status = res.Status
		run.Message = res.Message
		run.Counters = res.Counters
		run.Failures = res.Failures
		run.Samples = res.Samples
		if runErr != nil {
			run.Status = stage.StatusFailed
			if run.Message == "" {
				run.Message = runErr.Error()
			}
		}
		report.Stages = append(report.Stages, run)
		ev.Kind, ev.Run, ev.Err = EventFinished, run, runErr
		r.emit(ev)
		if runErr != nil {
			r.lb.Error("pipeline: %s failed: %v", ref.ID, runErr)
			return runErr
		}
		r.lb.Info("pipeline: %s %s in %s", ref.ID, run.Status, run.Duration().Round(time.Millisecond))
	}
	return nil
}

func (r *Runner) skipReason(ctx *stage.Context, ref StageRef, st stage.Stage, full bool) string {
	if full && ref.Optional && !r.cfg.StageEnabled(ref.ID) {
		return "disabled in config"
	}
	if !r.SkipComplete {
		return ""
	}
	complete, err := st.IsComplete(ctx)
	if err != nil {
		r.lb.Warn("pipeline: completion check for %s: %v", ref.ID, err)
		return ""
	}
	if complete {
		return "outputs already present"
	}
	return ""
}
