package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kingrea/combprep/internal/stage"
)

// ErrRunNotFound is returned when no report exists for a run ID.
var ErrRunNotFound = errors.New("pipeline: run not found")

// StatusSkipped marks a planned stage that did not execute.
const StatusSkipped stage.Status = "skipped"

// StageRun is the persisted outcome of one stage within a run.
type StageRun struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Status     stage.Status   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Counters   map[string]int `json:"counters,omitempty"`
	Failures   []string       `json:"failures,omitempty"`
	Samples    []string       `json:"samples,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Duration is the wall time the stage took.
func (r StageRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunReport is written to the workspace after every pipeline run.
type RunReport struct {
	RunID      string       `json:"run_id"`
	Pipeline   string       `json:"pipeline"`
	ProjectDir string       `json:"project_dir"`
	Targets    []string     `json:"targets,omitempty"`
	Status     stage.Status `json:"status"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Stages     []StageRun   `json:"stages"`
}

// Stage returns the recorded run of stage id.
func (r RunReport) Stage(id string) (StageRun, bool) {
	for _, run := range r.Stages {
		if run.ID == id {
			return run, true
		}
	}
	return StageRun{}, false
}

// Repository stores run reports as JSON files in one directory.
type Repository struct {
	dir string
}

// NewRepository creates a repository rooted at dir.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

func (r *Repository) path(runID string) string {
	return filepath.Join(r.dir, runID+".json")
}

// Save writes the report, replacing any earlier copy of the same run.
func (r *Repository) Save(report RunReport) (string, error) {
	if report.RunID == "" {
		return "", fmt.Errorf("pipeline: run id is required")
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", err
	}
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	path := r.path(report.RunID)
	return path, os.WriteFile(path, append(encoded, '\n'), 0o644)
}

// Load reads the report for runID.
func (r *Repository) Load(runID string) (RunReport, error) {
	data, err := os.ReadFile(r.path(runID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RunReport{}, ErrRunNotFound
		}
		return RunReport{}, err
	}
	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return RunReport{}, fmt.Errorf("pipeline: parse run %s: %w", runID, err)
	}
	return report, nil
}

// Latest returns the most recently started run.
func (r *Repository) Latest() (RunReport, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RunReport{}, ErrRunNotFound
		}
		return RunReport{}, err
	}
	var reports []RunReport
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		report, err := r.Load(entry.Name()[:len(entry.Name())-len(".json")])
		if err != nil {
			return RunReport{}, err
		}
		reports = append(reports, report)
	}
	if len(reports) == 0 {
		return RunReport{}, ErrRunNotFound
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].StartedAt.After(reports[j].StartedAt) })
	return reports[0], nil
}
