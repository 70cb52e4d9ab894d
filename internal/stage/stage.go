// Package stage defines the contract every pipeline stage implements plus the
// registry the CLI and pipeline resolve stages from.
package stage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kingrea/combprep/internal/artifact"
)

// Info describes a stage's identity and intent.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("stage: id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("stage: name is required for %s", i.ID)
	}
	if i.Version == "" {
		return fmt.Errorf("stage: version is required for %s", i.ID)
	}
	return nil
}

// Status enumerates stage run outcomes.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusNoOp      Status = "no-op"
	StatusFailed    Status = "failed"
)

// Result captures the outcome of a stage execution.
type Result struct {
	Status   Status
	Message  string
	Counters map[string]int
	// Failures lists per-item problems the stage tolerated.
	Failures []string
	// Samples holds a few human-readable example lines for the report.
	Samples []string
}

// Count sets a named counter.
func (r *Result) Count(name string, n int) {
	if r.Counters == nil {
		r.Counters = map[string]int{}
	}
	r.Counters[name] = n
}

// CounterNames returns the counter names in a stable order.
func (r Result) CounterNames() []string {
	names := make([]string, 0, len(r.Counters))
	for name := range r.Counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary renders the counters as "name=value" pairs.
func (r Result) Summary() string {
	parts := make([]string, 0, len(r.Counters))
	for _, name := range r.CounterNames() {
		parts = append(parts, fmt.Sprintf("%s=%d", name, r.Counters[name]))
	}
	return strings.Join(parts, " ")
}

// Stage is implemented by every pipeline step.
type Stage interface {
	Info() Info
	Inputs() []artifact.ArtifactRef
	Outputs() []artifact.ArtifactRef
	IsComplete(ctx *Context) (bool, error)
	Run(ctx *Context) (Result, error)
}
