package pipeline

import (
	"fmt"

	"github.com/kingrea/combprep/internal/stage"
)

// StageRef declares one stage of a pipeline definition.
type StageRef struct {
	ID        string
	DependsOn []string
	// Optional stages are skipped during full runs when the project config
	// disables them.
	Optional bool
	Options  stage.Options
}

// Definition is an ordered set of stages with their dependencies.
type Definition struct {
	ID     string
	Name   string
	Stages []StageRef
}

// DefaultDefinition returns the puzzle preparation pipeline.
func DefaultDefinition() Definition {
	return Definition{
		ID:   "combprep",
		Name: "Puzzle preparation",
		Stages: []StageRef{
			{ID: "filter", Optional: true},
			{ID: "extract", DependsOn: []string{"filter"}},
			{ID: "combine", DependsOn: []string{"extract"}},
			{ID: "playdata", DependsOn: []string{"combine"}},
			{ID: "catalog", DependsOn: []string{"playdata"}, Optional: true},
		},
	}
}

// Validate ensures stage IDs are unique, dependencies are declared and the
// graph has no cycles.
func (def Definition) Validate() error {
	if def.ID == "" {
		return fmt.Errorf("pipeline: id is required")
	}
	if len(def.Stages) == 0 {
		return fmt.Errorf("pipeline %s: at least one stage is required", def.ID)
	}
	seen := make(map[string]struct{}, len(def.Stages))
	for idx, ref := range def.Stages {
		if ref.ID == "" {
			return fmt.Errorf("pipeline %s stage[%d]: id is required", def.ID, idx)
		}
		if _, dup := seen[ref.ID]; dup {
			return fmt.Errorf("pipeline %s: duplicate stage %s", def.ID, ref.ID)
		}
		seen[ref.ID] = struct{}{}
	}
	for _, ref := range def.Stages {
		for _, dep := range ref.DependsOn {
			if _, ok := seen[dep]; !ok {
				return fmt.Errorf("pipeline %s: %s depends on unknown stage %s", def.ID, ref.ID, dep)
			}
		}
	}
	_, err := def.Order()
	return err
}

// Ref returns the declaration of stage id.
func (def Definition) Ref(id string) (StageRef, bool) {
	for _, ref := range def.Stages {
		if ref.ID == id {
			return ref, true
		}
	}
	return StageRef{}, false
}

// Order returns every stage with dependencies first. Ties keep declaration
// order.
func (def Definition) Order() ([]StageRef, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(def.Stages))
	out := make([]StageRef, 0, len(def.Stages))
	var visit func(StageRef) error
	visit = func(ref StageRef) error {
		switch state[ref.ID] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("pipeline %s: dependency cycle through %s", def.ID, ref.ID)
		}
		state[ref.ID] = visiting
		for _, dep := range ref.DependsOn {
			depRef, ok := def.Ref(dep)
			if !ok {
				return fmt.Errorf("pipeline %s: %s depends on unknown stage %s", def.ID, ref.ID, dep)
			}
			if err := visit(depRef); err != nil {
				return err
			}
		}
		state[ref.ID] = done
		out = append(out, ref)
		return nil
	}
	for _, ref := range def.Stages {
		if err := visit(ref); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Plan returns the stages to run. Without targets that is the whole pipeline;
// with targets only the named stages run, still in dependency order.
func (def Definition) Plan(targets ...string) ([]StageRef, error) {
	ordered, err := def.Order()
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return ordered, nil
	}
	wanted := make(map[string]struct{}, len(targets))
	for _, id := range targets {
		if _, ok := def.Ref(id); !ok {
			return nil, fmt.Errorf("pipeline %s: unknown stage %s", def.ID, id)
		}
		wanted[id] = struct{}{}
	}
	out := make([]StageRef, 0, len(wanted))
	for _, ref := range ordered {
		if _, ok := wanted[ref.ID]; ok {
			out = append(out, ref)
		}
	}
	return out, nil
}
