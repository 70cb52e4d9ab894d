package pipeline

import (
	"strings"
	"testing"
)

func ids(refs []StageRef) string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.ID)
	}
	return strings.Join(out, ",")
}

func TestDefaultDefinitionOrder(t *testing.T) {
	def := DefaultDefinition()
	if err := def.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	order, err := def.Order()
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if got := ids(order); got != "filter,extract,combine,playdata,catalog" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestOrderPutsDependenciesFirst(t *testing.T) {
	def := Definition{ID: "t", Stages: []StageRef{
		{ID: "c", DependsOn: []string{"b"}},
		{ID: "a"},
		{ID: "b", DependsOn: []string{"a"}},
	}}
	order, err := def.Order()
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if got := ids(order); got != "a,b,c" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestValidateRejectsBrokenGraphs(t *testing.T) {
	cases := map[string]Definition{
		"cycle": {ID: "t", Stages: []StageRef{
			{ID: "a", DependsOn: []string{"b"}},
			{ID: "b", DependsOn: []string{"a"}},
		}},
		"unknown": {ID: "t", Stages: []StageRef{{ID: "a", DependsOn: []string{"z"}}}},
		"dup":     {ID: "t", Stages: []StageRef{{ID: "a"}, {ID: "a"}}},
		"empty":   {ID: "t"},
	}
	for name, def := range cases {
		if err := def.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestPlanKeepsOnlyTargets(t *testing.T) {
	def := DefaultDefinition()
	plan, err := def.Plan("playdata", "extract")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if got := ids(plan); got != "extract,playdata" {
		t.Fatalf("unexpected plan %s", got)
	}
	if _, err := def.Plan("nope"); err == nil {
		t.Fatalf("expected unknown stage error")
	}
}
