package plugins

import (
	"reflect"
	"testing"
)

func TestParseRuleYAML(t *testing.T) {
	def, err := ParseRuleYAML([]byte("id: no-caps\nexclude:\n  - '^[A-ZÄÖÜ]'\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.ID != "no-caps" || len(def.Exclude) != 1 {
		t.Fatalf("unexpected definition: %+v", def)
	}
}

func TestParseRuleYAMLErrors(t *testing.T) {
	for name, payload := range map[string]string{
		"empty":     "",
		"no id":     "exclude: ['x']\n",
		"no checks": "id: nothing\n",
		"negative":  "id: neg\nmax_length: -1\n",
	} {
		if _, err := ParseRuleYAML([]byte(payload)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestCompileRejectsBadPattern(t *testing.T) {
	def := RuleDefinition{ID: "bad", Exclude: []string{"("}}
	if _, err := def.Compile("inline"); err == nil {
		t.Fatalf("expected regexp error")
	}
}

func TestApplyChargesFirstRejectingRule(t *testing.T) {
	noCaps, err := RuleDefinition{ID: "no-caps", Exclude: []string{"^[A-ZÄÖÜ]"}}.Compile("inline")
	if err != nil {
		t.Fatal(err)
	}
	short, err := RuleDefinition{ID: "short", MaxLength: 6}.Compile("inline")
	if err != nil {
		t.Fatal(err)
	}
	hyphen, err := RuleDefinition{ID: "letters-only", Require: []string{`^\p{L}+$`}}.Compile("inline")
	if err != nil {
		t.Fatal(err)
	}
	kept, rejected := Apply([]string{"Haus", "kuchen", "fadeback", "ab-cd", "Bärchenhaus"}, []Rule{noCaps, short, hyphen})
	if !reflect.DeepEqual(kept, []string{"kuchen"}) {
		t.Fatalf("kept = %v", kept)
	}
	want := map[string]int{"no-caps": 2, "short": 1, "letters-only": 1}
	if !reflect.DeepEqual(rejected, want) {
		t.Fatalf("rejected = %v", rejected)
	}
}

func TestApplyWithoutRulesKeepsEverything(t *testing.T) {
	words := []string{"a", "b"}
	kept, rejected := Apply(words, nil)
	if !reflect.DeepEqual(kept, words) || len(rejected) != 0 {
		t.Fatalf("unexpected result %v %v", kept, rejected)
	}
}
