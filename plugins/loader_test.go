package plugins

import (
	"os"
	"path/filepath"
	"testing"
)

const goRuleSource = `package main

import "strings"

func Accept(word string) bool {
	return !strings.Contains(word, "q")
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadGoRule(t *testing.T) {
	path := writeFile(t, t.TempDir(), "no-q.go", goRuleSource)
	rule, err := LoadGoRule(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rule.ID != "no-q" {
		t.Fatalf("unexpected id %q", rule.ID)
	}
	if rule.Accept("quark") || !rule.Accept("haus") {
		t.Fatalf("rule did not evaluate Accept")
	}
}

func TestLoadGoRuleMissingFunc(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.go", "package main\n")
	if _, err := LoadGoRule(path); err == nil {
		t.Fatalf("expected error for missing Accept function")
	}
}

func TestLoadGoRuleWrongSignature(t *testing.T) {
	path := writeFile(t, t.TempDir(), "wrong.go", "package main\n\nfunc Accept(n int) int { return n }\n")
	if _, err := LoadGoRule(path); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestLoadRulesCombinesYAMLAndGo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "id: no-caps\nexclude: ['^[A-Z]']\n")
	writeFile(t, dir, "a.yml", "id: short\nmax_length: 8\n")
	writeFile(t, dir, "no-q.go", goRuleSource)
	writeFile(t, dir, "README.md", "ignored")

	rules, err := LoadRules(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var ids []string
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	if len(ids) != 3 || ids[0] != "short" || ids[1] != "no-caps" || ids[2] != "no-q" {
		t.Fatalf("unexpected rule order %v", ids)
	}
}

func TestLoadRulesRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "id: no-q\nmax_length: 8\n")
	writeFile(t, dir, "no-q.go", goRuleSource)
	if _, err := LoadRules(dir); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadRulesMissingDir(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "missing"))
	if err != nil || len(rules) != 0 {
		t.Fatalf("missing dir should yield no rules: %v %v", rules, err)
	}
}
