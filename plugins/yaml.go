package plugins

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseRuleYAML decodes and validates a single rule definition payload.
func ParseRuleYAML(data []byte) (RuleDefinition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return RuleDefinition{}, fmt.Errorf("plugin: rule payload is empty")
	}
	var def RuleDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return RuleDefinition{}, fmt.Errorf("plugin: decode rule: %w", err)
	}
	def = def.Normalized()
	if err := def.Validate(); err != nil {
		return RuleDefinition{}, err
	}
	return def, nil
}

// LoadYAMLRule reads and compiles one YAML rule file.
func LoadYAMLRule(path string) (Rule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Rule{}, fmt.Errorf("plugin: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Rule{}, fmt.Errorf("plugin: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rule{}, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	def, err := ParseRuleYAML(data)
	if err != nil {
		return Rule{}, fmt.Errorf("plugin: %s: %w", path, err)
	}
	return def.Compile(filepath.Clean(path))
}

// LoadYAMLDir compiles every *.yaml / *.yml rule in dir. Missing directories
// mean "no rules".
func LoadYAMLDir(dir string) ([]Rule, error) {
	names, err := listFiles(dir, isYAMLFile)
	if err != nil {
		return nil, err
	}
	var rules []Rule
	for _, name := range names {
		rule, err := LoadYAMLRule(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func listFiles(dir string, keep func(string) bool) ([]string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: read %s: %w", trimmed, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
