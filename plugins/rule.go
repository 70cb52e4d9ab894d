// Package plugins loads user-defined word rules from the project workspace.
// Rules come either as YAML files listing regular expressions or as Go files
// interpreted at runtime that expose an Accept function.
package plugins

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// RuleDefinition is the YAML form of a word rule.
type RuleDefinition struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"`
	Require     []string `yaml:"require,omitempty"`
	MaxLength   int      `yaml:"max_length,omitempty"`
}

// Normalized returns a trimmed copy of the definition.
func (def RuleDefinition) Normalized() RuleDefinition {
	return RuleDefinition{
		ID:          strings.TrimSpace(def.ID),
		Description: strings.TrimSpace(def.Description),
		Exclude:     trimAll(def.Exclude),
		Require:     trimAll(def.Require),
		MaxLength:   def.MaxLength,
	}
}

// Validate ensures the definition can be compiled.
func (def RuleDefinition) Validate() error {
	if strings.TrimSpace(def.ID) == "" {
		return fmt.Errorf("plugin: rule id is required")
	}
	if def.MaxLength < 0 {
		return fmt.Errorf("plugin: rule %s: max_length must be >= 0", def.ID)
	}
	if len(trimAll(def.Exclude)) == 0 && len(trimAll(def.Require)) == 0 && def.MaxLength == 0 {
		return fmt.Errorf("plugin: rule %s has no exclude, require or max_length", def.ID)
	}
	return nil
}

// Compile turns the definition into a Rule.
func (def RuleDefinition) Compile(source string) (Rule, error) {
	exclude, err := compileAll(def.ID, def.Exclude)
	if err != nil {
		return Rule{}, err
	}
	require, err := compileAll(def.ID, def.Require)
	if err != nil {
		return Rule{}, err
	}
	maxLength := def.MaxLength
	accept := func(word string) bool {
		if maxLength > 0 && utf8.RuneCountInString(word) > maxLength {
			return false
		}
		for _, re := range exclude {
			if re.MatchString(word) {
				return false
			}
		}
		for _, re := range require {
			if !re.MatchString(word) {
				return false
			}
		}
		return true
	}
	return Rule{ID: def.ID, Source: source, accept: accept}, nil
}

// Rule decides whether a dictionary word stays.
type Rule struct {
	ID     string
	Source string
	accept func(string) bool
}

// Accept reports whether word passes the rule.
func (r Rule) Accept(word string) bool {
	if r.accept == nil {
		return true
	}
	return r.accept(word)
}

// Apply keeps the words every rule accepts, in order. The returned map counts
// rejections per rule; a word is charged to the first rule rejecting it.
func Apply(words []string, rules []Rule) ([]string, map[string]int) {
	rejected := map[string]int{}
	if len(rules) == 0 {
		return words, rejected
	}
	kept := make([]string, 0, len(words))
	for _, word := range words {
		ok := true
		for _, rule := range rules {
			if !rule.Accept(word) {
				rejected[rule.ID]++
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, word)
		}
	}
	return kept, rejected
}

func compileAll(id string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range trimAll(patterns) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("plugin: rule %s: %w", id, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
