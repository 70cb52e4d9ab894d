package plugins

import "fmt"

// LoadRules discovers YAML and Go rules in dir, YAML first, each group in file
// name order. Rule IDs must be unique.
func LoadRules(dir string) ([]Rule, error) {
	yamlRules, err := LoadYAMLDir(dir)
	if err != nil {
		return nil, err
	}
	goRules, err := LoadGoDir(dir)
	if err != nil {
		return nil, err
	}
	rules := append(yamlRules, goRules...)
	seen := make(map[string]string, len(rules))
	for _, rule := range rules {
		if existing, ok := seen[rule.ID]; ok {
			return nil, fmt.Errorf("plugin: duplicate rule id %s (%s and %s)", rule.ID, existing, rule.Source)
		}
		seen[rule.ID] = rule.Source
	}
	return rules, nil
}
