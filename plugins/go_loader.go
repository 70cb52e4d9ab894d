package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

const goAcceptFuncName = "Accept"

// LoadGoRule interprets a Go source file declaring
// `func Accept(word string) bool`. The rule ID is the file name stem.
func LoadGoRule(path string) (Rule, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return Rule{}, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return Rule{}, fmt.Errorf("plugin: %s is empty", path)
	}
	i := interp.New(interp.Options{})
	i.Use(stdlib.Symbols)
	if _, err := i.EvalPath(path); err != nil {
		return Rule{}, fmt.Errorf("plugin: interpret %s: %w", path, err)
	}
	value, err := i.Eval(goAcceptFuncName)
	if err != nil {
		return Rule{}, fmt.Errorf("plugin: %s must define %s(word string) bool: %w", path, goAcceptFuncName, err)
	}
	if !value.IsValid() || !value.CanInterface() {
		return Rule{}, fmt.Errorf("plugin: %s: %s is not usable", path, goAcceptFuncName)
	}
	accept, ok := value.Interface().(func(string) bool)
	if !ok {
		return Rule{}, fmt.Errorf("plugin: %s: %s has type %s, want func(string) bool", path, goAcceptFuncName, value.Type())
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Rule{ID: id, Source: filepath.Clean(path), accept: accept}, nil
}

// LoadGoDir interprets every .go rule in dir.
func LoadGoDir(dir string) ([]Rule, error) {
	names, err := listFiles(dir, func(name string) bool { return filepath.Ext(name) == ".go" })
	if err != nil {
		return nil, err
	}
	var rules []Rule
	for _, name := range names {
		rule, err := LoadGoRule(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
