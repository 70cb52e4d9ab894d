// internal/config/config.go
//
// This package handles configuration and the .combprep workspace directory.
// Every project that runs combprep gets a .combprep/ folder in its root that
// holds the config file, the run log and the per-run reports.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// WorkspaceDir is the name of the directory created in each project
	WorkspaceDir = ".combprep"

	// EnvConfigPath points at an alternative config file.
	EnvConfigPath = "COMBPREP_CONFIG"
)

const defaultProjectConfigYAML = `# combprep project configuration
version: 1

# Relative paths resolve against the project directory.
paths:
  dictionary_source: German-words-1600000-words-multilines.json
  dictionary: German-words-7-diff-letters.json
  pangrams: game_data
  combined: combined_games
  play_data: final_play_data
  catalog: puzzles.db

rules:
  pangram_letters: 7
  max_unique_letters: 7
  min_word_length: 4

# Optional stages around the extract -> combine -> playdata core.
stages:
  filter: true
  catalog: false
`

// PathsConfig locates every input and output of the pipeline.
type PathsConfig struct {
	DictionarySource string `yaml:"dictionary_source"`
	Dictionary       string `yaml:"dictionary"`
	Pangrams         string `yaml:"pangrams"`
	Combined         string `yaml:"combined"`
	PlayData         string `yaml:"play_data"`
	Catalog          string `yaml:"catalog"`
}

// RulesConfig holds the letter-count rules.
type RulesConfig struct {
	PangramLetters   int `yaml:"pangram_letters"`
	MaxUniqueLetters int `yaml:"max_unique_letters"`
	MinWordLength    int `yaml:"min_word_length"`
}

// StagesConfig toggles the optional stages.
type StagesConfig struct {
	Filter  bool `yaml:"filter"`
	Catalog bool `yaml:"catalog"`
}

// ProjectConfig models .combprep/config.yaml.
type ProjectConfig struct {
	Version int          `yaml:"version"`
	Paths   PathsConfig  `yaml:"paths"`
	Rules   RulesConfig  `yaml:"rules"`
	Stages  StagesConfig `yaml:"stages"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the pipeline runs against
	ProjectDir string

	// WorkspaceDir is ProjectDir/.combprep
	WorkspaceDir string

	// ConfigPath is the file the project config was read from
	ConfigPath string

	Project ProjectConfig
}

// InitWorkspace creates the .combprep directory structure in projectDir.
//
// Structure created:
// .combprep/
// ├── config.yaml
// ├── logs/   <- run log
// ├── rules/  <- optional word rules (*.yaml, *.go) used by the filter stage
// └── runs/   <- one JSON report per pipeline run
func InitWorkspace(projectDir string) error {
	workspace := filepath.Join(projectDir, WorkspaceDir)
	for _, dir := range []string{
		filepath.Join(workspace, "logs"),
		filepath.Join(workspace, "rules"),
		filepath.Join(workspace, "runs"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(workspace, "config.yaml"))
}

// NewConfig loads the project configuration. A missing config file yields the
// defaults. COMBPREP_CONFIG overrides the config file location.
func NewConfig(projectDir string) (*Config, error) {
	workspace := filepath.Join(projectDir, WorkspaceDir)
	cfg := &Config{
		ProjectDir:   projectDir,
		WorkspaceDir: workspace,
		ConfigPath:   filepath.Join(workspace, "config.yaml"),
		Project:      defaultProjectConfig(),
	}
	if override := strings.TrimSpace(os.Getenv(EnvConfigPath)); override != "" {
		cfg.ConfigPath = resolvePath(projectDir, override)
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RulesDir returns the directory holding user word rules.
func (c *Config) RulesDir() string {
	return filepath.Join(c.WorkspaceDir, "rules")
}

// LogsDir returns the directory holding the run log.
func (c *Config) LogsDir() string {
	return filepath.Join(c.WorkspaceDir, "logs")
}

// LogPath returns the run log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "combprep.log")
}

// RunsDir returns the directory holding per-run reports.
func (c *Config) RunsDir() string {
	return filepath.Join(c.WorkspaceDir, "runs")
}

// DictionarySourcePath is the raw, unfiltered word list.
func (c *Config) DictionarySourcePath() string { return c.Project.Paths.DictionarySource }

// DictionaryPath is the word list the extract stage reads.
func (c *Config) DictionaryPath() string { return c.Project.Paths.Dictionary }

// PangramsDir holds one record per pangram word.
func (c *Config) PangramsDir() string { return c.Project.Paths.Pangrams }

// CombinedDir holds one record per letter set.
func (c *Config) CombinedDir() string { return c.Project.Paths.Combined }

// PlayDataDir holds one record per letter set and key letter.
func (c *Config) PlayDataDir() string { return c.Project.Paths.PlayData }

// CatalogPath is the SQLite puzzle catalog.
func (c *Config) CatalogPath() string { return c.Project.Paths.Catalog }

// Rules returns the letter-count rules.
func (c *Config) Rules() RulesConfig { return c.Project.Rules }

// StageEnabled reports whether an optional stage should run as part of the
// full pipeline. Core stages are always enabled.
func (c *Config) StageEnabled(id string) bool {
	switch id {
	case "filter":
		return c.Project.Stages.Filter
	case "catalog":
		return c.Project.Stages.Catalog
	default:
		return true
	}
}

// Set applies a single dotted key override such as "paths.dictionary" or
// "rules.min_word_length", then re-validates the configuration.
func (c *Config) Set(key, value string) error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	pc := &c.Project
	switch key {
	case "paths.dictionary_source":
		pc.Paths.DictionarySource = value
	case "paths.dictionary":
		pc.Paths.Dictionary = value
	case "paths.pangrams":
		pc.Paths.Pangrams = value
	case "paths.combined":
		pc.Paths.Combined = value
	case "paths.play_data":
		pc.Paths.PlayData = value
	case "paths.catalog":
		pc.Paths.Catalog = value
	case "rules.pangram_letters":
		return c.setInt(&pc.Rules.PangramLetters, key, value)
	case "rules.max_unique_letters":
		return c.setInt(&pc.Rules.MaxUniqueLetters, key, value)
	case "rules.min_word_length":
		return c.setInt(&pc.Rules.MinWordLength, key, value)
	case "stages.filter":
		return c.setBool(&pc.Stages.Filter, key, value)
	case "stages.catalog":
		return c.setBool(&pc.Stages.Catalog, key, value)
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return c.refresh()
}

func (c *Config) setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return c.refresh()
}

func (c *Config) setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = b
	return c.refresh()
}

func (c *Config) refresh() error {
	c.Project.applyDefaults()
	c.Project.normalize(c.ProjectDir)
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) loadProjectConfig() error {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.refresh()
		}
		return fmt.Errorf("config: read %s: %w", c.ConfigPath, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.ConfigPath, err)
	}
	c.Project = parsed
	return c.refresh()
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Paths: PathsConfig{
			DictionarySource: "German-words-1600000-words-multilines.json",
			Dictionary:       "German-words-7-diff-letters.json",
			Pangrams:         "game_data",
			Combined:         "combined_games",
			PlayData:         "final_play_data",
			Catalog:          "puzzles.db",
		},
		Rules: RulesConfig{
			PangramLetters:   7,
			MaxUniqueLetters: 7,
			MinWordLength:    4,
		},
		Stages: StagesConfig{Filter: true},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	defaults := defaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = defaults.Version
	}
	if pc.Rules.PangramLetters == 0 {
		pc.Rules.PangramLetters = defaults.Rules.PangramLetters
	}
	if pc.Rules.MaxUniqueLetters == 0 {
		pc.Rules.MaxUniqueLetters = pc.Rules.PangramLetters
	}
}

func (pc *ProjectConfig) normalize(base string) {
	p := &pc.Paths
	for _, field := range []*string{&p.DictionarySource, &p.Dictionary, &p.Pangrams, &p.Combined, &p.PlayData, &p.Catalog} {
		*field = resolvePath(base, *field)
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	required := map[string]string{
		"paths.dictionary": pc.Paths.Dictionary,
		"paths.pangrams":   pc.Paths.Pangrams,
		"paths.combined":   pc.Paths.Combined,
		"paths.play_data":  pc.Paths.PlayData,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	if pc.Stages.Filter && pc.Paths.DictionarySource == "" {
		return fmt.Errorf("paths.dictionary_source is required when stages.filter is enabled")
	}
	if pc.Stages.Catalog && pc.Paths.Catalog == "" {
		return fmt.Errorf("paths.catalog is required when stages.catalog is enabled")
	}
	if pc.Rules.PangramLetters < 1 {
		return fmt.Errorf("rules.pangram_letters must be >= 1")
	}
	if pc.Rules.MaxUniqueLetters < pc.Rules.PangramLetters {
		return fmt.Errorf("rules.max_unique_letters must be >= rules.pangram_letters")
	}
	if pc.Rules.MinWordLength < 0 {
		return fmt.Errorf("rules.min_word_length must be >= 0")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
