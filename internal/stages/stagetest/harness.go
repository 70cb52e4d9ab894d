// Package stagetest builds throwaway project directories for stage tests.
package stagetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kingrea/combprep/internal/config"
	"github.com/kingrea/combprep/internal/dictionary"
	"github.com/kingrea/combprep/internal/logbook"
	"github.com/kingrea/combprep/internal/stage"
)

// NewContext returns a stage context rooted at a fresh temporary project.
func NewContext(t *testing.T) *stage.Context {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	projectDir := t.TempDir()
	if err := config.InitWorkspace(projectDir); err != nil {
		t.Fatalf("init workspace: %v", err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	return stage.NewContext(cfg, lb)
}

// WriteDictionary stores words at path.
func WriteDictionary(t *testing.T, path string, words []string) {
	t.Helper()
	if err := dictionary.Save(path, words); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
}

// WriteRaw stores raw bytes at dir/name.
func WriteRaw(t *testing.T, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Snapshot maps every file name in dir to its contents.
func Snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatal(err)
		}
		out[entry.Name()] = string(data)
	}
	return out
}
