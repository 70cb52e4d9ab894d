// Package artifact defines the filesystem-level contracts (inputs/outputs)
// that stages exchange. Each artifact has a stable identifier, a kind, and a
// resolver that maps it to the configured path.

package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/kingrea/combprep/internal/config"
)

// Kind captures the storage shape of an artifact.
type Kind string

const (
	// KindFile is a single file (a JSON word list or a database).
	KindFile Kind = "file"
	// KindRecordDir is a directory of JSON record files.
	KindRecordDir Kind = "record-dir"
)

// PathResolver returns the fully-qualified path to an artifact.
type PathResolver func(*config.Config) string

// ArtifactRef declares a stable identifier and metadata for an artifact.
type ArtifactRef struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	path        PathResolver
}

// Path resolves the artifact path for cfg.
func (r ArtifactRef) Path(cfg *config.Config) string {
	if cfg == nil || r.path == nil {
		return ""
	}
	p := r.path(cfg)
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// Validate ensures the reference is well-formed.
func (r ArtifactRef) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("artifact: id is required")
	}
	if r.path == nil {
		return fmt.Errorf("artifact: %s path resolver is required", r.ID)
	}
	switch r.Kind {
	case KindFile, KindRecordDir:
		return nil
	default:
		return fmt.Errorf("artifact: %s has unknown kind %q", r.ID, r.Kind)
	}
}

// State describes what Check found on disk.
type State string

const (
	StateReady   State = "ready"
	StateMissing State = "missing"
	StateEmpty   State = "empty"
	StateInvalid State = "invalid"
	StateError   State = "error"
)

// CheckResult captures the on-disk status of an artifact.
type CheckResult struct {
	Ref     ArtifactRef
	Path    string
	State   State
	Entries int
	Err     error
}

// Ready reports whether the artifact exists and holds content.
func (r CheckResult) Ready() bool {
	return r.State == StateReady
}

var (
	// RawDictionary is the unfiltered source word list.
	RawDictionary = ArtifactRef{
		ID:   "raw-dictionary",
		Name: "Source dictionary",
		Kind: KindFile,
		path: func(c *config.Config) string { return c.DictionarySourcePath() },
	}
	// Dictionary is the word list pangrams are extracted from.
	Dictionary = ArtifactRef{
		ID:   "dictionary",
		Name: "Filtered dictionary",
		Kind: KindFile,
		path: func(c *config.Config) string { return c.DictionaryPath() },
	}
	// PangramRecords holds one record per pangram word.
	PangramRecords = ArtifactRef{
		ID:   "pangram-records",
		Name: "Pangram records",
		Kind: KindRecordDir,
		path: func(c *config.Config) string { return c.PangramsDir() },
	}
	// CombinedRecords holds one record per letter set.
	CombinedRecords = ArtifactRef{
		ID:   "combined-records",
		Name: "Combined records",
		Kind: KindRecordDir,
		path: func(c *config.Config) string { return c.CombinedDir() },
	}
	// PlayRecords holds one record per letter set and key letter.
	PlayRecords = ArtifactRef{
		ID:   "play-records",
		Name: "Play records",
		Kind: KindRecordDir,
		path: func(c *config.Config) string { return c.PlayDataDir() },
	}
	// Catalog is the SQLite puzzle catalog.
	Catalog = ArtifactRef{
		ID:   "catalog",
		Name: "Puzzle catalog",
		Kind: KindFile,
		path: func(c *config.Config) string { return c.CatalogPath() },
	}
)
