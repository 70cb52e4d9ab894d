package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kingrea/combprep/internal/config"
	"github.com/kingrea/combprep/internal/records"
)

// Store resolves and inspects artifacts for one configuration.
type Store struct {
	cfg *config.Config
}

// NewStore builds a store for cfg.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Path resolves ref against the store's configuration.
func (s *Store) Path(ref ArtifactRef) string {
	return ref.Path(s.cfg)
}

// Check inspects the artifact on disk and returns its status.
func (s *Store) Check(ref ArtifactRef) (CheckResult, error) {
	path := s.Path(ref)
	if path == "" {
		err := fmt.Errorf("artifact: %s path could not be resolved", ref.ID)
		return CheckResult{Ref: ref, Path: path, State: StateError, Err: err}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CheckResult{Ref: ref, Path: path, State: StateMissing}, nil
		}
		return CheckResult{Ref: ref, Path: path, State: StateError, Err: err}, err
	}
	switch ref.Kind {
	case KindFile:
		if info.IsDir() {
			return invalidResult(ref, path, fmt.Errorf("artifact: expected file got directory"))
		}
		if info.Size() == 0 {
			return CheckResult{Ref: ref, Path: path, State: StateEmpty}, nil
		}
		return CheckResult{Ref: ref, Path: path, State: StateReady, Entries: 1}, nil
	case KindRecordDir:
		if !info.IsDir() {
			return invalidResult(ref, path, fmt.Errorf("artifact: expected directory"))
		}
		files, listErr := records.List(path)
		if listErr != nil {
			return CheckResult{Ref: ref, Path: path, State: StateError, Err: listErr}, listErr
		}
		if len(files) == 0 {
			return CheckResult{Ref: ref, Path: path, State: StateEmpty}, nil
		}
		return CheckResult{Ref: ref, Path: path, State: StateReady, Entries: len(files)}, nil
	default:
		return invalidResult(ref, path, fmt.Errorf("artifact: unknown kind %q", ref.Kind))
	}
}

// Require returns the artifact path when it exists, or an error naming the
// missing input.
func (s *Store) Require(ref ArtifactRef) (string, error) {
	res, err := s.Check(ref)
	if err != nil {
		return "", err
	}
	if res.State == StateMissing {
		return "", fmt.Errorf("artifact: %s %s does not exist", ref.Name, res.Path)
	}
	return res.Path, nil
}

// Prepare makes sure the artifact can be written: record directories are
// created, files get their parent directory.
func (s *Store) Prepare(ref ArtifactRef) (string, error) {
	path := s.Path(ref)
	if path == "" {
		return "", fmt.Errorf("artifact: %s path could not be resolved", ref.ID)
	}
	dir := path
	if ref.Kind == KindFile {
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("artifact: prepare %s: %w", ref.ID, err)
	}
	return path, nil
}

func invalidResult(ref ArtifactRef, path string, err error) (CheckResult, error) {
	return CheckResult{Ref: ref, Path: path, State: StateInvalid, Err: err}, err
}
