package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kingrea/combprep/internal/config"
)

func newTestStore(t *testing.T) (*Store, *config.Config) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return NewStore(cfg), cfg
}

func TestCheckRecordDirStates(t *testing.T) {
	store, cfg := newTestStore(t)
	res, err := store.Check(CombinedRecords)
	if err != nil || res.State != StateMissing {
		t.Fatalf("expected missing, got %s (%v)", res.State, err)
	}
	if _, err := store.Prepare(CombinedRecords); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	res, _ = store.Check(CombinedRecords)
	if res.State != StateEmpty {
		t.Fatalf("expected empty, got %s", res.State)
	}
	if err := os.WriteFile(filepath.Join(cfg.CombinedDir(), "abcdefg.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, _ = store.Check(CombinedRecords)
	if !res.Ready() || res.Entries != 1 {
		t.Fatalf("expected ready with one entry, got %+v", res)
	}
}

func TestCheckFileRejectsDirectory(t *testing.T) {
	store, cfg := newTestStore(t)
	if err := os.MkdirAll(cfg.DictionaryPath(), 0o755); err != nil {
		t.Fatal(err)
	}
	res, err := store.Check(Dictionary)
	if err == nil || res.State != StateInvalid {
		t.Fatalf("expected invalid state, got %s (%v)", res.State, err)
	}
}

func TestRequireNamesMissingInput(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Require(PlayRecords); err == nil {
		t.Fatalf("expected error for missing play records")
	}
	path, err := store.Prepare(Catalog)
	if err != nil {
		t.Fatalf("prepare catalog: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := store.Require(Catalog)
	if err != nil || got != path {
		t.Fatalf("require catalog = %s, %v", got, err)
	}
}

func TestRefsValidate(t *testing.T) {
	for _, ref := range []ArtifactRef{RawDictionary, Dictionary, PangramRecords, CombinedRecords, PlayRecords, Catalog} {
		if err := ref.Validate(); err != nil {
			t.Fatalf("%s: %v", ref.ID, err)
		}
	}
	if err := (ArtifactRef{ID: "x", Kind: KindFile}).Validate(); err == nil {
		t.Fatalf("expected missing resolver error")
	}
}
