package catalog

import (
	"fmt"
	"path/filepath"

	"github.com/kingrea/combprep/internal/artifact"
	puzzles "github.com/kingrea/combprep/internal/catalog"
	"github.com/kingrea/combprep/internal/records"
	"github.com/kingrea/combprep/internal/stage"
)

// ID is the registry identifier of the stage.
const ID = "catalog"

// Stage loads every play record into the SQLite catalog.
type Stage struct {
	stage.Base
}

// Register installs the stage factory.
func Register(reg *stage.Registry) {
	reg.MustRegister(ID, New)
}

// New builds the stage.
func New(stage.Options) (stage.Stage, error) {
	s := &Stage{
		Base: stage.NewBase(stage.Info{
			ID:          ID,
			Name:        "Puzzle Catalog",
			Description: "Index play records in a SQLite database",
			Version:     "1.0.0",
		}),
	}
	s.SetInputs(artifact.PlayRecords)
	s.SetOutputs(artifact.Catalog)
	return s, nil
}

// Run implements stage.Stage.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	inDir, err := ctx.Artifacts.Require(artifact.PlayRecords)
	if err != nil {
		return failed(err)
	}
	paths, err := records.List(inDir)
	if err != nil {
		return failed(err)
	}

	var res stage.Result
	res.Count("files", len(paths))
	if len(paths) == 0 {
		res.Status = stage.StatusNoOp
		res.Message = "no play data files to catalog"
		return res, nil
	}

	entries := make([]puzzles.Puzzle, 0, len(paths))
	words := 0
	for i, path := range paths {
		rec, err := records.ReadPlay(path)
		if err != nil {
			ctx.Logbook.Warn("catalog: skipping %s: %v", filepath.Base(path), err)
			res.Failures = append(res.Failures, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		entries = append(entries, puzzles.FromPlay(records.Stem(path), rec))
		words += len(rec.Words)
		ctx.ReportProgress(i+1, len(paths))
	}

	dbPath, err := ctx.Artifacts.Prepare(artifact.Catalog)
	if err != nil {
		return failed(err)
	}
	db, err := puzzles.Open(ctx.Parent(), dbPath)
	if err != nil {
		return failed(err)
	}
	defer db.Close()
	if err := db.Replace(ctx.Parent(), entries); err != nil {
		return failed(err)
	}

	res.Count("puzzles", len(entries))
	res.Count("words", words)
	res.Count("failed", len(res.Failures))
	res.Status = stage.StatusCompleted
	res.Message = fmt.Sprintf("catalogued %d puzzles in %s", len(entries), dbPath)
	ctx.Logbook.Info("catalog: %s", res.Message)
	return res, nil
}

func failed(err error) (stage.Result, error) {
	err = fmt.Errorf("catalog: %w", err)
	return stage.Result{Status: stage.StatusFailed, Message: err.Error()}, err
}
