package playdata

import (
	"fmt"
	"path/filepath"

	"github.com/kingrea/combprep/internal/artifact"
	"github.com/kingrea/combprep/internal/records"
	"github.com/kingrea/combprep/internal/stage"
)

// ID is the registry identifier of the stage.
const ID = "playdata"

// Stage derives one playable puzzle per letter set and key letter.
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
			Name:        "Play-Data Generator",
			Description: "Split combined games into one puzzle per key letter",
			Version:     "1.0.0",
		}),
	}
	s.SetInputs(artifact.CombinedRecords)
	s.SetOutputs(artifact.PlayRecords)
	return s, nil
}

// Run implements stage.Stage. Individual file failures do not fail the stage.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	inDir, err := ctx.Artifacts.Require(artifact.CombinedRecords)
	if err != nil {
		return failed(err)
	}
	paths, err := records.List(inDir)
	if err != nil {
		return failed(err)
	}
	outDir, err := ctx.Artifacts.Prepare(artifact.PlayRecords)
	if err != nil {
		return failed(err)
	}
	ctx.Logbook.Info("playdata: found %d combined game files in %s", len(paths), inDir)

	report := Generate(paths, outDir, ctx.Logbook, ctx.ReportProgress)

	var res stage.Result
	res.Count("files", report.Files)
	res.Count("created", report.Count(ItemCreated))
	res.Count("skipped", report.Count(ItemSkipped))
	res.Count("failed", report.Count(ItemFailed))
	for _, item := range report.Failures() {
		res.Failures = append(res.Failures, fmt.Sprintf("%s: %v", filepath.Base(item.Source), item.Err))
	}
	res.Status = stage.StatusCompleted
	if report.Files == 0 {
		res.Status = stage.StatusNoOp
	}
	res.Message = fmt.Sprintf("created %d play data files in %s", report.Count(ItemCreated), outDir)
	ctx.Logbook.Info("playdata: %s", res.Message)
	return res, nil
}

func failed(err error) (stage.Result, error) {
	err = fmt.Errorf("playdata: %w", err)
	return stage.Result{Status: stage.StatusFailed, Message: err.Error()}, err
}
