package combine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kingrea/combprep/internal/artifact"
	"github.com/kingrea/combprep/internal/records"
	"github.com/kingrea/combprep/internal/stage"
)

// ID is the registry identifier of the stage.
const ID = "combine"

const progressEvery = 10000

// Stage merges pangram records sharing a letter set.
type Stage struct {
	stage.Base
	samples int
}

// Register installs the stage factory.
func Register(reg *stage.Registry) {
	reg.MustRegister(ID, New)
}

// New builds the stage.
func New(opts stage.Options) (stage.Stage, error) {
	s := &Stage{
		Base: stage.NewBase(stage.Info{
			ID:          ID,
			Name:        "Group Combiner",
			Description: "Merge pangram records that share the same letters",
			Version:     "1.0.0",
		}),
		samples: opts.Int("samples", 5),
	}
	s.SetInputs(artifact.PangramRecords)
	s.SetOutputs(artifact.CombinedRecords)
	return s, nil
}

// Load reads every pangram record in paths into a grouping.
func Load(paths []string, progress func(done, total int)) (*Groups, error) {
	groups := NewGroups()
	for i, path := range paths {
		rec, err := records.ReadPangram(path)
		if err != nil {
			return nil, err
		}
		groups.Add(rec)
		if progress != nil && (i+1)%progressEvery == 0 {
			progress(i+1, len(paths))
		}
	}
	return groups, nil
}

// Run implements stage.Stage.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	inDir, err := ctx.Artifacts.Require(artifact.PangramRecords)
	if err != nil {
		return failed(err)
	}
	paths, err := records.List(inDir)
	if err != nil {
		return failed(err)
	}
	ctx.Logbook.Info("combine: reading %d game data files from %s", len(paths), inDir)
	groups, err := Load(paths, func(done, total int) {
		ctx.Logbook.Info("combine: processed %d/%d files", done, total)
		ctx.ReportProgress(done, total)
	})
	if err != nil {
		return failed(err)
	}
	ctx.Logbook.Info("combine: found %d unique letter combinations", groups.Len())

	var res stage.Result
	res.Count("files", len(paths))
	outDir, err := ctx.Artifacts.Prepare(artifact.CombinedRecords)
	if err != nil {
		return failed(err)
	}
	if groups.Len() == 0 {
		res.Status = stage.StatusNoOp
		res.Message = "no game data files to combine"
		return res, nil
	}
	for _, key := range groups.Keys() {
		if strings.ContainsAny(key, `/\`) {
			return failed(fmt.Errorf("letter key %q cannot be used as a file name", key))
		}
		rec, _ := groups.Record(key)
		if err := records.WriteFile(filepath.Join(outDir, key+records.Ext), rec); err != nil {
			return failed(err)
		}
		if len(res.Samples) < s.samples {
			res.Samples = append(res.Samples, fmt.Sprintf("%s: %s (%d words)",
				key, strings.Join(rec.Letters, ", "), rec.TotalWords))
		}
	}
	ctx.ReportProgress(len(paths), len(paths))

	stats := groups.Stats()
	res.Count("combinations", stats.Buckets)
	res.Count("min_words", stats.MinWords)
	res.Count("max_words", stats.MaxWords)
	res.Status = stage.StatusCompleted
	res.Message = fmt.Sprintf("created %d combined game files, %.1f words per game on average", stats.Buckets, stats.Average)
	ctx.Logbook.Info("combine: %s", res.Message)
	return res, nil
}

func failed(err error) (stage.Result, error) {
	err = fmt.Errorf("combine: %w", err)
	return stage.Result{Status: stage.StatusFailed, Message: err.Error()}, err
}
