package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kingrea/combprep/internal/artifact"
	"github.com/kingrea/combprep/internal/dictionary"
	"github.com/kingrea/combprep/internal/letters"
	"github.com/kingrea/combprep/internal/records"
	"github.com/kingrea/combprep/internal/stage"
)

// ID is the registry identifier of the stage.
const ID = "extract"

const progressEvery = 1000

// Stage writes one pangram record per qualifying dictionary word.
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
			Name:        "Pangram Extractor",
			Description: "Find words with exactly N distinct letters and every word spellable from them",
			Version:     "1.0.0",
		}),
		samples: opts.Int("samples", 5),
	}
	s.SetInputs(artifact.Dictionary)
	s.SetOutputs(artifact.PangramRecords)
	return s, nil
}

// Build assembles the record for one pangram word.
func Build(ix *letters.Index, word string) records.Pangram {
	set := letters.Of(word)
	return records.Pangram{
		Word:          word,
		Letters:       set.Strings(),
		PossibleWords: ix.Spellable(set),
	}
}

// Run implements stage.Stage.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	dictPath, err := ctx.Artifacts.Require(artifact.Dictionary)
	if err != nil {
		return failed(err)
	}
	words, err := dictionary.Load(dictPath)
	if err != nil {
		return failed(err)
	}
	ctx.Logbook.Info("extract: loaded %d words from %s", len(words), dictPath)

	n := ctx.Config.Rules().PangramLetters
	pangrams := dictionary.Pangrams(words, n)
	ctx.Logbook.Info("extract: found %d words with exactly %d unique letters", len(pangrams), n)

	var res stage.Result
	res.Count("words", len(words))
	res.Count("pangrams", len(pangrams))
	outDir, err := ctx.Artifacts.Prepare(artifact.PangramRecords)
	if err != nil {
		return failed(err)
	}
	if len(pangrams) == 0 {
		res.Status = stage.StatusNoOp
		res.Message = fmt.Sprintf("no words with exactly %d unique letters", n)
		return res, nil
	}
	ix := letters.NewIndex(words)
	stems := make(map[string]struct{}, len(pangrams))
	written := 0
	total := len(pangrams)
	for i, word := range pangrams {
		stem := letters.FileStem(word)
		if stem == "" {
			ctx.Logbook.Warn("extract: %q has no usable file name, skipped", word)
			res.Failures = append(res.Failures, fmt.Sprintf("%s: empty file name", word))
			continue
		}
		rec := Build(ix, word)
		if err := records.WriteFile(filepath.Join(outDir, stem+records.Ext), rec); err != nil {
			return failed(err)
		}
		written++
		stems[stem] = struct{}{}
		if len(res.Samples) < s.samples {
			res.Samples = append(res.Samples, fmt.Sprintf("%s: %s (%d possible words)",
				rec.Word, strings.Join(rec.Letters, ", "), len(rec.PossibleWords)))
		}
		if (i+1)%progressEvery == 0 {
			ctx.Logbook.Info("extract: processed %d/%d files", i+1, total)
			ctx.ReportProgress(i+1, total)
		}
	}
	ctx.ReportProgress(total, total)

	res.Count("written", written)
	res.Count("files", len(stems))
	res.Count("skipped", len(res.Failures))
	res.Status = stage.StatusCompleted
	res.Message = fmt.Sprintf("created %d game data files in %s", len(stems), outDir)
	ctx.Logbook.Info("extract: %s", res.Message)
	return res, nil
}

func failed(err error) (stage.Result, error) {
	err = fmt.Errorf("extract: %w", err)
	return stage.Result{Status: stage.StatusFailed, Message: err.Error()}, err
}
