package filter

import (
	"fmt"

	"github.com/kingrea/combprep/internal/artifact"
	"github.com/kingrea/combprep/internal/dictionary"
	"github.com/kingrea/combprep/internal/stage"
	"github.com/kingrea/combprep/plugins"
)

// ID is the registry identifier of the stage.
const ID = "filter"

// Stage trims the raw dictionary down to candidate words.
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
			Name:        "Dictionary Filter",
			Description: "Drop words that are too short or use too many letters",
			Version:     "1.0.0",
		}),
	}
	s.SetInputs(artifact.RawDictionary)
	s.SetOutputs(artifact.Dictionary)
	return s, nil
}

// Run implements stage.Stage.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	src, err := ctx.Artifacts.Require(artifact.RawDictionary)
	if err != nil {
		return failed(err)
	}
	words, err := dictionary.Load(src)
	if err != nil {
		return failed(err)
	}
	rules := ctx.Config.Rules()
	kept := dictionary.Filter(words, dictionary.Rules{
		MaxUniqueLetters: rules.MaxUniqueLetters,
		MinWordLength:    rules.MinWordLength,
	})
	wordRules, err := plugins.LoadRules(ctx.Config.RulesDir())
	if err != nil {
		return failed(err)
	}
	kept, rejected := plugins.Apply(kept, wordRules)
	dst, err := ctx.Artifacts.Prepare(artifact.Dictionary)
	if err != nil {
		return failed(err)
	}
	if err := dictionary.Save(dst, kept); err != nil {
		return failed(err)
	}
	ctx.ReportProgress(len(words), len(words))

	var res stage.Result
	res.Count("original", len(words))
	res.Count("filtered", len(kept))
	res.Count("removed", len(words)-len(kept))
	for _, rule := range wordRules {
		res.Count("rule_"+rule.ID, rejected[rule.ID])
		res.Samples = append(res.Samples, fmt.Sprintf("rule %s (%s) rejected %d words", rule.ID, rule.Source, rejected[rule.ID]))
	}
	res.Status = stage.StatusCompleted
	res.Message = fmt.Sprintf("kept %d of %d words in %s", len(kept), len(words), dst)
	ctx.Logbook.Info("filter: %s", res.Message)
	return res, nil
}

func failed(err error) (stage.Result, error) {
	err = fmt.Errorf("filter: %w", err)
	return stage.Result{Status: stage.StatusFailed, Message: err.Error()}, err
}
