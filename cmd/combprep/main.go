package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kingrea/combprep/internal/artifact"
	"github.com/kingrea/combprep/internal/catalog"
	"github.com/kingrea/combprep/internal/config"
	"github.com/kingrea/combprep/internal/logbook"
	"github.com/kingrea/combprep/internal/pipeline"
	"github.com/kingrea/combprep/internal/report"
	"github.com/kingrea/combprep/internal/stage"
	"github.com/kingrea/combprep/internal/stages"
	"github.com/kingrea/combprep/internal/tui"
)

func main() {
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	configFile := flag.String("config-file", "", "path to YAML file with config overrides")
	useTUI := flag.Bool("tui", false, "show the interactive progress view")
	list := flag.Bool("list", false, "list stages and the state of their artifacts, then exit")
	last := flag.Bool("last", false, "print the most recent run report, then exit")
	lookup := flag.String("lookup", "", "print catalogued puzzles for a key letter, then exit")
	minWords := flag.Int("min-words", 0, "minimum word count for -lookup")
	skipComplete := flag.Bool("skip-complete", false, "skip stages whose outputs already exist")
	samples := flag.Int("samples", 5, "sample records shown by extract and combine")
	targets := listFlag{}
	flag.Var(&targets, "stage", "stage to run alone (repeatable or comma separated)")
	sets := keyValueFlag{}
	flag.Var(&sets, "set", "config override (key=value, repeatable)")
	flag.Parse()

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	_ = godotenv.Load(filepath.Join(absoluteProject, ".env"))

	if err := config.InitWorkspace(absoluteProject); err != nil {
		die("init %s: %v", config.WorkspaceDir, err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		die("load config: %v", err)
	}
	overrides, err := buildOverrides(*configFile, sets)
	if err != nil {
		die("load config overrides: %v", err)
	}
	for _, key := range overrides.keys() {
		if err := cfg.Set(key, overrides[key]); err != nil {
			die("apply override: %v", err)
		}
	}
	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		die("open log: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := stages.NewRegistry()
	def := pipeline.DefaultDefinition()
	for i := range def.Stages {
		if id := def.Stages[i].ID; id == "extract" || id == "combine" {
			def.Stages[i].Options = stage.Options{"samples": *samples}
		}
	}

	switch {
	case *list:
		if err := printStages(def, reg, cfg); err != nil {
			die("list stages: %v", err)
		}
		return
	case *last:
		run, err := pipeline.NewRepository(cfg.RunsDir()).Latest()
		if err != nil {
			die("load last run: %v", err)
		}
		fmt.Println(report.Run(run))
		return
	case strings.TrimSpace(*lookup) != "":
		if err := printLookup(ctx, cfg, *lookup, *minWords); err != nil {
			die("lookup: %v", err)
		}
		return
	}

	runner, err := pipeline.NewRunner(def, reg, cfg, lb)
	if err != nil {
		die("build pipeline: %v", err)
	}
	runner.SkipComplete = *skipComplete

	var run pipeline.RunReport
	if *useTUI {
		run, err = tui.Run(ctx, runner, lb, targets...)
	} else {
		runner.Observe(func(ev pipeline.Event) {
			if line := report.Progress(ev); line != "" {
				fmt.Println(line)
			}
		})
		run, err = runner.Run(ctx, targets...)
	}
	if run.RunID != "" {
		fmt.Println(report.Run(run))
	}
	if err != nil {
		die("run failed: %v", err)
	}
}

func printStages(def pipeline.Definition, reg *stage.Registry, cfg *config.Config) error {
	order, err := def.Order()
	if err != nil {
		return err
	}
	store := artifact.NewStore(cfg)
	for _, ref := range order {
		st, err := reg.Resolve(ref.ID, ref.Options)
		if err != nil {
			return err
		}
		info := st.Info()
		enabled := ""
		if ref.Optional && !cfg.StageEnabled(ref.ID) {
			enabled = " (disabled)"
		}
		fmt.Printf("%s  %s%s\n", info.ID, info.Name, enabled)
		for _, out := range st.Outputs() {
			res, _ := store.Check(out)
			fmt.Printf("    %-18s %-8s %s\n", out.ID, res.State, res.Path)
		}
	}
	return nil
}

func printLookup(ctx context.Context, cfg *config.Config, key string, minWords int) error {
	path := cfg.CatalogPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("catalog %s does not exist, run with -set stages.catalog=true first", path)
	}
	db, err := catalog.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	puzzles, err := db.ByKeyLetter(ctx, key, minWords)
	if err != nil {
		return err
	}
	for _, p := range puzzles {
		fmt.Printf("%s  letters=%s words=%d\n", p.ID, p.Letters, p.TotalWords)
	}
	fmt.Printf("%d puzzles with key letter %q\n", len(puzzles), key)
	return nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
