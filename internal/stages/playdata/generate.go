package playdata

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kingrea/combprep/internal/letters"
	"github.com/kingrea/combprep/internal/logbook"
	"github.com/kingrea/combprep/internal/records"
)

// ItemStatus is the outcome of one (combined file, key letter) pair.
type ItemStatus string

const (
	ItemCreated ItemStatus = "created"
	ItemSkipped ItemStatus = "skipped"
	ItemFailed  ItemStatus = "failed"
)

// ItemResult records what happened to one combined file and key letter. A
// file that could not be read yields one failed item without a key letter.
type ItemResult struct {
	Source    string
	Output    string
	KeyLetter string
	Status    ItemStatus
	Words     int
	Err       error
}

// Report collects every item result of a generation run.
type Report struct {
	Files int
	Items []ItemResult
}

// Count returns how many items ended with status.
func (r Report) Count(status ItemStatus) int {
	n := 0
	for _, item := range r.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the failed items.
func (r Report) Failures() []ItemResult {
	var out []ItemResult
	for _, item := range r.Items {
		if item.Status == ItemFailed {
			out = append(out, item)
		}
	}
	return out
}

// ForKeyLetter narrows rec to the words containing key, lowercased in their
// original order, and lists the remaining letters.
func ForKeyLetter(rec records.Combined, key string) records.Play {
	var others []string
	for _, l := range rec.Letters {
		if !strings.EqualFold(l, key) {
			others = append(others, l)
		}
	}
	var words []string
	for _, word := range rec.Words {
		if letters.ContainsLetter(word, key) {
			words = append(words, strings.ToLower(word))
		}
	}
	return records.NewPlay(key, others, words)
}

// OutputName is the file name of the play record for a combined file stem
// and key letter.
func OutputName(stem, key string) string {
	return stem + "_" + strings.ToLower(key) + records.Ext
}

// Generate writes play records for every combined record in paths. Per-file
// and per-letter failures are recorded in the report and processing
// continues.
func Generate(paths []string, outDir string, lb *logbook.Logbook, progress func(done, total int)) Report {
	report := Report{Files: len(paths)}
	for i, path := range paths {
		report.Items = append(report.Items, generateFile(path, outDir, lb)...)
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	return report
}

func generateFile(path, outDir string, lb *logbook.Logbook) []ItemResult {
	name := filepath.Base(path)
	rec, err := records.ReadCombined(path)
	if err != nil {
		lb.Error("playdata: error processing %s: %v", name, err)
		return []ItemResult{{Source: path, Status: ItemFailed, Err: err}}
	}
	stem := records.Stem(path)
	items := make([]ItemResult, 0, len(rec.Letters))
	for _, key := range rec.Letters {
		play := ForKeyLetter(rec, key)
		item := ItemResult{Source: path, KeyLetter: key, Words: play.TotalWords}
		if play.TotalWords == 0 {
			item.Status = ItemSkipped
			lb.Info("playdata: %s skipped %s (no words contain this letter)", name, key)
			items = append(items, item)
			continue
		}
		out := filepath.Join(outDir, OutputName(stem, key))
		if err := records.WriteFile(out, play); err != nil {
			item.Status = ItemFailed
			item.Err = fmt.Errorf("playdata: write %s: %w", out, err)
			lb.Error("%v", item.Err)
			items = append(items, item)
			continue
		}
		item.Status = ItemCreated
		item.Output = out
		items = append(items, item)
	}
	return items
}
