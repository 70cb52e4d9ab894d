// Package dictionary loads, filters and saves word lists.
package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/kingrea/combprep/internal/letters"
	"github.com/kingrea/combprep/internal/records"
)

// Rules controls which words survive Filter.
type Rules struct {
	MaxUniqueLetters int
	MinWordLength    int
}

// Load reads a JSON array of strings. Order and duplicates are preserved.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read %s: %w", path, err)
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("dictionary: parse %s: %w", path, err)
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}

// Save writes words as an indented JSON array.
func Save(path string, words []string) error {
	if words == nil {
		words = []string{}
	}
	if err := records.WriteFile(path, words); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	return nil
}

// Filter keeps words with at most MaxUniqueLetters distinct letters and at
// least MinWordLength characters.
func Filter(words []string, rules Rules) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < rules.MinWordLength {
			continue
		}
		if letters.Distinct(word) > rules.MaxUniqueLetters {
			continue
		}
		out = append(out, word)
	}
	return out
}

// Pangrams returns the words with exactly n distinct letters, in order.
func Pangrams(words []string, n int) []string {
	var out []string
	for _, word := range words {
		if letters.Distinct(word) == n {
			out = append(out, word)
		}
	}
	return out
}
