package filter

// Package filter documents the IO contract of the dictionary filter.
//
// Required inputs:
//   - The raw word list (`artifact.RawDictionary`), a JSON array of strings.
//
// Optional inputs:
//   - Word rules in `.combprep/rules/` (`*.yaml` regex rules and `*.go` files
//     exposing `Accept(word string) bool`), applied after the length and
//     letter checks. A rule that fails to load fails the stage.
//
// Outputs:
//   - The filtered word list (`artifact.Dictionary`) in the same order with
//     duplicates preserved. Words with at least `rules.min_word_length` runes
//     and at most `rules.max_unique_letters` distinct letters survive.
