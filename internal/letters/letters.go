// Package letters holds the letter-set arithmetic shared by every stage.
// A letter set is the sorted, de-duplicated collection of case-folded runes in
// a word. Any rune counts as a letter, including hyphens and apostrophes, so
// the pipeline treats dictionary entries exactly as written.
package letters

import (
	"sort"
	"strings"
)

// Set is a sorted collection of unique runes.
type Set []rune

// Of returns the letter set of word after case folding.
func Of(word string) Set {
	seen := make(map[rune]struct{}, len(word))
	set := make(Set, 0, len(word))
	for _, r := range strings.ToLower(word) {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		set = append(set, r)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// Distinct counts the unique case-folded runes of word.
func Distinct(word string) int {
	return len(Of(word))
}

// Key returns the canonical string form used for grouping and file names.
func (s Set) Key() string {
	return string(s)
}

// Strings returns the set as one-rune strings, preserving order.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// Contains reports whether r is a member of the set.
func (s Set) Contains(r rune) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= r })
	return i < len(s) && s[i] == r
}

// Covers reports whether every case-folded rune of word is in the set.
// The empty word is covered by every set.
func (s Set) Covers(word string) bool {
	for _, r := range strings.ToLower(word) {
		if !s.Contains(r) {
			return false
		}
	}
	return true
}

// KeyOf builds the grouping key for a list of letters as stored in records:
// the letters sorted and concatenated.
func KeyOf(letters []string) string {
	sorted := append([]string(nil), letters...)
	sort.Strings(sorted)
	return strings.Join(sorted, "")
}

// ContainsLetter reports whether word contains letter, ignoring case.
func ContainsLetter(word, letter string) bool {
	return strings.Contains(strings.ToLower(word), strings.ToLower(letter))
}
