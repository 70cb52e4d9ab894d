package letters

import "sort"

// maxSubsetLetters bounds subset enumeration; larger sets fall back to a
// linear scan of the dictionary.
const maxSubsetLetters = 16

// Index buckets dictionary words by their letter-set signature so the words
// spellable from a set can be found by visiting the set's subsets instead of
// the whole dictionary.
type Index struct {
	words   []string
	buckets map[string][]int
}

// NewIndex builds the signature buckets for words. The slice is retained, not
// copied.
func NewIndex(words []string) *Index {
	buckets := make(map[string][]int)
	for i, word := range words {
		key := Of(word).Key()
		buckets[key] = append(buckets[key], i)
	}
	return &Index{words: words, buckets: buckets}
}

// Len returns the number of indexed words.
func (ix *Index) Len() int {
	return len(ix.words)
}

// Spellable returns every indexed word covered by set, in dictionary order,
// without repeats.
func (ix *Index) Spellable(set Set) []string {
	var positions []int
	if len(set) > maxSubsetLetters {
		for i, word := range ix.words {
			if set.Covers(word) {
				positions = append(positions, i)
			}
		}
	} else {
		subset := make(Set, 0, len(set))
		for mask := 0; mask < 1<<len(set); mask++ {
			subset = subset[:0]
			for bit, r := range set {
				if mask&(1<<bit) != 0 {
					subset = append(subset, r)
				}
			}
			positions = append(positions, ix.buckets[subset.Key()]...)
		}
		sort.Ints(positions)
	}
	out := make([]string, 0, len(positions))
	seen := make(map[string]struct{}, len(positions))
	for _, pos := range positions {
		word := ix.words[pos]
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
