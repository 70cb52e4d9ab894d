package combine

import (
	"sort"

	"github.com/kingrea/combprep/internal/letters"
	"github.com/kingrea/combprep/internal/records"
)

// Groups buckets pangram records by letter-set key. Keys keep first-seen
// order so reports and samples are stable for a given input order.
type Groups struct {
	order   []string
	buckets map[string]*bucket
}

type bucket struct {
	letters []string
	words   []string
	seen    map[string]struct{}
}

// NewGroups returns an empty grouping.
func NewGroups() *Groups {
	return &Groups{buckets: map[string]*bucket{}}
}

// Add merges rec into its bucket and returns the bucket key.
func (g *Groups) Add(rec records.Pangram) string {
	key := letters.KeyOf(rec.Letters)
	b, ok := g.buckets[key]
	if !ok {
		b = &bucket{seen: map[string]struct{}{}}
		g.buckets[key] = b
		g.order = append(g.order, key)
	}
	if len(b.letters) == 0 {
		b.letters = append([]string(nil), rec.Letters...)
	}
	for _, word := range rec.PossibleWords {
		if _, dup := b.seen[word]; dup {
			continue
		}
		b.seen[word] = struct{}{}
		b.words = append(b.words, word)
	}
	return key
}

// Len returns the number of distinct letter sets.
func (g *Groups) Len() int {
	return len(g.order)
}

// Keys returns the bucket keys in first-seen order.
func (g *Groups) Keys() []string {
	return append([]string(nil), g.order...)
}

// Record returns the combined record for key with words sorted.
func (g *Groups) Record(key string) (records.Combined, bool) {
	b, ok := g.buckets[key]
	if !ok {
		return records.Combined{}, false
	}
	words := append([]string(nil), b.words...)
	sort.Strings(words)
	return records.NewCombined(append([]string(nil), b.letters...), words), true
}

// Stats summarises words per bucket.
type Stats struct {
	Buckets  int
	MinWords int
	MaxWords int
	Average  float64
}

// Stats computes bucket statistics. An empty grouping yields zero values.
func (g *Groups) Stats() Stats {
	st := Stats{Buckets: len(g.order)}
	if st.Buckets == 0 {
		return st
	}
	sum := 0
	for i, key := range g.order {
		n := len(g.buckets[key].words)
		sum += n
		if i == 0 || n < st.MinWords {
			st.MinWords = n
		}
		if n > st.MaxWords {
			st.MaxWords = n
		}
	}
	st.Average = float64(sum) / float64(st.Buckets)
	return st
}
