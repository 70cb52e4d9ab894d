package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kingrea/combprep/internal/records"
)

func openTemp(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "puzzles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func samplePuzzles() []Puzzle {
	return []Puzzle{
		FromPlay("abcdefk_a", records.NewPlay("a", []string{"b", "c", "d", "e", "f", "k"},
			[]string{"abbe", "backe", "cafe", "dab"})),
		FromPlay("abcdefk_k", records.NewPlay("k", []string{"a", "b", "c", "d", "e", "f"},
			[]string{"backe"})),
		FromPlay("aehlnst_a", records.NewPlay("a", []string{"e", "h", "l", "n", "s", "t"},
			[]string{"hals", "last"})),
	}
}

func TestFromPlayDerivesLetterKey(t *testing.T) {
	p := FromPlay("abcdefk_k", records.NewPlay("k", []string{"a", "b", "c", "d", "e", "f"}, nil))
	require.Equal(t, "abcdefk", p.Letters)
	require.Equal(t, "k", p.KeyLetter)
}

func TestReplaceAndLookups(t *testing.T) {
	ctx := context.Background()
	c := openTemp(t)
	require.NoError(t, c.Replace(ctx, samplePuzzles()))

	n, err := c.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	got, err := c.ByKeyLetter(ctx, "A", 2)
	require.NoError(t, err)
	require.Equal(t, []Summary{
		{ID: "abcdefk_a", Letters: "abcdefk", KeyLetter: "a", TotalWords: 4},
		{ID: "aehlnst_a", Letters: "aehlnst", KeyLetter: "a", TotalWords: 2},
	}, got)

	none, err := c.ByKeyLetter(ctx, "k", 2)
	require.NoError(t, err)
	require.Empty(t, none)

	words, err := c.Words(ctx, "abcdefk_a")
	require.NoError(t, err)
	require.Equal(t, []string{"abbe", "backe", "cafe", "dab"}, words)

	missing, err := c.Words(ctx, "nope")
	require.NoError(t, err)
	require.Equal(t, []string{}, missing)
}

func TestReplaceStartsFromScratch(t *testing.T) {
	ctx := context.Background()
	c := openTemp(t)
	require.NoError(t, c.Replace(ctx, samplePuzzles()))
	require.NoError(t, c.Replace(ctx, samplePuzzles()[:1]))

	n, err := c.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	words, err := c.Words(ctx, "abcdefk_k")
	require.NoError(t, err)
	require.Empty(t, words)
}

func TestReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "puzzles.db")
	c, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, c.Replace(ctx, samplePuzzles()))
	require.NoError(t, c.Close())

	c, err = Open(ctx, path)
	require.NoError(t, err)
	defer c.Close()
	n, err := c.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}
