package extract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kingrea/combprep/internal/letters"
	"github.com/kingrea/combprep/internal/records"
	"github.com/kingrea/combprep/internal/stage"
	"github.com/kingrea/combprep/internal/stages/stagetest"
)

var sampleWords = []string{
	"backfed", "Fadeback", "bade", "cafe", "bagel", "faced", "Gab", "dab", "zebra", "Bärchen", "café",
}

func TestBuildListsEverySpellableWord(t *testing.T) {
	ix := letters.NewIndex(sampleWords)
	rec := Build(ix, "backfed")
	require.Equal(t, "backfed", rec.Word)
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f", "k"}, rec.Letters)
	require.Equal(t, []string{"backfed", "Fadeback", "bade", "cafe", "faced", "dab"}, rec.PossibleWords)

	set := letters.Of(rec.Word)
	for _, w := range sampleWords {
		require.Equal(t, set.Covers(w), contains(rec.PossibleWords, w), "membership of %q", w)
	}
}

func TestRunWritesOneFilePerPangram(t *testing.T) {
	ctx := stagetest.NewContext(t)
	stagetest.WriteDictionary(t, ctx.Config.DictionaryPath(), sampleWords)

	st, err := New(nil)
	require.NoError(t, err)
	done, err := st.IsComplete(ctx)
	require.NoError(t, err)
	require.False(t, done)

	var progress [][2]int
	res, err := st.Run(ctx.WithProgress(func(d, total int) { progress = append(progress, [2]int{d, total}) }))
	require.NoError(t, err)
	require.Equal(t, stage.StatusCompleted, res.Status)
	require.Equal(t, 3, res.Counters["pangrams"])
	require.Equal(t, 3, res.Counters["files"])
	require.Equal(t, [][2]int{{3, 3}}, progress)
	require.Len(t, res.Samples, 3)

	files := stagetest.Snapshot(t, ctx.Config.PangramsDir())
	require.Len(t, files, 3)
	require.Contains(t, files, "backfed.json")
	require.Contains(t, files, "Fadeback.json")
	require.Contains(t, files, "Baerchen.json")

	rec, err := records.ReadPangram(filepath.Join(ctx.Config.PangramsDir(), "Baerchen.json"))
	require.NoError(t, err)
	require.Equal(t, "Bärchen", rec.Word)
	require.Equal(t, []string{"Bärchen"}, rec.PossibleWords)
	require.Contains(t, rec.Letters, "ä")

	done, err = st.IsComplete(ctx)
	require.NoError(t, err)
	require.True(t, done)
}

func TestRunIsDeterministic(t *testing.T) {
	ctx := stagetest.NewContext(t)
	stagetest.WriteDictionary(t, ctx.Config.DictionaryPath(), sampleWords)
	st, err := New(nil)
	require.NoError(t, err)

	_, err = st.Run(ctx)
	require.NoError(t, err)
	first := stagetest.Snapshot(t, ctx.Config.PangramsDir())
	_, err = st.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, first, stagetest.Snapshot(t, ctx.Config.PangramsDir()))
}

func TestRunSkipsWordsWithoutFileName(t *testing.T) {
	ctx := stagetest.NewContext(t)
	stagetest.WriteDictionary(t, ctx.Config.DictionaryPath(), []string{"!?#%&*+", "backfed"})
	st, err := New(nil)
	require.NoError(t, err)

	res, err := st.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.Counters["skipped"])
	require.Len(t, res.Failures, 1)
	require.Len(t, stagetest.Snapshot(t, ctx.Config.PangramsDir()), 1)
}

func TestRunNoPangramsIsNoOp(t *testing.T) {
	ctx := stagetest.NewContext(t)
	stagetest.WriteDictionary(t, ctx.Config.DictionaryPath(), []string{"hello", "hell", "oelh"})
	st, err := New(nil)
	require.NoError(t, err)

	res, err := st.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, stage.StatusNoOp, res.Status)
	require.DirExists(t, ctx.Config.PangramsDir())
	require.Empty(t, stagetest.Snapshot(t, ctx.Config.PangramsDir()))
}

func TestRunFailsWithoutDictionary(t *testing.T) {
	ctx := stagetest.NewContext(t)
	st, err := New(nil)
	require.NoError(t, err)

	res, err := st.Run(ctx)
	require.Error(t, err)
	require.Equal(t, stage.StatusFailed, res.Status)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
