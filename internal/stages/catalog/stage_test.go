package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	puzzles "github.com/kingrea/combprep/internal/catalog"
	"github.com/kingrea/combprep/internal/records"
	"github.com/kingrea/combprep/internal/stage"
	"github.com/kingrea/combprep/internal/stages/stagetest"
)

func TestRunBuildsCatalog(t *testing.T) {
	ctx := stagetest.NewContext(t)
	dir := ctx.Config.PlayDataDir()
	require.NoError(t, records.WriteFile(filepath.Join(dir, "abcdefk_a.json"),
		records.NewPlay("a", []string{"b", "c", "d", "e", "f", "k"}, []string{"abbe", "cafe"})))
	require.NoError(t, records.WriteFile(filepath.Join(dir, "abcdefk_k.json"),
		records.NewPlay("k", []string{"a", "b", "c", "d", "e", "f"}, []string{"backe"})))
	stagetest.WriteRaw(t, dir, "broken.json", `{"key_letter": "a"}`)

	st, err := New(nil)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		res, err := st.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, stage.StatusCompleted, res.Status)
		require.Equal(t, 2, res.Counters["puzzles"])
		require.Equal(t, 3, res.Counters["words"])
		require.Equal(t, 1, res.Counters["failed"])
	}

	db, err := puzzles.Open(context.Background(), ctx.Config.CatalogPath())
	require.NoError(t, err)
	defer db.Close()
	n, err := db.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)
	got, err := db.ByKeyLetter(context.Background(), "k", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "abcdefk", got[0].Letters)
}

func TestRunWithoutPlayRecordsIsNoOp(t *testing.T) {
	ctx := stagetest.NewContext(t)
	stagetest.WriteRaw(t, ctx.Config.PlayDataDir(), "notes.txt", "x")
	st, err := New(nil)
	require.NoError(t, err)
	res, err := st.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, stage.StatusNoOp, res.Status)
}
