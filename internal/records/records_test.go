package records

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeMatchesIndentedLayout(t *testing.T) {
	rec := NewCombined([]string{"a", "ö"}, nil)
	data, err := Encode(rec)
	require.NoError(t, err)
	want := "{\n  \"letters\": [\n    \"a\",\n    \"ö\"\n  ],\n  \"words\": [],\n  \"total_words\": 0\n}"
	require.Equal(t, want, string(data))
}

func TestEncodeDoesNotEscapeHTML(t *testing.T) {
	data, err := Encode(Pangram{Word: "a&b<c>", Letters: []string{}, PossibleWords: []string{}})
	require.NoError(t, err)
	require.Contains(t, string(data), `"a&b<c>"`)
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "abcdefg_a.json")
	play := NewPlay("a", []string{"b", "c", "d", "e", "f", "g"}, []string{"badge", "cafe"})
	require.NoError(t, WriteFile(path, play))

	got, err := ReadPlay(path)
	require.NoError(t, err)
	require.Equal(t, play, got)
	require.Equal(t, 2, got.TotalWords)
}

func TestReadCombinedRejectsSchemaViolations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"letters": "abc", "words": [1]}`), 0o644))

	_, err := ReadCombined(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Equal(t, path, verr.Path)
	require.Len(t, verr.Errors, 2)
}

func TestReadPangramRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"letters": [`), 0o644))

	_, err := ReadPangram(path)
	require.Error(t, err)
}

func TestReadPangramAllowsMissingPossibleWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lonely.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"word": "x", "letters": ["x"]}`), 0o644))

	rec, err := ReadPangram(path)
	require.NoError(t, err)
	require.Nil(t, rec.PossibleWords)
}

func TestListSortsAndFiltersJSON(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.json"), 0o755))

	paths, err := List(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, paths)
	require.Equal(t, "a", Stem(paths[0]))
}
