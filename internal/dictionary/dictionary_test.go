package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterAppliesLengthAndLetterLimits(t *testing.T) {
	words := []string{"ab", "abcd", "Straße", "abcdefgh", "Hello", "hello", "größte"}
	got := Filter(words, Rules{MaxUniqueLetters: 7, MinWordLength: 4})
	require.Equal(t, []string{"abcd", "Straße", "Hello", "hello", "größte"}, got)
}

func TestPangramsRequiresExactCount(t *testing.T) {
	words := []string{"backfed", "abcdefgh", "abcdef", "fadeback"}
	require.Equal(t, []string{"backfed", "fadeback"}, Pangrams(words, 7))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, Save(path, []string{"Äpfel", "apfel", "Äpfel"}))
	words, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Äpfel", "apfel", "Äpfel"}, words)
}

func TestLoadRejectsNonStringArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, 2]`), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
