package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Ext is the file extension of every record file.
const Ext = ".json"

// Encode renders v as two-space indented JSON with non-ASCII and HTML
// characters written verbatim and no trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteFile encodes v to path, creating parent directories and replacing any
// existing file.
func WriteFile(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("records: encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadPangram loads and validates a pangram record.
func ReadPangram(path string) (Pangram, error) {
	var rec Pangram
	err := read(path, pangramSchema, &rec)
	return rec, err
}

// ReadCombined loads and validates a combined record.
func ReadCombined(path string) (Combined, error) {
	var rec Combined
	err := read(path, combinedSchema, &rec)
	return rec, err
}

// ReadPlay loads and validates a play record.
func ReadPlay(path string) (Play, error) {
	var rec Play
	err := read(path, playSchema, &rec)
	return rec, err
}

func read(path string, schema *gojsonschema.Schema, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("records: read %s: %w", path, err)
	}
	if err := validate(schema, path, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("records: decode %s: %w", path, err)
	}
	return nil
}

// List returns the record files directly inside dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("records: list %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Stem returns the file name of path without directory or extension.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Ext)
}
