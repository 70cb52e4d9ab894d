// Package catalog stores play records in a SQLite database so downstream
// tools can query puzzles without walking the play-data directory.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/kingrea/combprep/internal/letters"
	"github.com/kingrea/combprep/internal/records"
)

// Puzzle is one catalogued play record.
type Puzzle struct {
	ID           string
	Letters      string
	KeyLetter    string
	OtherLetters []string
	Words        []string
}

// Summary is the row returned by lookups; word lists are fetched separately.
type Summary struct {
	ID         string
	Letters    string
	KeyLetter  string
	TotalWords int
}

// FromPlay builds the catalog entry for the play record stored under id.
func FromPlay(id string, rec records.Play) Puzzle {
	all := append([]string{rec.KeyLetter}, rec.OtherLetters...)
	return Puzzle{
		ID:           id,
		Letters:      letters.KeyOf(all),
		KeyLetter:    rec.KeyLetter,
		OtherLetters: rec.OtherLetters,
		Words:        rec.Words,
	}
}

// Catalog wraps the SQLite connection.
type Catalog struct {
	db *sql.DB
}

// Open connects to the catalog at path, creating the file and schema when
// needed.
func Open(ctx context.Context, path string) (*Catalog, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: ping %s: %w", path, err)
	}
	c := &Catalog{db: db}
	if err := c.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: init schema: %w", err)
	}
	return c, nil
}

// Close releases the connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id            TEXT PRIMARY KEY,
		letters       TEXT NOT NULL,
		key_letter    TEXT NOT NULL,
		other_letters TEXT NOT NULL,
		total_words   INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS puzzle_words (
		puzzle_id TEXT NOT NULL,
		position  INTEGER NOT NULL,
		word      TEXT NOT NULL,
		PRIMARY KEY (puzzle_id, position),
		FOREIGN KEY (puzzle_id) REFERENCES puzzles(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_key ON puzzles(key_letter, total_words);
	CREATE INDEX IF NOT EXISTS idx_puzzles_letters ON puzzles(letters);
	`
	_, err := c.db.ExecContext(ctx, schema)
	return err
}

// Replace drops every stored puzzle and inserts puzzles in ID order inside a
// single transaction.
func (c *Catalog) Replace(ctx context.Context, puzzles []Puzzle) error {
	sorted := append([]Puzzle(nil), puzzles...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM puzzle_words`, `DELETE FROM puzzles`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("catalog: clear: %w", err)
		}
	}
	insertPuzzle, err := tx.PrepareContext(ctx,
		`INSERT INTO puzzles (id, letters, key_letter, other_letters, total_words) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("catalog: prepare: %w", err)
	}
	defer insertPuzzle.Close()
	insertWord, err := tx.PrepareContext(ctx,
		`INSERT INTO puzzle_words (puzzle_id, position, word) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("catalog: prepare: %w", err)
	}
	defer insertWord.Close()

	for _, p := range sorted {
		if _, err := insertPuzzle.ExecContext(ctx, p.ID, p.Letters, p.KeyLetter,
			strings.Join(p.OtherLetters, ","), len(p.Words)); err != nil {
			return fmt.Errorf("catalog: insert %s: %w", p.ID, err)
		}
		for i, word := range p.Words {
			if _, err := insertWord.ExecContext(ctx, p.ID, i, word); err != nil {
				return fmt.Errorf("catalog: insert word %s/%d: %w", p.ID, i, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit: %w", err)
	}
	return nil
}

// Count returns the number of stored puzzles.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM puzzles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("catalog: count: %w", err)
	}
	return n, nil
}

// ByKeyLetter lists puzzles for key with at least minWords words, largest
// first.
func (c *Catalog) ByKeyLetter(ctx context.Context, key string, minWords int) ([]Summary, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, letters, key_letter, total_words
		FROM puzzles
		WHERE key_letter = ? AND total_words >= ?
		ORDER BY total_words DESC, id ASC`, strings.ToLower(key), minWords)
	if err != nil {
		return nil, fmt.Errorf("catalog: query %s: %w", key, err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Letters, &s.KeyLetter, &s.TotalWords); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Words returns the words of puzzle id in their stored order.
func (c *Catalog) Words(ctx context.Context, id string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT word FROM puzzle_words WHERE puzzle_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: words %s: %w", id, err)
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
