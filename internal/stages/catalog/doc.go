package catalog

// Package catalog documents the IO contract of the catalog stage.
//
// Required inputs:
//   - Play records (`artifact.PlayRecords`).
//
// Outputs:
//   - The SQLite catalog (`artifact.Catalog`), rebuilt from scratch on every
//     run with one `puzzles` row per play record and its words in
//     `puzzle_words`.
//
// Play records that fail to load are reported and left out of the catalog.
