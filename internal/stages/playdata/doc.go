package playdata

// Package playdata documents the IO contract of the play-data generator.
//
// Required inputs:
//   - Combined records (`artifact.CombinedRecords`). A missing directory fails
//     the stage before any output is written.
//
// Outputs:
//   - `<stem>_<key>.json` in `artifact.PlayRecords` for every letter of every
//     combined record whose filtered word list is non-empty, holding
//     `{key_letter, other_letters, words, total_words}`.
//
// Unreadable or schema-invalid combined files become failed items in the
// Report and the remaining files are still processed.
