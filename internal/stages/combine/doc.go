package combine

// Package combine documents the IO contract of the group combiner.
//
// Required inputs:
//   - Pangram records (`artifact.PangramRecords`), read in file-name order.
//
// Outputs:
//   - One `<key>.json` per letter set in `artifact.CombinedRecords` where key is
//     the sorted concatenation of the letters. Each file holds the first-seen
//     `letters`, the de-duplicated union of `possible_words` sorted by code
//     point, and `total_words`.
//
// The stage result carries bucket statistics (min/max words, average in the
// message) and a few sample buckets. A malformed input aborts the stage.
