package extract

// Package extract documents the IO contract of the pangram extractor.
//
// Required inputs:
//   - The filtered dictionary (`artifact.Dictionary`), a JSON array of strings.
//
// Configuration:
//   - `rules.pangram_letters` picks the exact number of distinct case-folded
//     characters a word needs to seed a puzzle (7 by default).
//   - Stage option `samples` limits the example lines in the result.
//
// Outputs:
//   - One `<stem>.json` per pangram word in `artifact.PangramRecords`, holding
//     `{word, letters, possible_words}`. The stem is `letters.FileStem(word)`;
//     words whose stem is empty are skipped and listed as failures, and words
//     sharing a stem overwrite each other in dictionary order.
//
// Any read or write error aborts the stage.
