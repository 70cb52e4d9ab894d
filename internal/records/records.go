// Package records defines the JSON documents exchanged between pipeline
// stages and the helpers that read, validate and write them.
package records

// Pangram is written by the extract stage, one per qualifying word.
type Pangram struct {
	Word          string   `json:"word"`
	Letters       []string `json:"letters"`
	PossibleWords []string `json:"possible_words"`
}

// Combined groups every pangram sharing one letter set.
type Combined struct {
	Letters    []string `json:"letters"`
	Words      []string `json:"words"`
	TotalWords int      `json:"total_words"`
}

// Play is one playable puzzle: a combined record narrowed to a key letter.
type Play struct {
	KeyLetter    string   `json:"key_letter"`
	OtherLetters []string `json:"other_letters"`
	Words        []string `json:"words"`
	TotalWords   int      `json:"total_words"`
}

// NewCombined builds a combined record, deriving the word count.
func NewCombined(letters, words []string) Combined {
	return Combined{
		Letters:    nonNil(letters),
		Words:      nonNil(words),
		TotalWords: len(words),
	}
}

// NewPlay builds a play record, deriving the word count.
func NewPlay(key string, others, words []string) Play {
	return Play{
		KeyLetter:    key,
		OtherLetters: nonNil(others),
		Words:        nonNil(words),
		TotalWords:   len(words),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
