package model

// TextComparison is the word-level phonetic overlap of a text with a
// reference text. RunLengths lists runs longer than one word, in text order.
type TextComparison struct {
	Words          int   `json:"words"`
	ReferenceWords int   `json:"reference_words"`
	LongestRun     int   `json:"longest_run"`
	RunLengths     []int `json:"run_lengths"`
}
