package model

// PhraseMatch is the best phrase found for a file.
type PhraseMatch struct {
	PhraseID string  `json:"phrase_id"`
	Accuracy float64 `json:"accuracy"`
}

// FilePhraseResult is the phrase matching outcome for one file. A rejected
// file has no BestMatch and an empty subtitle list.
type FilePhraseResult struct {
	FileID    string       `json:"id"`
	Subtitles []Subtitle   `json:"subtitles"`
	BestMatch *PhraseMatch `json:"best_match,omitempty"`
}

// Matched reports whether a phrase was accepted for the file.
func (r FilePhraseResult) Matched() bool {
	return r.BestMatch != nil
}

// NoPhraseMatch is the result for a rejected or unmatched file.
func NoPhraseMatch(fileID string) FilePhraseResult {
	return FilePhraseResult{FileID: fileID, Subtitles: []Subtitle{}}
}

// ActionMatch is the best action found for a file.
type ActionMatch struct {
	ActionID   string  `json:"action_id"`
	Similarity float64 `json:"similarity"`
}

// FileActionResult is the action matching outcome for one file.
type FileActionResult struct {
	FileID    string       `json:"file_id"`
	BestMatch *ActionMatch `json:"best_match,omitempty"`
}

// Matched reports whether an action was found for the file.
func (r FileActionResult) Matched() bool {
	return r.BestMatch != nil
}
