package model

// ClassFrequency is how many times a class tag occurs across all actions.
type ClassFrequency struct {
	Class     string `json:"class"`
	Frequency int    `json:"frequency"`
}

// WordCount is an aggregated count of a word the classifier could not map to a class.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ClassStatistics summarizes the classifier output over a script's actions.
// Every list is sorted by count descending, then by name.
type ClassStatistics struct {
	ScriptID      string           `json:"script_id"`
	Revision      string           `json:"revision"`
	ActionCount   int              `json:"action_count"`
	Classes       []ClassFrequency `json:"classes"`
	SynonymCounts []SynonymCount   `json:"synonym_counts"`
	UnusedWords   []WordCount      `json:"unused_words"`
}
