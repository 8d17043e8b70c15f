package index

// PostingEntry records that a phrase contains a phonetic code.
type PostingEntry struct {
	Phrase        int // Position of the phrase in the script's ordered phrase list
	FirstPosition int // Index of the code's first occurrence in the phrase's phonetic sequence
	Occurrences   int // How many times the code appears in the phrase
}

// PostingList is a slice of PostingEntry sorted by phrase position ascending.
type PostingList []PostingEntry
