package index

import (
	"sort"

	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// PhoneticIndex maps a phonetic code to the phrases that contain it.
// It is built once per script revision and is read-only afterwards, so it
// needs no locking.
type PhoneticIndex struct {
	postings map[string]PostingList
	phrases  int
}

// NewPhoneticIndex indexes phrases by position. Phrases without words are not
// indexed and can never be returned as candidates.
func NewPhoneticIndex(phrases []*model.Phrase) *PhoneticIndex {
	idx := &PhoneticIndex{
		postings: make(map[string]PostingList),
		phrases:  len(phrases),
	}

	for pos, p := range phrases {
		if p == nil || !p.Matchable() {
			continue
		}
		counts := make(map[string]int, len(p.PhoneticSequence))
		for _, code := range p.PhoneticSequence {
			counts[code]++
		}
		for code, n := range counts {
			first, _ := p.FirstIndex(code)
			idx.postings[code] = append(idx.postings[code], PostingEntry{
				Phrase:        pos,
				FirstPosition: first,
				Occurrences:   n,
			})
		}
	}
	return idx
}

// Postings returns the posting list of code, nil when no phrase contains it.
func (idx *PhoneticIndex) Postings(code string) PostingList {
	return idx.postings[code]
}

// Terms returns the number of distinct indexed codes.
func (idx *PhoneticIndex) Terms() int {
	return len(idx.postings)
}

// Candidates returns, in ascending order, the positions of every phrase that
// shares at least one code with codes.
func (idx *PhoneticIndex) Candidates(codes []string) []int {
	seen := make(map[int]struct{})
	for _, code := range codes {
		for _, entry := range idx.postings[code] {
			seen[entry.Phrase] = struct{}{}
		}
	}

	positions := make([]int, 0, len(seen))
	for pos := range seen {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}
