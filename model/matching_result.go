package model

import "encoding/json"

// MatchingResult counts how many words of a phrase were matched.
// The phrase is shared with the script state, not owned.
type MatchingResult struct {
	Phrase        *Phrase
	MatchingCount int
}

// Accuracy returns MatchingCount / Phrase.WordCount. The second value is false
// when the phrase has no words and the ratio is undefined.
func (m MatchingResult) Accuracy() (float64, bool) {
	if m.Phrase == nil || m.Phrase.WordCount == 0 {
		return 0, false
	}
	return float64(m.MatchingCount) / float64(m.Phrase.WordCount), true
}

// PhraseID returns the id of the matched phrase or "" when unset.
func (m MatchingResult) PhraseID() string {
	if m.Phrase == nil {
		return ""
	}
	return m.Phrase.PhraseID
}

// MarshalJSON writes the phrase by id only.
func (m MatchingResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PhraseID      string `json:"phrase_id"`
		MatchingCount int    `json:"matching_count"`
	}{m.PhraseID(), m.MatchingCount})
}

// MergeMatchesMax keeps, per phrase, the result with the highest matching count.
// Phrases keep the order of their first appearance.
func MergeMatchesMax(groups ...[]MatchingResult) []MatchingResult {
	return mergeMatches(groups, func(existing, next int) int {
		if next > existing {
			return next
		}
		return existing
	})
}

// MergeMatchesSum adds matching counts per phrase. It is used only when
// consecutive segments of one continuity chain are folded together.
func MergeMatchesSum(groups ...[]MatchingResult) []MatchingResult {
	return mergeMatches(groups, func(existing, next int) int { return existing + next })
}

func mergeMatches(groups [][]MatchingResult, combine func(existing, next int) int) []MatchingResult {
	var merged []MatchingResult
	position := make(map[string]int)
	for _, group := range groups {
		for _, m := range group {
			id := m.PhraseID()
			if i, ok := position[id]; ok {
				merged[i].MatchingCount = combine(merged[i].MatchingCount, m.MatchingCount)
				continue
			}
			position[id] = len(merged)
			merged = append(merged, m)
		}
	}
	return merged
}

// TopMatch returns the result with the highest matching count; the first wins ties.
func TopMatch(matches []MatchingResult) (MatchingResult, bool) {
	if len(matches) == 0 {
		return MatchingResult{}, false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.MatchingCount > best.MatchingCount {
			best = m
		}
	}
	return best, true
}
