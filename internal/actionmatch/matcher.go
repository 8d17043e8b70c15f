package actionmatch

import (
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/tfidf"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// Matcher picks the action most similar to a file's tags.
type Matcher struct {
	filter *CandidateFilter
}

// NewMatcher creates a matcher using filter for candidate selection.
func NewMatcher(filter *CandidateFilter) *Matcher {
	return &Matcher{filter: filter}
}

// BestMatch vectorizes the file's tags with corpus and returns the candidate
// with the highest cosine similarity to its TF-IDF vector. The first action
// wins ties. No candidates, or a best similarity of zero, is no match.
func (m *Matcher) BestMatch(file model.MediaFile, actions []model.Action, corpus *tfidf.Corpus) model.FileActionResult {
	result := model.FileActionResult{FileID: file.ID}

	candidates := m.filter.Filter(file.Classes, actions)
	if len(candidates) == 0 {
		return result
	}

	query := corpus.Vectorize(file.Classes)

	var (
		best    *model.Action
		bestSim float64
	)
	for i := range candidates {
		sim := tfidf.Cosine(query, candidates[i].TFIDF)
		if sim > bestSim {
			best = &candidates[i]
			bestSim = sim
		}
	}

	if best == nil {
		return result
	}
	result.BestMatch = &model.ActionMatch{ActionID: best.ActionID, Similarity: bestSim}
	return result
}
