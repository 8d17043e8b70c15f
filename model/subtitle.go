package model

import (
	"fmt"
	"strings"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
)

// Subtitle is one transcribed line with its time range. Match fields are empty
// on input and filled on the copies returned by the matchers; inputs are never
// modified.
type Subtitle struct {
	Text          string           `json:"text"`
	StartTime     float64          `json:"start_time"`
	EndTime       float64          `json:"end_time"`
	PhraseID      string           `json:"phrase_id"`
	MatchAccuracy *float64         `json:"match_accuracy"`
	BestMatches   []MatchingResult `json:"best_matches,omitempty"`
}

// NewSubtitle builds a validated subtitle.
func NewSubtitle(text string, start, end float64) (Subtitle, error) {
	s := Subtitle{Text: text, StartTime: start, EndTime: end}
	if err := s.Validate(); err != nil {
		return Subtitle{}, err
	}
	return s, nil
}

// Validate checks the time range of the subtitle.
func (s Subtitle) Validate() error {
	if s.StartTime < 0 {
		return errors.NewValidationError("start_time", fmt.Sprintf("start_time %.3f cannot be negative", s.StartTime))
	}
	if s.EndTime < s.StartTime {
		return errors.NewValidationError("end_time", fmt.Sprintf("end_time %.3f is before start_time %.3f", s.EndTime, s.StartTime))
	}
	return nil
}

// Accuracy returns the highest defined accuracy among BestMatches.
func (s Subtitle) Accuracy() (float64, bool) {
	var best float64
	found := false
	for _, m := range s.BestMatches {
		if acc, ok := m.Accuracy(); ok && (!found || acc > best) {
			best = acc
			found = true
		}
	}
	return best, found
}

// Tagged returns a copy of s assigned to phrase with the given accuracy and matches.
func (s Subtitle) Tagged(phraseID string, accuracy float64, matches []MatchingResult) Subtitle {
	out := s
	out.PhraseID = phraseID
	acc := accuracy
	out.MatchAccuracy = &acc
	out.BestMatches = append([]MatchingResult(nil), matches...)
	return out
}

// MergeSubtitles joins subtitles into one: texts are space-joined in order,
// the time range spans all of them and BestMatches keeps, per phrase, the
// highest matching count among the originals. Merging nothing yields a zero Subtitle.
func MergeSubtitles(subs []Subtitle) Subtitle {
	if len(subs) == 0 {
		return Subtitle{}
	}

	texts := make([]string, len(subs))
	matches := make([][]MatchingResult, len(subs))
	merged := Subtitle{StartTime: subs[0].StartTime, EndTime: subs[0].EndTime}
	for i, s := range subs {
		texts[i] = strings.TrimSpace(s.Text)
		matches[i] = s.BestMatches
		if s.StartTime < merged.StartTime {
			merged.StartTime = s.StartTime
		}
		if s.EndTime > merged.EndTime {
			merged.EndTime = s.EndTime
		}
	}
	merged.Text = strings.Join(texts, " ")
	merged.BestMatches = MergeMatchesMax(matches...)
	return merged
}
