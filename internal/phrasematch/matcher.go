// Package phrasematch finds the script phrase spoken in a media file.
//
// Two strategies exist. The stream matcher aligns the whole file's phonetic
// stream against every phrase and is the system of record. The combination
// matcher scores subtitles one by one and groups neighbouring subtitles; it is
// kept as an alternate strategy with its own semantics.
package phrasematch

import (
	"log/slog"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/index"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/textnorm"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// Matcher matches one file against the ordered phrases of a script revision.
// idx may be nil, in which case every phrase is considered.
// Implementations never modify file or phrases.
type Matcher interface {
	Match(file model.MediaFile, phrases []*model.Phrase, idx *index.PhoneticIndex) model.FilePhraseResult
}

// New returns the matcher for settings.Strategy.
func New(settings config.MatcherSettings, enc phonetic.Encoder, logger *slog.Logger) (Matcher, error) {
	switch settings.Strategy {
	case config.StrategyStream:
		return NewStreamMatcher(settings, enc, logger), nil
	case config.StrategyCombination:
		return NewCombinationMatcher(settings, enc, logger), nil
	default:
		return nil, errors.NewUnknownStrategyError(settings.Strategy)
	}
}

// encodeDialogue returns the phonetic codes of the dialogue words of text.
func encodeDialogue(n *textnorm.Normalizer, enc phonetic.Encoder, text string) []string {
	words := n.DialogueWords(text)
	if len(words) == 0 {
		return nil
	}
	codes := make([]string, len(words))
	for i, w := range words {
		codes[i] = enc.Encode(w)
	}
	return codes
}

// candidatePositions returns the phrase positions worth aligning against codes.
func candidatePositions(idx *index.PhoneticIndex, codes []string, phraseCount int) []int {
	if idx != nil {
		return idx.Candidates(codes)
	}
	positions := make([]int, phraseCount)
	for i := range positions {
		positions[i] = i
	}
	return positions
}
