package phrasematch

import (
	"log/slog"
	"strings"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/index"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/textnorm"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// CombinationMatcher scores every subtitle against every phrase word by word
// and looks for the contiguous subtitle group holding the most accurate match.
//
// Among all contiguous partitions of the subtitles, the winner is the first
// partition, in enumeration order, containing a group with the highest
// accuracy. Enumeration lists the all-singletons partition first, and the
// first partition containing a window [s, e] is singletons everywhere except
// that window. Windows are therefore ranked by start descending, then length
// ascending, after the singletons, which lets the matcher scan windows
// instead of enumerating partitions.
type CombinationMatcher struct {
	settings   config.MatcherSettings
	encoder    phonetic.Encoder
	normalizer *textnorm.Normalizer
	logger     *slog.Logger
}

// NewCombinationMatcher creates a combination matcher. A nil logger uses slog.Default().
func NewCombinationMatcher(settings config.MatcherSettings, enc phonetic.Encoder, logger *slog.Logger) *CombinationMatcher {
	settings.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &CombinationMatcher{
		settings:   settings,
		encoder:    enc,
		normalizer: textnorm.NewNormalizer(settings.TargetScript),
		logger:     logger.With("matcher", config.StrategyCombination),
	}
}

// window is a contiguous subtitle group [start, end] with its top match.
type window struct {
	start, end int
	top        model.MatchingResult
	accuracy   float64
}

// Match returns the phrase of the most accurate subtitle group, with every
// group of the winning partition re-scored against that phrase. Groups that
// share no words with it keep a zero count.
func (m *CombinationMatcher) Match(file model.MediaFile, phrases []*model.Phrase, idx *index.PhoneticIndex) model.FilePhraseResult {
	codes := make([][]string, len(file.Subtitles))
	var all []string
	for i, sub := range file.Subtitles {
		codes[i] = encodeDialogue(m.normalizer, m.encoder, sub.Text)
		all = append(all, codes[i]...)
	}

	positions := candidatePositions(idx, all, len(phrases))
	perSubtitle := make([][]model.MatchingResult, len(file.Subtitles))
	for i := range file.Subtitles {
		perSubtitle[i] = subtitleMatches(codes[i], phrases, positions)
	}

	win, ok := bestWindow(perSubtitle, m.settings.MaxGroupSize)
	if !ok {
		return model.NoPhraseMatch(file.ID)
	}

	winner := win.top.Phrase
	if strings.TrimSpace(textnorm.StripAnnotations(winner.PhraseText)) == "" {
		return model.NoPhraseMatch(file.ID)
	}
	target := m.phraseCodes(winner)

	var out []model.Subtitle
	rescore := func(lo, hi int) {
		var group []string
		for i := lo; i <= hi; i++ {
			group = append(group, codes[i]...)
		}
		run := longestRun(group, target)
		merged := model.MergeSubtitles(file.Subtitles[lo : hi+1])
		out = append(out, merged.Tagged(winner.PhraseID, crossAccuracy(run, winner.WordCount),
			[]model.MatchingResult{{Phrase: winner, MatchingCount: run}}))
	}
	for i := 0; i < len(file.Subtitles); {
		if i == win.start {
			rescore(win.start, win.end)
			i = win.end + 1
			continue
		}
		rescore(i, i)
		i++
	}

	m.logger.Debug("combination match",
		"file_id", file.ID,
		"phrase_id", winner.PhraseID,
		"group_start", win.start,
		"group_end", win.end,
		"accuracy", win.accuracy,
	)

	return model.FilePhraseResult{
		FileID:    file.ID,
		Subtitles: out,
		BestMatch: &model.PhraseMatch{PhraseID: winner.PhraseID, Accuracy: win.accuracy},
	}
}

// phraseCodes encodes the annotation-stripped spoken text of p.
func (m *CombinationMatcher) phraseCodes(p *model.Phrase) []string {
	words := textnorm.Words(textnorm.StripAnnotations(strings.ToLower(p.PhraseText)))
	target := make([]string, len(words))
	for i, w := range words {
		target[i] = m.encoder.Encode(w)
	}
	return target
}

// subtitleMatches returns, in phrase order, the longest run of codes in every
// candidate phrase that has one.
func subtitleMatches(codes []string, phrases []*model.Phrase, positions []int) []model.MatchingResult {
	if len(codes) == 0 {
		return nil
	}
	var matches []model.MatchingResult
	for _, pos := range positions {
		p := phrases[pos]
		if !p.Matchable() {
			continue
		}
		if run := longestRun(codes, p.PhoneticSequence); run > 0 {
			matches = append(matches, model.MatchingResult{Phrase: p, MatchingCount: run})
		}
	}
	return matches
}

// bestWindow scans singletons in index order, then windows of two or more
// subtitles by start descending and length ascending, and returns the first
// window with the highest accuracy. maxSize < 0 leaves windows unbounded.
func bestWindow(perSubtitle [][]model.MatchingResult, maxSize int) (window, bool) {
	n := len(perSubtitle)
	var (
		best  window
		found bool
	)
	consider := func(start, end int) {
		w, ok := scoreWindow(perSubtitle, start, end)
		if ok && (!found || w.accuracy > best.accuracy) {
			best = w
			found = true
		}
	}

	for i := 0; i < n; i++ {
		consider(i, i)
	}
	for start := n - 2; start >= 0; start-- {
		for end := start + 1; end < n; end++ {
			if maxSize >= 0 && end-start+1 > maxSize {
				break
			}
			consider(start, end)
		}
	}
	return best, found
}

// scoreWindow merges the matches of subtitles [start, end] by per-phrase
// maximum and scores the group by its highest-count match. Groups without a
// positive accuracy do not count.
func scoreWindow(perSubtitle [][]model.MatchingResult, start, end int) (window, bool) {
	top, ok := model.TopMatch(model.MergeMatchesMax(perSubtitle[start : end+1]...))
	if !ok {
		return window{}, false
	}
	acc, ok := top.Accuracy()
	if !ok || acc <= 0 {
		return window{}, false
	}
	return window{start: start, end: end, top: top, accuracy: acc}, true
}

// longestRun returns the longest run walkRuns finds.
func longestRun(words, phrase []string) int {
	var best int
	walkRuns(words, phrase, func(run int) {
		if run > best {
			best = run
		}
	})
	return best
}

// walkRuns walks words left to right, searching the remaining phrase codes
// for each one. The phrase cursor never rewinds. A hit extends the current run
// and moves the cursor past it; a word missing from the rest of the phrase
// closes the run. emit receives every closed run in order, including the
// final one, and never a zero.
func walkRuns(words, phrase []string, emit func(run int)) {
	var run, cursor int
	for _, w := range words {
		hit := -1
		for j := cursor; j < len(phrase); j++ {
			if phrase[j] == w {
				hit = j
				break
			}
		}
		if hit < 0 {
			if run > 0 {
				emit(run)
			}
			run = 0
			continue
		}
		run++
		cursor = hit + 1
	}
	if run > 0 {
		emit(run)
	}
}
