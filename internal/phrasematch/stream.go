package phrasematch

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/index"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/alignment"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/textnorm"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// StreamMatcher aligns a file's concatenated dialogue codes against each phrase.
type StreamMatcher struct {
	settings   config.MatcherSettings
	encoder    phonetic.Encoder
	normalizer *textnorm.Normalizer
	logger     *slog.Logger
}

// NewStreamMatcher creates a stream matcher. A nil logger uses slog.Default().
func NewStreamMatcher(settings config.MatcherSettings, enc phonetic.Encoder, logger *slog.Logger) *StreamMatcher {
	settings.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamMatcher{
		settings:   settings,
		encoder:    enc,
		normalizer: textnorm.NewNormalizer(settings.TargetScript),
		logger:     logger.With("matcher", config.StrategyStream),
	}
}

// stream is the file's dialogue as one code sequence. owner[i] is the index of
// the subtitle code i came from.
type stream struct {
	codes []string
	owner []int
}

func (m *StreamMatcher) buildStream(subs []model.Subtitle) stream {
	var s stream
	for i, sub := range subs {
		for _, code := range encodeDialogue(m.normalizer, m.encoder, sub.Text) {
			s.codes = append(s.codes, code)
			s.owner = append(s.owner, i)
		}
	}
	return s
}

// Match returns the phrase with the longest chained run in the file, or no
// match when the run fails both the absolute and the relative threshold.
func (m *StreamMatcher) Match(file model.MediaFile, phrases []*model.Phrase, idx *index.PhoneticIndex) model.FilePhraseResult {
	s := m.buildStream(file.Subtitles)
	defer m.explainExpected(file, phrases, s)

	var (
		best      *model.Phrase
		bestAlign alignment.Alignment
	)
	for _, pos := range candidatePositions(idx, s.codes, len(phrases)) {
		p := phrases[pos]
		if !p.Matchable() {
			continue
		}
		a := alignment.Align(s.codes, p, m.settings.ContinuityTolerance)
		if !a.HasMatch() {
			continue
		}
		if best == nil || a.MaxCrossLength > bestAlign.MaxCrossLength {
			best = p
			bestAlign = a
		}
	}

	if best == nil {
		return model.NoPhraseMatch(file.ID)
	}

	accuracy := crossAccuracy(bestAlign.MaxCrossLength, best.WordCount)
	if m.rejects(bestAlign.MaxCrossLength, accuracy) {
		return model.NoPhraseMatch(file.ID)
	}

	return model.FilePhraseResult{
		FileID:    file.ID,
		Subtitles: reconstruct(file.Subtitles, s.owner, best, bestAlign.Matched()),
		BestMatch: &model.PhraseMatch{PhraseID: best.PhraseID, Accuracy: accuracy},
	}
}

func (m *StreamMatcher) rejects(crossLength int, accuracy float64) bool {
	return crossLength < m.settings.MinCrossLength && accuracy < m.settings.AccuracyThreshold
}

func crossAccuracy(crossLength, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	return math.Min(float64(crossLength)/float64(wordCount), 1)
}

// piece is a run of subtitles produced from one or more matched segments.
type piece struct {
	lo, hi  int
	matches []model.MatchingResult
}

// reconstruct builds one merged subtitle per matched segment. Segments that
// share a subtitle are folded into one piece and their counts accumulate.
func reconstruct(subs []model.Subtitle, owner []int, phrase *model.Phrase, segments []alignment.Segment) []model.Subtitle {
	var pieces []piece
	for _, seg := range segments {
		lo, hi := owner[seg.Start], owner[seg.End]
		match := []model.MatchingResult{{Phrase: phrase, MatchingCount: seg.Length}}

		if n := len(pieces); n > 0 && lo <= pieces[n-1].hi {
			last := &pieces[n-1]
			if hi > last.hi {
				last.hi = hi
			}
			last.matches = model.MergeMatchesSum(last.matches, match)
			continue
		}
		pieces = append(pieces, piece{lo: lo, hi: hi, matches: match})
	}

	out := make([]model.Subtitle, 0, len(pieces))
	for _, pc := range pieces {
		merged := model.MergeSubtitles(subs[pc.lo : pc.hi+1])
		count := pc.matches[0].MatchingCount
		out = append(out, merged.Tagged(phrase.PhraseID, crossAccuracy(count, phrase.WordCount), pc.matches))
	}
	return out
}

// explainExpected logs, at debug level, why the phrase a file was expected to
// match failed the rejection thresholds.
func (m *StreamMatcher) explainExpected(file model.MediaFile, phrases []*model.Phrase, s stream) {
	if file.ExpectedPhraseID == "" || !m.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var expected *model.Phrase
	for _, p := range phrases {
		if p.PhraseID == file.ExpectedPhraseID {
			expected = p
			break
		}
	}
	if expected == nil {
		m.logger.Debug("expected phrase not in script", "file_id", file.ID, "phrase_id", file.ExpectedPhraseID)
		return
	}
	if !expected.Matchable() {
		m.logger.Debug("expected phrase has no spoken words", "file_id", file.ID, "phrase_id", expected.PhraseID)
		return
	}

	a := alignment.Align(s.codes, expected, m.settings.ContinuityTolerance)
	accuracy := crossAccuracy(a.MaxCrossLength, expected.WordCount)
	if !m.rejects(a.MaxCrossLength, accuracy) {
		return
	}

	segments := make([]string, 0, len(a.Segments))
	for _, seg := range a.Segments {
		var texts []string
		for i := s.owner[seg.Start]; i <= s.owner[seg.End]; i++ {
			texts = append(texts, strings.TrimSpace(file.Subtitles[i].Text))
		}
		segments = append(segments, "["+strconv.Itoa(seg.Length)+"] "+strings.Join(texts, " "))
	}

	m.logger.Debug("expected phrase rejected",
		"file_id", file.ID,
		"phrase_id", expected.PhraseID,
		"accuracy", accuracy,
		"cross_length", a.MaxCrossLength,
		"word_count", expected.WordCount,
		"segments", segments,
	)
}
