package phrasematch

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/index"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

func TestStreamMatcherWholePhraseAcrossSubtitles(t *testing.T) {
	coder := phonetic.NewCoder()
	phrases := []*model.Phrase{
		phrase(t, coder, "weather", weatherLine),
		phrase(t, coder, "forest", forestLine),
	}
	file := model.MediaFile{ID: "f1", Subtitles: subtitles(
		"Мы пойдём завтра",
		"(шум) утром в лес",
		"за грибами и ягодами!",
		"Камера, мотор",
		"MUSIC",
	)}

	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, nil)
	res := m.Match(file, phrases, index.NewPhoneticIndex(phrases))

	require.True(t, res.Matched())
	assert.Equal(t, "f1", res.FileID)
	assert.Equal(t, "forest", res.BestMatch.PhraseID)
	assert.Equal(t, 1.0, res.BestMatch.Accuracy)

	require.Len(t, res.Subtitles, 1)
	got := res.Subtitles[0]
	assert.Equal(t, "Мы пойдём завтра (шум) утром в лес за грибами и ягодами!", got.Text)
	assert.Equal(t, 0.0, got.StartTime)
	assert.InDelta(t, 2.9, got.EndTime, 1e-9)
	assert.Equal(t, "forest", got.PhraseID)
	require.NotNil(t, got.MatchAccuracy)
	assert.Equal(t, 1.0, *got.MatchAccuracy)
	require.Len(t, got.BestMatches, 1)
	assert.Equal(t, 10, got.BestMatches[0].MatchingCount)

	assert.Empty(t, file.Subtitles[0].PhraseID, "input subtitles are not modified")
}

func TestStreamMatcherRejection(t *testing.T) {
	coder := phonetic.NewCoder()
	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, nil)

	t.Run("short run with low accuracy is rejected", func(t *testing.T) {
		phrases := []*model.Phrase{phrase(t, coder, "p20", words(20))}
		file := model.MediaFile{ID: "f", Subtitles: subtitles(words(5))}

		res := m.Match(file, phrases, nil)
		assert.False(t, res.Matched())
		assert.NotNil(t, res.Subtitles)
		assert.Empty(t, res.Subtitles)
	})

	t.Run("long run is accepted despite low accuracy", func(t *testing.T) {
		phrases := []*model.Phrase{phrase(t, coder, "p40", words(40))}
		file := model.MediaFile{ID: "f", Subtitles: subtitles(words(10))}

		res := m.Match(file, phrases, nil)
		require.True(t, res.Matched())
		assert.Equal(t, "p40", res.BestMatch.PhraseID)
		assert.InDelta(t, 0.25, res.BestMatch.Accuracy, 1e-9)
	})

	t.Run("high accuracy is accepted despite a short run", func(t *testing.T) {
		phrases := []*model.Phrase{phrase(t, coder, "p4", words(4))}
		file := model.MediaFile{ID: "f", Subtitles: subtitles(words(2))}

		res := m.Match(file, phrases, nil)
		require.True(t, res.Matched())
		assert.InDelta(t, 0.5, res.BestMatch.Accuracy, 1e-9)
	})
}

func TestStreamMatcherEmptyPhraseNeverWins(t *testing.T) {
	coder := phonetic.NewCoder()
	empty := phrase(t, coder, "empty", "")
	annotated := phrase(t, coder, "laugh", "[смех]")
	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, nil)

	file := model.MediaFile{ID: "f", Subtitles: subtitles("[смех]", words(3))}

	res := m.Match(file, []*model.Phrase{empty, annotated}, nil)
	assert.False(t, res.Matched())

	real := phrase(t, coder, "real", words(3))
	res = m.Match(file, []*model.Phrase{empty, annotated, real}, nil)
	require.True(t, res.Matched())
	assert.Equal(t, "real", res.BestMatch.PhraseID)
}

func TestStreamMatcherFirstPhraseWinsTies(t *testing.T) {
	coder := phonetic.NewCoder()
	phrases := []*model.Phrase{
		phrase(t, coder, "first", words(6)),
		phrase(t, coder, "second", words(6)),
	}
	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, nil)

	res := m.Match(model.MediaFile{ID: "f", Subtitles: subtitles(words(6))}, phrases, index.NewPhoneticIndex(phrases))
	require.True(t, res.Matched())
	assert.Equal(t, "first", res.BestMatch.PhraseID)
}

func TestStreamMatcherLongestCrossWins(t *testing.T) {
	coder := phonetic.NewCoder()
	short := phrase(t, coder, "short", words(3))
	long := phrase(t, coder, "long", words(12))
	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, nil)

	res := m.Match(model.MediaFile{ID: "f", Subtitles: subtitles(words(12))}, []*model.Phrase{short, long}, nil)
	require.True(t, res.Matched())
	assert.Equal(t, "long", res.BestMatch.PhraseID, "cross length decides, not accuracy")
}

func TestStreamMatcherFoldsSegmentsSharingASubtitle(t *testing.T) {
	coder := phonetic.NewCoder()
	p := phrase(t, coder, "p8", words(8))

	settings := config.DefaultMatcherSettings()
	settings.AccuracyThreshold = 0.2
	m := NewStreamMatcher(settings, coder, nil)

	// "шум" splits the run into two segments inside one subtitle
	file := model.MediaFile{ID: "f", Subtitles: subtitles("дом окно шум стол река", "ночь")}
	res := m.Match(file, []*model.Phrase{p}, nil)

	require.True(t, res.Matched())
	assert.InDelta(t, 0.25, res.BestMatch.Accuracy, 1e-9, "gap breaks the chain")

	require.Len(t, res.Subtitles, 1)
	got := res.Subtitles[0]
	assert.Equal(t, "дом окно шум стол река", got.Text)
	require.Len(t, got.BestMatches, 1)
	assert.Equal(t, 4, got.BestMatches[0].MatchingCount, "folded segments accumulate")
	assert.InDelta(t, 0.5, *got.MatchAccuracy, 1e-9)
}

func TestStreamMatcherSegmentsInSeparateSubtitles(t *testing.T) {
	coder := phonetic.NewCoder()
	p := phrase(t, coder, "p8", words(8))

	settings := config.DefaultMatcherSettings()
	settings.AccuracyThreshold = 0.2
	m := NewStreamMatcher(settings, coder, nil)

	file := model.MediaFile{ID: "f", Subtitles: subtitles("дом окно", "шум", "стол река")}
	res := m.Match(file, []*model.Phrase{p}, nil)

	require.True(t, res.Matched())
	require.Len(t, res.Subtitles, 2)
	assert.Equal(t, "дом окно", res.Subtitles[0].Text)
	assert.Equal(t, "стол река", res.Subtitles[1].Text)
	assert.Equal(t, 2.0, res.Subtitles[1].StartTime)
	assert.InDelta(t, 0.25, *res.Subtitles[1].MatchAccuracy, 1e-9)
}

func TestStreamMatcherIndexDoesNotChangeResults(t *testing.T) {
	coder := phonetic.NewCoder()
	phrases := []*model.Phrase{
		phrase(t, coder, "a", words(5)),
		phrase(t, coder, "b", forestLine),
		phrase(t, coder, "c", ""),
		phrase(t, coder, "d", weatherLine),
	}
	files := []model.MediaFile{
		{ID: "1", Subtitles: subtitles("Смотри какая", "погода сегодня хорошая")},
		{ID: "2", Subtitles: subtitles("мы пойдём", "в лес")},
		{ID: "3", Subtitles: subtitles("камера мотор")},
		{ID: "4", Subtitles: subtitles(words(5), forestLine)},
	}

	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, nil)
	idx := index.NewPhoneticIndex(phrases)
	for _, f := range files {
		assert.Equal(t, m.Match(f, phrases, nil), m.Match(f, phrases, idx), "file %s", f.ID)
	}
}

func TestStreamMatcherNoDialogue(t *testing.T) {
	coder := phonetic.NewCoder()
	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, nil)
	phrases := []*model.Phrase{phrase(t, coder, "a", words(5))}

	for _, f := range []model.MediaFile{
		{ID: "none"},
		{ID: "annotations", Subtitles: subtitles("[музыка]", "*смех*")},
		{ID: "latin", Subtitles: subtitles("Hello there")},
	} {
		res := m.Match(f, phrases, nil)
		assert.False(t, res.Matched(), f.ID)
		assert.Equal(t, f.ID, res.FileID)
	}
}

func TestStreamMatcherLogsRejectedExpectedPhrase(t *testing.T) {
	coder := phonetic.NewCoder()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := NewStreamMatcher(config.DefaultMatcherSettings(), coder, logger)
	phrases := []*model.Phrase{phrase(t, coder, "p20", words(20))}
	file := model.MediaFile{ID: "f9", Subtitles: subtitles(words(5)), ExpectedPhraseID: "p20"}

	res := m.Match(file, phrases, nil)
	assert.False(t, res.Matched())

	out := buf.String()
	assert.Contains(t, out, "expected phrase rejected")
	assert.Contains(t, out, "file_id=f9")
	assert.Contains(t, out, "cross_length=5")
	assert.Contains(t, out, "word_count=20")
}

func TestNewMatcher(t *testing.T) {
	coder := phonetic.NewCoder()

	settings := config.DefaultMatcherSettings()
	m, err := New(settings, coder, nil)
	require.NoError(t, err)
	assert.IsType(t, &StreamMatcher{}, m)

	settings.Strategy = config.StrategyCombination
	m, err = New(settings, coder, nil)
	require.NoError(t, err)
	assert.IsType(t, &CombinationMatcher{}, m)

	settings.Strategy = "dtw"
	_, err = New(settings, coder, nil)
	assert.ErrorIs(t, err, errors.ErrUnknownStrategy)
}
