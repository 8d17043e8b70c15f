// Package testutil provides fixtures shared by tests across packages.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/engine"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/logging"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// Dialogue lines used by the sample script.
const (
	ForestLine  = "Мы пойдём завтра утром в лес за грибами и ягодами"
	WeatherLine = "Смотри, какая погода сегодня хорошая"
)

// BaseTime is the last_update of every action in SampleScript.
var BaseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// CreateTestEngine creates an in-memory engine that is closed when the test ends.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return CreateTestEngineWithDir(t, "")
}

// CreateTestEngineWithDir creates an engine persisting into dataDir.
func CreateTestEngineWithDir(t *testing.T, dataDir string) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Options{
		DataDir:  dataDir,
		Matching: config.DefaultMatcherSettings(),
		Taxonomy: config.DefaultTaxonomy(),
		Logger:   logging.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

// SampleScript returns a script with three phrases (one of them
// annotation-only) and three actions.
func SampleScript(scriptID string) model.ScriptDefinition {
	return model.ScriptDefinition{
		ScriptID: scriptID,
		Phrases: []model.PhraseDefinition{
			{PhraseID: "p1", FullText: "ИВАН: " + ForestLine, PhraseText: ForestLine},
			{PhraseID: "p2", FullText: "МАРИЯ: " + WeatherLine, PhraseText: WeatherLine},
			{PhraseID: "p3", FullText: "ИВАН: (молчит)", PhraseText: "(молчит)"},
		},
		Actions: []model.ActionDefinition{
			{
				ActionID:   "a1",
				FullText:   "Утро. Иван идёт по лесу среди деревьев.",
				LastUpdate: BaseTime,
				Classes:    []string{"morning", "nature", "forest", "person", "tree", "2 tree"},
				SynonymCounts: []model.SynonymCount{
					{Class: "tree", Keyword: "деревьев", Count: 1},
					{Class: "forest", Keyword: "лесу", Count: 1},
				},
				UnusedWordCounts: map[string]int{"среди": 1},
			},
			{
				ActionID:   "a2",
				FullText:   "Вечер. Мария пьёт чай на кухне.",
				LastUpdate: BaseTime,
				Classes:    []string{"evening", "interior", "kitchen", "person", "cup"},
				SynonymCounts: []model.SynonymCount{
					{Class: "cup", Keyword: "чай", Count: 1},
				},
				UnusedWordCounts: map[string]int{"пьёт": 1},
			},
			{
				ActionID:   "a3",
				FullText:   "Ночь. Машина едет через лес.",
				LastUpdate: BaseTime,
				Classes:    []string{"night", "nature", "forest", "car"},
				SynonymCounts: []model.SynonymCount{
					{Class: "forest", Keyword: "лес", Count: 1},
				},
				UnusedWordCounts: map[string]int{"через": 1},
			},
		},
	}
}

// Subtitles builds one subtitle per text, one second apart.
func Subtitles(texts ...string) []model.Subtitle {
	subs := make([]model.Subtitle, len(texts))
	for i, text := range texts {
		subs[i] = model.Subtitle{Text: text, StartTime: float64(i), EndTime: float64(i) + 0.9}
	}
	return subs
}

// ForestFile is a file whose dialogue speaks ForestLine over two subtitles.
func ForestFile(id string) model.MediaFile {
	return model.MediaFile{ID: id, Subtitles: Subtitles("Мы пойдём завтра утром", "в лес за грибами и ягодами")}
}

// MorningForestFile is a file whose footage matches action a1.
func MorningForestFile(id string) model.MediaFile {
	return model.MediaFile{ID: id, Classes: []string{"morning", "nature", "forest", "tree"}}
}
