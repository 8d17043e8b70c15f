package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherSettingsApplyDefaults(t *testing.T) {
	var s MatcherSettings
	s.ApplyDefaults()

	assert.Equal(t, StrategyStream, s.Strategy)
	assert.Equal(t, 0.33, s.AccuracyThreshold)
	assert.Equal(t, 8, s.MinCrossLength)
	assert.Equal(t, 2, s.ContinuityTolerance)
	assert.Equal(t, 4, s.MaxGroupSize)
	assert.Equal(t, ScriptCyrillic, s.TargetScript)
	assert.Equal(t, 4, s.Workers)
	assert.Empty(t, s.Validate())
}

func TestMatcherSettingsKeepsExplicitValues(t *testing.T) {
	s := MatcherSettings{
		Strategy:          StrategyCombination,
		AccuracyThreshold: 0.5,
		MinCrossLength:    3,
		MaxGroupSize:      -1,
		TargetScript:      ScriptLatin,
		Workers:           1,
	}
	s.ApplyDefaults()

	assert.Equal(t, StrategyCombination, s.Strategy)
	assert.Equal(t, 0.5, s.AccuracyThreshold)
	assert.Equal(t, 3, s.MinCrossLength)
	assert.Equal(t, -1, s.MaxGroupSize)
	assert.Equal(t, ScriptLatin, s.TargetScript)
	assert.Equal(t, 1, s.Workers)
}

func TestMatcherSettingsValidate(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(s *MatcherSettings)
		expectedErrors int
	}{
		{"defaults are valid", func(s *MatcherSettings) {}, 0},
		{"unknown strategy", func(s *MatcherSettings) { s.Strategy = "dtw" }, 1},
		{"threshold above one", func(s *MatcherSettings) { s.AccuracyThreshold = 1.5 }, 1},
		{"negative cross length", func(s *MatcherSettings) { s.MinCrossLength = -1 }, 1},
		{"zero tolerance", func(s *MatcherSettings) { s.ContinuityTolerance = -3 }, 1},
		{"unknown script", func(s *MatcherSettings) { s.TargetScript = "greek" }, 1},
		{"several problems", func(s *MatcherSettings) {
			s.Strategy = "x"
			s.TargetScript = "y"
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultMatcherSettings()
			tt.mutate(&s)
			problems := s.Validate()
			assert.Len(t, problems, tt.expectedErrors, "problems: %v", problems)
		})
	}
}

func TestTaxonomyDefaultsAndValidation(t *testing.T) {
	var tax Taxonomy
	tax.ApplyDefaults()

	assert.Equal(t, []string{"morning", "day", "evening", "night"}, tax.Daytime)
	assert.Empty(t, tax.Location)
	assert.Equal(t, []string{"nature", "interior"}, tax.MacroLocation)
	assert.Empty(t, tax.Validate())

	explicit := Taxonomy{Daytime: []string{}, Location: []string{"kitchen"}, MacroLocation: []string{"interior"}}
	explicit.ApplyDefaults()
	assert.Empty(t, explicit.Daytime, "explicitly empty daytime list must be kept")

	conflicting := Taxonomy{
		Daytime:       []string{"night", " "},
		Location:      []string{"night"},
		MacroLocation: []string{"nature"},
	}
	problems := conflicting.Validate()
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "empty")
	assert.Contains(t, problems[1], "'night'")
}

func TestParseAppConfig(t *testing.T) {
	data := []byte(`
server:
  port: "9000"
  data_dir: /tmp/roughcut
log:
  level: debug
  format: json
matching:
  strategy: combination
  accuracy_threshold: 0.5
taxonomy:
  location: [kitchen, forest]
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/tmp/roughcut", cfg.Server.DataDir)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, StrategyCombination, cfg.Matching.Strategy)
	assert.Equal(t, 0.5, cfg.Matching.AccuracyThreshold)
	assert.Equal(t, 8, cfg.Matching.MinCrossLength)
	assert.Equal(t, []string{"kitchen", "forest"}, cfg.Taxonomy.Location)
	assert.Equal(t, []string{"nature", "interior"}, cfg.Taxonomy.MacroLocation)
}

func TestParseAppConfigRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("matching:\n  strategy: guess\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guess")

	_, err = Parse([]byte("unknown_section: true\n"))
	require.Error(t, err)
}

func TestParseEmptyConfigUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "auto", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/roughcut.yaml")
	require.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StrategyStream, cfg.Matching.Strategy)
}
