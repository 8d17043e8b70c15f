// Package config provides configuration structures for the rough-cut matcher.
// It defines matcher tuning, the reserved tag taxonomies, and the application
// config file loaded by the server and CLI.
package config

import (
	"fmt"
	"strings"
)

// Phrase matching strategies.
const (
	// StrategyStream aligns the concatenated phonetic stream of a file against each phrase.
	// It is the system of record.
	StrategyStream = "stream"
	// StrategyCombination scores individual subtitles word by word and groups neighbours.
	StrategyCombination = "combination"
)

// Target scripts for dialogue filtering.
const (
	ScriptCyrillic = "cyrillic"
	ScriptLatin    = "latin"
)

// MatcherSettings tunes the phrase matchers and the batch fan-out.
//
// A file is rejected by the stream matcher only when both thresholds fail:
// its longest chained run is shorter than MinCrossLength AND its accuracy is
// below AccuracyThreshold.
type MatcherSettings struct {
	Strategy            string  `json:"strategy" yaml:"strategy"`                         // "stream" (default) or "combination"
	AccuracyThreshold   float64 `json:"accuracy_threshold" yaml:"accuracy_threshold"`     // Relative rejection threshold (e.g., 0.33)
	MinCrossLength      int     `json:"min_cross_length" yaml:"min_cross_length"`         // Absolute rejection threshold in words (e.g., 8)
	ContinuityTolerance int     `json:"continuity_tolerance" yaml:"continuity_tolerance"` // Max gap difference (exclusive) for chaining segments
	MaxGroupSize        int     `json:"max_group_size" yaml:"max_group_size"`             // Longest subtitle group the combination matcher considers; negative means unbounded
	TargetScript        string  `json:"target_script" yaml:"target_script"`               // Alphabet a subtitle must contain to count as dialogue
	Workers             int     `json:"workers" yaml:"workers"`                           // Files matched concurrently per batch
}

// DefaultMatcherSettings returns settings with every default applied.
func DefaultMatcherSettings() MatcherSettings {
	var s MatcherSettings
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to unset matcher settings
func (s *MatcherSettings) ApplyDefaults() {
	if s.Strategy == "" {
		s.Strategy = StrategyStream
	}
	if s.AccuracyThreshold == 0 {
		s.AccuracyThreshold = 0.33
	}
	if s.MinCrossLength == 0 {
		s.MinCrossLength = 8
	}
	if s.ContinuityTolerance == 0 {
		s.ContinuityTolerance = 2
	}
	if s.MaxGroupSize == 0 {
		s.MaxGroupSize = 4
	}
	if s.TargetScript == "" {
		s.TargetScript = ScriptCyrillic
	}
	if s.Workers <= 0 {
		s.Workers = 4
	}
}

// Validate returns a list of problems with the settings. An empty list means valid.
func (s *MatcherSettings) Validate() []string {
	var problems []string

	if !IsKnownStrategy(s.Strategy) {
		problems = append(problems, "Invalid strategy '"+s.Strategy+"' (must be 'stream' or 'combination')")
	}
	if s.AccuracyThreshold < 0 || s.AccuracyThreshold > 1 {
		problems = append(problems, fmt.Sprintf("accuracy_threshold %.2f must be within [0, 1]", s.AccuracyThreshold))
	}
	if s.MinCrossLength < 0 {
		problems = append(problems, "min_cross_length cannot be negative")
	}
	if s.ContinuityTolerance < 1 {
		problems = append(problems, "continuity_tolerance must be at least 1")
	}
	if s.TargetScript != ScriptCyrillic && s.TargetScript != ScriptLatin {
		problems = append(problems, "Invalid target_script '"+s.TargetScript+"' (must be 'cyrillic' or 'latin')")
	}

	return problems
}

// IsKnownStrategy reports whether name selects a phrase matcher.
func IsKnownStrategy(name string) bool {
	return name == StrategyStream || name == StrategyCombination
}

// Taxonomy lists the global tag sets of the reserved taxonomies.
// Reserved tags filter action candidates; they never contribute to similarity.
type Taxonomy struct {
	Daytime       []string `json:"daytime" yaml:"daytime"`
	Location      []string `json:"location" yaml:"location"`
	MacroLocation []string `json:"macro_location" yaml:"macro_location"`
}

// DefaultTaxonomy returns the daytime and macro-location tags produced by the
// upstream classifier. The location taxonomy is left empty, which disables the
// location check until a dictionary is configured.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Daytime:       []string{"morning", "day", "evening", "night"},
		Location:      []string{},
		MacroLocation: []string{"nature", "interior"},
	}
}

// ApplyDefaults fills the daytime and macro-location sets when they are unset.
// An explicitly empty list is kept as configured.
func (t *Taxonomy) ApplyDefaults() {
	defaults := DefaultTaxonomy()
	if t.Daytime == nil {
		t.Daytime = defaults.Daytime
	}
	if t.Location == nil {
		t.Location = defaults.Location
	}
	if t.MacroLocation == nil {
		t.MacroLocation = defaults.MacroLocation
	}
}

// Validate reports empty tags and tags claimed by more than one taxonomy.
func (t *Taxonomy) Validate() []string {
	var problems []string
	owner := make(map[string]string)

	check := func(name string, tags []string) {
		for _, tag := range tags {
			if strings.TrimSpace(tag) == "" {
				problems = append(problems, "Tag cannot be empty or whitespace-only in "+name)
				continue
			}
			if prev, ok := owner[tag]; ok {
				problems = append(problems, "Tag '"+tag+"' appears in both "+prev+" and "+name)
				continue
			}
			owner[tag] = name
		}
	}

	check("daytime", t.Daytime)
	check("location", t.Location)
	check("macro_location", t.MacroLocation)

	return problems
}
