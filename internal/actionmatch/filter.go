// Package actionmatch ranks script actions against the content tags detected
// in a media file.
package actionmatch

import (
	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

type tagSet map[string]struct{}

func newTagSet(tags []string) tagSet {
	s := make(tagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s tagSet) has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// CandidateFilter pre-filters actions by the reserved taxonomies.
type CandidateFilter struct {
	daytime       tagSet
	location      tagSet
	macroLocation tagSet
}

// NewCandidateFilter builds a filter over the global tag sets of tax.
func NewCandidateFilter(tax config.Taxonomy) *CandidateFilter {
	return &CandidateFilter{
		daytime:       newTagSet(tax.Daytime),
		location:      newTagSet(tax.Location),
		macroLocation: newTagSet(tax.MacroLocation),
	}
}

// Reserved reports whether tag belongs to any reserved taxonomy.
func (f *CandidateFilter) Reserved(tag string) bool {
	return f.daytime.has(tag) || f.location.has(tag) || f.macroLocation.has(tag)
}

// Filter keeps the actions compatible with the file's tags on both the daytime
// and the location taxonomy. When nothing survives, the location check is
// relaxed to the macro-location taxonomy. Action order is preserved.
func (f *CandidateFilter) Filter(fileTags []string, actions []model.Action) []model.Action {
	file := newTagSet(fileTags)

	var candidates []model.Action
	for _, a := range actions {
		if compatible(file, a, f.daytime) && compatible(file, a, f.location) {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) > 0 {
		return candidates
	}

	for _, a := range actions {
		if compatible(file, a, f.daytime) && compatible(file, a, f.macroLocation) {
			candidates = append(candidates, a)
		}
	}
	return candidates
}

// compatible is true when the taxonomy is empty, when file and action share a
// tag of it, or when the action carries none of its tags.
func compatible(file tagSet, a model.Action, taxonomy tagSet) bool {
	if len(taxonomy) == 0 {
		return true
	}
	tagged := false
	for _, c := range a.Classes {
		if !taxonomy.has(c) {
			continue
		}
		if file.has(c) {
			return true
		}
		tagged = true
	}
	return !tagged
}
