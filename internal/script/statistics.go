package script

import (
	"sort"

	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// Statistics aggregates the classifier output over the snapshot's actions:
// class frequencies, synonym keyword counts and unused word counts.
func (s *Snapshot) Statistics() model.ClassStatistics {
	stats := model.ClassStatistics{
		ScriptID:      s.ScriptID,
		Revision:      s.Revision,
		ActionCount:   len(s.Actions),
		Classes:       []model.ClassFrequency{},
		SynonymCounts: []model.SynonymCount{},
		UnusedWords:   []model.WordCount{},
	}

	classes := make(map[string]int)
	type synonymKey struct{ class, keyword string }
	synonyms := make(map[synonymKey]int)
	unused := make(map[string]int)

	for _, a := range s.Actions {
		for _, c := range a.Classes {
			classes[c]++
		}
		for _, sc := range a.SynonymCounts {
			synonyms[synonymKey{sc.Class, sc.Keyword}] += sc.Count
		}
		for w, n := range a.UnusedWordCounts {
			unused[w] += n
		}
	}

	for c, n := range classes {
		stats.Classes = append(stats.Classes, model.ClassFrequency{Class: c, Frequency: n})
	}
	sort.Slice(stats.Classes, func(i, j int) bool {
		a, b := stats.Classes[i], stats.Classes[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Class < b.Class
	})

	for k, n := range synonyms {
		stats.SynonymCounts = append(stats.SynonymCounts, model.SynonymCount{Class: k.class, Keyword: k.keyword, Count: n})
	}
	sort.Slice(stats.SynonymCounts, func(i, j int) bool {
		a, b := stats.SynonymCounts[i], stats.SynonymCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Keyword < b.Keyword
	})

	for w, n := range unused {
		stats.UnusedWords = append(stats.UnusedWords, model.WordCount{Word: w, Count: n})
	}
	sort.Slice(stats.UnusedWords, func(i, j int) bool {
		a, b := stats.UnusedWords[i], stats.UnusedWords[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Word < b.Word
	})

	return stats
}
