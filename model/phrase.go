package model

import (
	"strings"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/textnorm"
)

// PhraseDefinition is a scripted line as delivered by script ingestion.
// PhraseText is the spoken part and may be empty or annotation-only.
type PhraseDefinition struct {
	PhraseID   string `json:"phrase_id"`
	FullText   string `json:"text"`
	PhraseText string `json:"phrase_text"`
}

// Validate checks the required fields of a phrase definition.
func (d PhraseDefinition) Validate() error {
	if strings.TrimSpace(d.PhraseID) == "" {
		return errors.NewValidationError("phrase_id", "phrase_id is required")
	}
	if strings.TrimSpace(d.FullText) == "" {
		return errors.NewValidationError("text", "text is required for phrase '"+d.PhraseID+"'")
	}
	return nil
}

// Phrase is the derived, read-only form of a PhraseDefinition.
// A phrase with an empty PhoneticSequence is valid and never matches anything.
type Phrase struct {
	PhraseID         string   `json:"phrase_id"`
	FullText         string   `json:"text"`
	PhraseText       string   `json:"phrase_text"`
	PhoneticSequence []string `json:"-"`
	WordCount        int      `json:"word_count"`

	firstIndex map[string]int
}

// NewPhrase validates def and derives its phonetic sequence: the phrase text is
// lower-cased, stripped of annotations and punctuation, split into words and encoded.
func NewPhrase(def PhraseDefinition, enc phonetic.Encoder) (*Phrase, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	words := textnorm.Words(textnorm.StripAnnotations(strings.ToLower(def.PhraseText)))
	codes := make([]string, len(words))
	firstIndex := make(map[string]int, len(words))
	for i, w := range words {
		code := enc.Encode(w)
		codes[i] = code
		if _, seen := firstIndex[code]; !seen {
			firstIndex[code] = i
		}
	}

	return &Phrase{
		PhraseID:         def.PhraseID,
		FullText:         def.FullText,
		PhraseText:       def.PhraseText,
		PhoneticSequence: codes,
		WordCount:        len(words),
		firstIndex:       firstIndex,
	}, nil
}

// FirstIndex returns the position of the first occurrence of code in the phonetic sequence.
func (p *Phrase) FirstIndex(code string) (int, bool) {
	i, ok := p.firstIndex[code]
	return i, ok
}

// Contains reports whether code occurs anywhere in the phonetic sequence.
func (p *Phrase) Contains(code string) bool {
	_, ok := p.firstIndex[code]
	return ok
}

// Codes returns the phonetic sequence.
func (p *Phrase) Codes() []string {
	return p.PhoneticSequence
}

// Matchable reports whether the phrase has at least one spoken word.
func (p *Phrase) Matchable() bool {
	return p.WordCount > 0
}

// Definition returns the definition the phrase was built from.
func (p *Phrase) Definition() PhraseDefinition {
	return PhraseDefinition{PhraseID: p.PhraseID, FullText: p.FullText, PhraseText: p.PhraseText}
}
