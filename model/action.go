package model

import (
	"strings"
	"time"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
)

// SynonymCount records how often a dictionary keyword produced a class tag.
type SynonymCount struct {
	Class   string `json:"class"`
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// ActionDefinition is a scripted action already tagged by the external classifier.
// Classes is a tag multiset; repeated tags arrive encoded as "N <tag>".
type ActionDefinition struct {
	ActionID         string         `json:"action_id"`
	FullText         string         `json:"text"`
	LastUpdate       time.Time      `json:"last_update"`
	Classes          []string       `json:"classes"`
	SynonymCounts    []SynonymCount `json:"synonym_counts,omitempty"`
	UnusedWordCounts map[string]int `json:"unused_word_counts,omitempty"`
}

// Validate checks the required fields of an action definition.
func (d ActionDefinition) Validate() error {
	if strings.TrimSpace(d.ActionID) == "" {
		return errors.NewValidationError("action_id", "action_id is required")
	}
	if strings.TrimSpace(d.FullText) == "" {
		return errors.NewValidationError("text", "text is required for action '"+d.ActionID+"'")
	}
	if d.LastUpdate.IsZero() {
		return errors.NewValidationError("last_update", "last_update is required for action '"+d.ActionID+"'")
	}
	return nil
}

// NewerThan reports whether d was updated strictly after other.
func (d ActionDefinition) NewerThan(other ActionDefinition) bool {
	return d.LastUpdate.After(other.LastUpdate)
}

// Action is an action definition plus its TF-IDF vector. The vector is
// computed by the script state for the revision the action belongs to.
type Action struct {
	ActionDefinition
	TFIDF map[string]float64 `json:"tfidf_vector,omitempty"`
}

// NewAction validates def and copies its tag multiset.
func NewAction(def ActionDefinition) (Action, error) {
	if err := def.Validate(); err != nil {
		return Action{}, err
	}
	def.Classes = append([]string(nil), def.Classes...)
	return Action{ActionDefinition: def}, nil
}

// HasClass reports whether tag is among the action's classes.
func (a Action) HasClass(tag string) bool {
	for _, c := range a.Classes {
		if c == tag {
			return true
		}
	}
	return false
}
