package model

import (
	"strings"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
)

// ScriptDefinition is a full script upload: ordered phrases and the current action set.
type ScriptDefinition struct {
	ScriptID string             `json:"script_id"`
	Phrases  []PhraseDefinition `json:"phrases"`
	Actions  []ActionDefinition `json:"actions"`
}

// Validate checks the script id and every phrase and action definition.
// Duplicate action ids are rejected; phrase ids may repeat.
func (s ScriptDefinition) Validate() error {
	if strings.TrimSpace(s.ScriptID) == "" {
		return errors.NewValidationError("script_id", "script_id is required")
	}
	for _, p := range s.Phrases {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]struct{}, len(s.Actions))
	for _, a := range s.Actions {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a.ActionID]; dup {
			return errors.NewValidationError("actions", "duplicate action_id '"+a.ActionID+"'")
		}
		seen[a.ActionID] = struct{}{}
	}
	return nil
}

// ScriptInfo summarizes a loaded script.
type ScriptInfo struct {
	ScriptID    string `json:"script_id"`
	Revision    string `json:"revision"`
	PhraseCount int    `json:"phrase_count"`
	ActionCount int    `json:"action_count"`
}
