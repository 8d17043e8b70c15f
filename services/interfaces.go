package services

import (
	"context"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/script"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// PutScriptResult describes the outcome of a script upload.
type PutScriptResult struct {
	Script  model.ScriptInfo     `json:"script"`
	Created bool                 `json:"created"`
	Summary script.UpdateSummary `json:"summary"`
}

// PhraseMatchResponse is the result of a phrase matching batch. Results keep
// the order of the submitted files.
type PhraseMatchResponse struct {
	Results   []model.FilePhraseResult `json:"results"`
	Strategy  string                   `json:"strategy"`
	Revision  string                   `json:"revision"`
	RequestID string                   `json:"request_id"` // unique UUID for this batch
	Took      int64                    `json:"took"`       // milliseconds
}

// ActionMatchResponse is the result of an action matching batch. Results keep
// the order of the submitted files.
type ActionMatchResponse struct {
	Results   []model.FileActionResult `json:"results"`
	Revision  string                   `json:"revision"`
	RequestID string                   `json:"request_id"`
	Took      int64                    `json:"took"` // milliseconds
}

// ScriptManager manages the lifecycle of script states
type ScriptManager interface {
	PutScript(def model.ScriptDefinition) (PutScriptResult, error)
	GetScript(scriptID string) (model.ScriptInfo, error)
	DeleteScript(scriptID string) error
	ListScripts() []model.ScriptInfo
	Statistics(scriptID string) (model.ClassStatistics, error)
}

// MatchService runs matching batches against a script's current revision.
// An empty strategy selects the configured default.
type MatchService interface {
	MatchPhrases(ctx context.Context, scriptID string, files []model.MediaFile, strategy string) (*PhraseMatchResponse, error)
	MatchActions(ctx context.Context, scriptID string, files []model.MediaFile) (*ActionMatchResponse, error)
}

// TextComparer compares free texts word by word on their phonetic codes.
type TextComparer interface {
	CompareTexts(text, reference string) model.TextComparison
}

// Engine combines script management, matching and text comparison.
type Engine interface {
	ScriptManager
	MatchService
	TextComparer
}
