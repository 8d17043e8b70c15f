// Package api exposes the matching engine over HTTP.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// maxFilesPerRequest bounds a single matching batch.
const maxFilesPerRequest = 1000

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateScriptID validates a script id path parameter
func ValidateScriptID(scriptID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if scriptID == "" {
		result.AddError("scriptId", "Script ID is required")
		return result
	}

	if strings.TrimSpace(scriptID) != scriptID {
		result.AddError("scriptId", "Script ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateScriptDefinition checks an uploaded script against its path id.
// An empty script_id in the body is filled from the path.
func ValidateScriptDefinition(scriptID string, def *model.ScriptDefinition) *ValidationResult {
	result := ValidateScriptID(scriptID)
	if result.HasErrors() {
		return result
	}

	if def.ScriptID == "" {
		def.ScriptID = scriptID
	} else if def.ScriptID != scriptID {
		result.AddError("script_id", fmt.Sprintf("Body script_id '%s' does not match path '%s'", def.ScriptID, scriptID))
	}

	seenPhrases := make(map[string]struct{}, len(def.Phrases))
	for i, p := range def.Phrases {
		field := fmt.Sprintf("phrases[%d]", i)
		if p.PhraseID == "" {
			result.AddError(field+".phrase_id", "Phrase ID is required")
			continue
		}
		if _, dup := seenPhrases[p.PhraseID]; dup {
			result.AddError(field+".phrase_id", "Duplicate phrase ID '"+p.PhraseID+"'")
		}
		seenPhrases[p.PhraseID] = struct{}{}
		if p.FullText == "" {
			result.AddError(field+".text", "Phrase text is required")
		}
	}

	seenActions := make(map[string]struct{}, len(def.Actions))
	for i, a := range def.Actions {
		field := fmt.Sprintf("actions[%d]", i)
		if a.ActionID == "" {
			result.AddError(field+".action_id", "Action ID is required")
			continue
		}
		if _, dup := seenActions[a.ActionID]; dup {
			result.AddError(field+".action_id", "Duplicate action ID '"+a.ActionID+"'")
		}
		seenActions[a.ActionID] = struct{}{}
		if a.FullText == "" {
			result.AddError(field+".text", "Action text is required")
		}
		if a.LastUpdate.IsZero() {
			result.AddError(field+".last_update", "Action last_update is required")
		}
	}

	return result
}

// ValidateMatchFiles validates the files of a matching request
func ValidateMatchFiles(files []model.MediaFile) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(files) == 0 {
		result.AddError("files", "No files provided")
		return result
	}
	if len(files) > maxFilesPerRequest {
		result.AddError("files", fmt.Sprintf("At most %d files per request", maxFilesPerRequest))
		return result
	}

	seen := make(map[string]struct{}, len(files))
	for i, f := range files {
		field := fmt.Sprintf("files[%d]", i)
		if strings.TrimSpace(f.ID) == "" {
			result.AddError(field+".id", "File ID is required")
			continue
		}
		if _, dup := seen[f.ID]; dup {
			result.AddError(field+".id", "Duplicate file ID '"+f.ID+"'")
		}
		seen[f.ID] = struct{}{}

		for j, s := range f.Subtitles {
			if s.StartTime < 0 || s.EndTime < s.StartTime {
				result.AddError(fmt.Sprintf("%s.subtitles[%d]", field, j),
					fmt.Sprintf("Invalid time range [%g, %g]", s.StartTime, s.EndTime))
			}
		}
	}

	return result
}

// ValidateStrategy validates an optional phrase matching strategy
func ValidateStrategy(strategy string) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if strategy != "" && !config.IsKnownStrategy(strategy) {
		result.AddError("strategy", fmt.Sprintf("Unknown strategy '%s' (must be '%s' or '%s')",
			strategy, config.StrategyStream, config.StrategyCombination))
	}
	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// BindJSON binds the request body into target and sends the error response
// on failure. It reports whether binding succeeded.
func BindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		SendInvalidJSONError(c, err)
		return false
	}
	return true
}
