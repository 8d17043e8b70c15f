package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrScriptNotFound is returned when no script state exists for an id
	ErrScriptNotFound = errors.New("script not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownStrategy is returned when a phrase matching strategy name is not recognised
	ErrUnknownStrategy = errors.New("unknown matching strategy")
)

// ScriptNotFoundError represents a script not found error with context
type ScriptNotFoundError struct {
	ScriptID string
}

func (e *ScriptNotFoundError) Error() string {
	return fmt.Sprintf("script with ID '%s' not found", e.ScriptID)
}

func (e *ScriptNotFoundError) Is(target error) bool {
	return target == ErrScriptNotFound
}

// NewScriptNotFoundError creates a new ScriptNotFoundError
func NewScriptNotFoundError(scriptID string) *ScriptNotFoundError {
	return &ScriptNotFoundError{ScriptID: scriptID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UnknownStrategyError reports a strategy name that has no matcher behind it
type UnknownStrategyError struct {
	Strategy string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("matching strategy '%s' is not supported", e.Strategy)
}

func (e *UnknownStrategyError) Is(target error) bool {
	return target == ErrUnknownStrategy || target == ErrInvalidInput
}

// NewUnknownStrategyError creates a new UnknownStrategyError
func NewUnknownStrategyError(strategy string) *UnknownStrategyError {
	return &UnknownStrategyError{Strategy: strategy}
}
