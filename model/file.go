package model

import (
	"fmt"
	"strings"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
)

// MediaFile is the per-file metadata produced by the transcription and
// footage classification collaborators.
type MediaFile struct {
	ID        string     `json:"id"`
	Subtitles []Subtitle `json:"subtitles,omitempty"`
	Classes   []string   `json:"classes,omitempty"`

	// ExpectedPhraseID is an optional debugging hint; when the phrase it names
	// is rejected the matcher logs why.
	ExpectedPhraseID string `json:"expected_phrase_id,omitempty"`
}

// Validate checks the file id and every subtitle.
func (f MediaFile) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.NewValidationError("id", "file id is required")
	}
	for i, s := range f.Subtitles {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("file '%s' subtitle %d: %w", f.ID, i, err)
		}
	}
	return nil
}
