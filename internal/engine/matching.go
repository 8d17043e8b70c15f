package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/logging"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phrasematch"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
	"github.com/AndrewOch/ClapperRoughCutBackend/services"
)

// MatchPhrases matches every file against the phrases of the script's current
// revision. The whole batch reads one snapshot, so a concurrent PutScript
// never affects it. When ctx is done, files not yet started are skipped and
// the context error is returned.
func (e *Engine) MatchPhrases(ctx context.Context, scriptID string, files []model.MediaFile, strategy string) (*services.PhraseMatchResponse, error) {
	start := time.Now()

	if strategy == "" {
		strategy = e.settings.Strategy
	}
	matcher, ok := e.phraseMatchers[strategy]
	if !ok {
		return nil, errors.NewUnknownStrategyError(strategy)
	}
	if err := validateFiles(files); err != nil {
		return nil, err
	}

	state, err := e.state(scriptID)
	if err != nil {
		return nil, err
	}
	snap := state.Snapshot()

	results := make([]model.FilePhraseResult, len(files))
	err = e.pool.Run(ctx, len(files), func(i int) {
		results[i] = matcher.Match(files[i], snap.Phrases, snap.Index)
	})
	if err != nil {
		return nil, fmt.Errorf("phrase matching for script '%s' interrupted: %w", scriptID, err)
	}

	resp := &services.PhraseMatchResponse{
		Results:   results,
		Strategy:  strategy,
		Revision:  snap.Revision,
		RequestID: requestID(ctx),
		Took:      time.Since(start).Milliseconds(),
	}

	matched := 0
	for _, r := range results {
		if r.Matched() {
			matched++
		}
	}
	logging.WithContext(ctx, e.logger).Debug("phrase batch matched",
		logging.FieldScriptID, scriptID,
		"strategy", strategy,
		"files", len(files),
		"matched", matched,
		"took_ms", resp.Took,
	)
	return resp, nil
}

// MatchActions ranks the actions of the script's current revision against
// every file's tags. Cancellation behaves as in MatchPhrases.
func (e *Engine) MatchActions(ctx context.Context, scriptID string, files []model.MediaFile) (*services.ActionMatchResponse, error) {
	start := time.Now()

	if err := validateFiles(files); err != nil {
		return nil, err
	}

	state, err := e.state(scriptID)
	if err != nil {
		return nil, err
	}
	snap := state.Snapshot()

	results := make([]model.FileActionResult, len(files))
	err = e.pool.Run(ctx, len(files), func(i int) {
		results[i] = e.actionMatcher.BestMatch(files[i], snap.Actions, snap.Corpus)
	})
	if err != nil {
		return nil, fmt.Errorf("action matching for script '%s' interrupted: %w", scriptID, err)
	}

	resp := &services.ActionMatchResponse{
		Results:   results,
		Revision:  snap.Revision,
		RequestID: requestID(ctx),
		Took:      time.Since(start).Milliseconds(),
	}

	matched := 0
	for _, r := range results {
		if r.Matched() {
			matched++
		}
	}
	logging.WithContext(ctx, e.logger).Debug("action batch matched",
		logging.FieldScriptID, scriptID,
		"files", len(files),
		"matched", matched,
		"took_ms", resp.Took,
	)
	return resp, nil
}

func validateFiles(files []model.MediaFile) error {
	for i, f := range files {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("file %d: %w", i, err)
		}
	}
	return nil
}

// requestID reuses the id carried by ctx or generates a new one.
func requestID(ctx context.Context) string {
	if id, ok := logging.RequestIDFromContext(ctx); ok {
		return id
	}
	return uuid.NewString()
}

// CompareTexts compares two free texts with the engine's phonetic coder.
// It needs no script.
func (e *Engine) CompareTexts(text, reference string) model.TextComparison {
	return phrasematch.CompareTexts(e.coder, text, reference)
}
