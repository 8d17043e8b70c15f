// Package engine keeps one script state per script id and runs matching
// batches against them.
package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/actionmatch"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/jobs"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/logging"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/persistence"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phrasematch"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/script"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
	"github.com/AndrewOch/ClapperRoughCutBackend/services"
)

// Script ids double as directory names under the data dir.
var scriptIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Options configures an Engine.
type Options struct {
	DataDir  string // empty keeps scripts in memory only
	Matching config.MatcherSettings
	Taxonomy config.Taxonomy
	Logger   *slog.Logger
}

// Engine manages the script states.
// It implements the services.Engine interface.
type Engine struct {
	mu      sync.RWMutex
	scripts map[string]*script.State

	settings       config.MatcherSettings
	coder          *phonetic.Coder
	filter         *actionmatch.CandidateFilter
	actionMatcher  *actionmatch.Matcher
	phraseMatchers map[string]phrasematch.Matcher
	pool           *jobs.Pool
	dataDir        string
	logger         *slog.Logger
}

var _ services.Engine = (*Engine)(nil)

// New creates an engine and, when a data dir is configured, loads every
// script saved there.
func New(opts Options) (*Engine, error) {
	settings := opts.Matching
	settings.ApplyDefaults()
	taxonomy := opts.Taxonomy
	taxonomy.ApplyDefaults()

	problems := append(settings.Validate(), taxonomy.Validate()...)
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid engine settings: %s", strings.Join(problems, "; "))
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(logging.FieldComponent, "engine")

	coder := phonetic.NewCoder()
	filter := actionmatch.NewCandidateFilter(taxonomy)

	matchers := make(map[string]phrasematch.Matcher, 2)
	for _, strategy := range []string{config.StrategyStream, config.StrategyCombination} {
		s := settings
		s.Strategy = strategy
		m, err := phrasematch.New(s, coder, logger)
		if err != nil {
			return nil, err
		}
		matchers[strategy] = m
	}

	eng := &Engine{
		scripts:        make(map[string]*script.State),
		settings:       settings,
		coder:          coder,
		filter:         filter,
		actionMatcher:  actionmatch.NewMatcher(filter),
		phraseMatchers: matchers,
		pool:           jobs.NewPool(settings.Workers, logger),
		dataDir:        opts.DataDir,
		logger:         logger,
	}
	eng.loadScriptsFromDisk()
	return eng, nil
}

// Close stops the worker pool. Running batches finish first.
func (e *Engine) Close() {
	e.pool.Stop()
}

// Settings returns the effective matcher settings.
func (e *Engine) Settings() config.MatcherSettings {
	return e.settings
}

// WorkerMetrics returns the worker pool metrics.
func (e *Engine) WorkerMetrics() jobs.MetricsData {
	return e.pool.Metrics()
}

func (e *Engine) stateOptions() script.Options {
	return script.Options{Encoder: e.coder, Reserved: e.filter.Reserved}
}

// PutScript creates the script state on first upload and reconciles it with
// def on later uploads. The effective definition is persisted afterwards.
func (e *Engine) PutScript(def model.ScriptDefinition) (services.PutScriptResult, error) {
	if err := validateScriptID(def.ScriptID); err != nil {
		return services.PutScriptResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var result services.PutScriptResult
	state, exists := e.scripts[def.ScriptID]
	if exists {
		summary, err := state.Update(def)
		if err != nil {
			return services.PutScriptResult{}, fmt.Errorf("failed to update script '%s': %w", def.ScriptID, err)
		}
		result.Summary = summary
	} else {
		created, err := script.New(def, e.stateOptions())
		if err != nil {
			return services.PutScriptResult{}, fmt.Errorf("failed to create script '%s': %w", def.ScriptID, err)
		}
		state = created
		result.Created = true
		result.Summary = script.UpdateSummary{Added: len(def.Actions)}
	}

	snap := state.Snapshot()
	if err := e.persistScriptUnsafe(snap); err != nil {
		// An existing state is already updated in memory; the disk copy is stale.
		e.logger.Error("failed to persist script", logging.FieldScriptID, def.ScriptID, "error", err)
		return services.PutScriptResult{}, fmt.Errorf("failed to persist script '%s': %w", def.ScriptID, err)
	}

	e.scripts[def.ScriptID] = state
	result.Script = snap.Info()

	e.logger.Info("script stored",
		logging.FieldScriptID, def.ScriptID,
		"revision", snap.Revision,
		"created", result.Created,
		"phrases", len(snap.Phrases),
		"actions_added", result.Summary.Added,
		"actions_replaced", result.Summary.Replaced,
		"actions_kept", result.Summary.Kept,
		"actions_deleted", result.Summary.Deleted,
	)
	return result, nil
}

// GetScript returns the summary of the script's current revision.
func (e *Engine) GetScript(scriptID string) (model.ScriptInfo, error) {
	state, err := e.state(scriptID)
	if err != nil {
		return model.ScriptInfo{}, err
	}
	return state.Snapshot().Info(), nil
}

// DeleteScript removes a script from memory and disk.
func (e *Engine) DeleteScript(scriptID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.scripts[scriptID]; !exists {
		return errors.NewScriptNotFoundError(scriptID)
	}
	delete(e.scripts, scriptID)

	if e.dataDir != "" {
		if err := persistence.RemoveDir(filepath.Join(e.dataDir, scriptID)); err != nil {
			return fmt.Errorf("failed to remove data for script '%s': %w", scriptID, err)
		}
	}

	e.logger.Info("script deleted", logging.FieldScriptID, scriptID)
	return nil
}

// ListScripts returns every loaded script ordered by id.
func (e *Engine) ListScripts() []model.ScriptInfo {
	e.mu.RLock()
	infos := make([]model.ScriptInfo, 0, len(e.scripts))
	for _, state := range e.scripts {
		infos = append(infos, state.Snapshot().Info())
	}
	e.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ScriptID < infos[j].ScriptID
	})
	return infos
}

// Statistics returns the class statistics of the script's current revision.
func (e *Engine) Statistics(scriptID string) (model.ClassStatistics, error) {
	state, err := e.state(scriptID)
	if err != nil {
		return model.ClassStatistics{}, err
	}
	return state.Snapshot().Statistics(), nil
}

func (e *Engine) state(scriptID string) (*script.State, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	state, exists := e.scripts[scriptID]
	if !exists {
		return nil, errors.NewScriptNotFoundError(scriptID)
	}
	return state, nil
}

func validateScriptID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewValidationError("script_id", "script id is required")
	}
	if !scriptIDPattern.MatchString(id) {
		return errors.NewValidationError("script_id",
			fmt.Sprintf("script id '%s' may only contain letters, digits, '_', '-' and '.'", id))
	}
	return nil
}
