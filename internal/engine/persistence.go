package engine

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/logging"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/persistence"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/script"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

const (
	dataDirPerm = 0750
	scriptFile  = "script.gob"
)

// loadScriptsFromDisk loads every script saved under the data directory.
// Broken entries are logged and skipped.
func (e *Engine) loadScriptsFromDisk() {
	if e.dataDir == "" {
		return
	}
	log := e.logger.With("data_dir", e.dataDir)

	if err := os.MkdirAll(e.dataDir, dataDirPerm); err != nil {
		log.Warn("could not create data directory, scripts will not be persisted", "error", err)
		return
	}

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Warn("failed to read data directory, no scripts loaded", "error", err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		scriptID := item.Name()
		path := filepath.Join(e.dataDir, scriptID, scriptFile)

		var def model.ScriptDefinition
		if err := persistence.LoadGob(path, &def); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Debug("directory without script snapshot, skipping", logging.FieldScriptID, scriptID)
			} else {
				log.Warn("failed to load script, skipping", logging.FieldScriptID, scriptID, "error", err)
			}
			continue
		}

		// The script id must match the directory it was saved in
		if def.ScriptID != scriptID {
			log.Warn("script id does not match its directory, skipping",
				logging.FieldScriptID, def.ScriptID, "dir", scriptID)
			continue
		}

		state, err := script.New(def, e.stateOptions())
		if err != nil {
			log.Warn("failed to rebuild script, skipping", logging.FieldScriptID, scriptID, "error", err)
			continue
		}

		e.scripts[scriptID] = state
		log.Info("script loaded", logging.FieldScriptID, scriptID,
			"phrases", len(def.Phrases), "actions", len(def.Actions))
	}
}

// persistScriptUnsafe saves the effective definition of snap. The caller
// must hold e.mu.
func (e *Engine) persistScriptUnsafe(snap *script.Snapshot) error {
	if e.dataDir == "" {
		return nil
	}
	path := filepath.Join(e.dataDir, snap.ScriptID, scriptFile)
	return persistence.SaveGob(path, snap.Definition())
}
