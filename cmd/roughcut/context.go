package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/engine"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/logging"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// localScriptID names scripts loaded from files that carry no script_id.
const localScriptID = "local"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.AppConfig
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.AppConfig, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger writes to the command's stderr so stdout stays machine readable.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// localEngine builds an in-memory engine holding the script at scriptPath.
func (c *commandContext) localEngine(cmd *cobra.Command, scriptPath string) (*engine.Engine, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, "", err
	}

	def, err := readScript(scriptPath)
	if err != nil {
		return nil, "", err
	}

	eng, err := engine.New(engine.Options{
		Matching: cfg.Matching,
		Taxonomy: cfg.Taxonomy,
		Logger:   logger,
	})
	if err != nil {
		return nil, "", err
	}
	if _, err := eng.PutScript(def); err != nil {
		eng.Close()
		return nil, "", err
	}
	return eng, def.ScriptID, nil
}

func readScript(path string) (model.ScriptDefinition, error) {
	var def model.ScriptDefinition
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return def, fmt.Errorf("read script %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("decode script %s: %w", path, err)
	}
	if def.ScriptID == "" {
		def.ScriptID = localScriptID
	}
	return def, nil
}

// readFiles accepts either a JSON array of files or an object with a "files" array.
func readFiles(path string) ([]model.MediaFile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("read files %s: %w", path, err)
	}

	var files []model.MediaFile
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &files)
	} else {
		var wrapper struct {
			Files []model.MediaFile `json:"files"`
		}
		err = json.Unmarshal(data, &wrapper)
		files = wrapper.Files
	}
	if err != nil {
		return nil, fmt.Errorf("decode files %s: %w", path, err)
	}
	return files, nil
}
