package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener and storage options.
type ServerConfig struct {
	Port         string `yaml:"port"`
	DataDir      string `yaml:"data_dir"` // Empty keeps scripts in memory only
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json", "console" or "auto"
}

// AppConfig is the file-backed configuration shared by the server and the CLI.
type AppConfig struct {
	Server   ServerConfig    `yaml:"server"`
	Log      LogConfig       `yaml:"log"`
	Matching MatcherSettings `yaml:"matching"`
	Taxonomy Taxonomy        `yaml:"taxonomy"`
}

// DefaultAppConfig returns a config with every default applied.
func DefaultAppConfig() *AppConfig {
	cfg := &AppConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults applies default values to every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 32 << 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
	c.Matching.ApplyDefaults()
	c.Taxonomy.ApplyDefaults()
}

// Validate collects problems from every section.
func (c *AppConfig) Validate() []string {
	var problems []string
	switch c.Log.Format {
	case "json", "console", "auto":
	default:
		problems = append(problems, "Invalid log format '"+c.Log.Format+"' (must be 'json', 'console' or 'auto')")
	}
	problems = append(problems, c.Matching.Validate()...)
	problems = append(problems, c.Taxonomy.Validate()...)
	return problems
}

// Load reads a YAML config file, applies defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		return DefaultAppConfig(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's --config flag
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes. Unknown keys are rejected so typos surface early.
func Parse(data []byte) (*AppConfig, error) {
	cfg := &AppConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.ApplyDefaults()
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid config: %v", problems)
	}
	return cfg, nil
}
