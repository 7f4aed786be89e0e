package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"aita/internal/llm"
)

// Defaults applied before the config file and the environment.
const (
	DefaultLogLevel = "info"
	DefaultInput    = "data/inputs/requirements.csv"
	DefaultOutDir   = "data/outputs"
)

// ConfigEnv names the environment variable holding the config file path.
const ConfigEnv = "AITA_CONFIG"

// Config holds the application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	EnableAI bool   `yaml:"enable_ai"` // Opt-in for the suggestion source
	APIKey   string `yaml:"-"`         // Never read from a file
	Input    string `yaml:"input"`
	OutDir   string `yaml:"out_dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Input:    DefaultInput,
		OutDir:   DefaultOutDir,
	}
}

// LoadConfig layers defaults, the optional YAML file and the environment.
// path falls back to $AITA_CONFIG; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	// DEBUG flag overrides log level
	if os.Getenv("DEBUG") == "1" {
		c.LogLevel = "debug"
	}

	if v, ok := os.LookupEnv("ENABLE_AI"); ok {
		c.EnableAI = v == "1"
	}
	c.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}

// Suggestions returns the suggestion source settings.
func (c *Config) Suggestions() llm.SuggestionConfig {
	return llm.SuggestionConfig{
		Enabled: c.EnableAI,
		APIKey:  c.APIKey,
	}
}
