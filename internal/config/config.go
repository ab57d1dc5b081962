// Package config loads optional per-project settings from .archcheck.yaml
// at the project root. A missing file means defaults; a malformed file is
// an error rather than a silent fallback.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked for at the project root.
const FileName = ".archcheck.yaml"

// Config holds project-level settings for the validator and its
// surrounding commands.
type Config struct {
	// Manifest is the architecture manifest path, relative to the root.
	Manifest string `yaml:"manifest"`

	// TestCommand is the external test runner invoked by the test
	// command; test file paths are appended as arguments.
	TestCommand []string `yaml:"test_command"`

	// ExcludeDirs are additional directory names the bottom-up scan
	// skips, on top of the built-in set.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// HistoryPath is the validation-run database location, relative to
	// the root.
	HistoryPath string `yaml:"history_path"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Manifest:    "architecture.yaml",
		TestCommand: []string{"pytest"},
		HistoryPath: filepath.Join(".archcheck", "history.db"),
	}
}

// Load reads .archcheck.yaml under root, overlaying defaults with any
// fields the file sets.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if overlay.Manifest != "" {
		cfg.Manifest = overlay.Manifest
	}
	if len(overlay.TestCommand) > 0 {
		cfg.TestCommand = overlay.TestCommand
	}
	if len(overlay.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = overlay.ExcludeDirs
	}
	if overlay.HistoryPath != "" {
		cfg.HistoryPath = overlay.HistoryPath
	}
	return cfg, nil
}
