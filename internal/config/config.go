// Package config loads and validates the dais configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dais/internal/exec"
)

// Default values for Config.
const (
	DefaultTheme        = "dark"
	DefaultNotesAddress = "127.0.0.1:59418"
)

// SnippetsConfig controls code snippet execution.
type SnippetsConfig struct {
	// Exec enables snippet execution. Off unless the presenter opts in,
	// since running arbitrary code from a markdown file deserves an
	// explicit decision.
	Exec bool `yaml:"exec"`
	// HiddenLinePrefix marks snippet lines that execute but are not
	// displayed. Empty disables hiding.
	HiddenLinePrefix string `yaml:"hidden_line_prefix"`
	// Executors overrides or extends the built-in per-language runner
	// table.
	Executors map[string]exec.Runner `yaml:"executors"`
}

// NotesConfig controls the speaker-notes event channel.
type NotesConfig struct {
	// Address is the loopback UDP address slide-change events travel
	// over.
	Address string `yaml:"address"`
}

// Config represents the dais config file.
type Config struct {
	// Theme selects the presentation theme by name.
	Theme string `yaml:"theme"`
	// MarkdownStyle selects the glamour style for prose; "auto" picks
	// per terminal background.
	MarkdownStyle string `yaml:"markdown_style"`
	Snippets      SnippetsConfig `yaml:"snippets"`
	Notes         NotesConfig    `yaml:"notes"`
	// Bindings maps command names to the key specs that trigger them,
	// replacing the default set per command.
	Bindings map[string][]string `yaml:"bindings"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Theme:         DefaultTheme,
		MarkdownStyle: "auto",
		Notes:         NotesConfig{Address: DefaultNotesAddress},
	}
}

// DefaultPath returns the user config file location,
// ~/.config/dais/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dais", "config.yaml")
}

// Load reads the config file at path over the defaults. An empty path
// means the default location; a missing file at the default location
// yields the defaults, while an explicitly given path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all config values are valid.
func Validate(cfg *Config) error {
	if cfg.Theme == "" {
		return ValidationError{Field: "theme", Message: "must not be empty"}
	}
	if !strings.Contains(cfg.Notes.Address, ":") {
		return ValidationError{Field: "notes.address", Message: "must be host:port"}
	}

	for lang, runner := range cfg.Snippets.Executors {
		field := fmt.Sprintf("snippets.executors.%s", lang)
		if runner.Filename == "" {
			return ValidationError{Field: field, Message: "filename must not be empty"}
		}
		if len(runner.Commands) == 0 {
			return ValidationError{Field: field, Message: "must have at least one command"}
		}
		for _, argv := range runner.Commands {
			if len(argv) == 0 {
				return ValidationError{Field: field, Message: "commands must not be empty"}
			}
		}
	}

	for command, keys := range cfg.Bindings {
		if len(keys) == 0 {
			return ValidationError{
				Field:   fmt.Sprintf("bindings.%s", command),
				Message: "must have at least one key",
			}
		}
	}
	return nil
}
