// Package config provides session configuration: defaults, YAML and
// TOML file loading keyed by extension, DOCSTORM_* environment
// overrides, validation, and live reload through a file watcher.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/history"
)

// Errors returned by configuration loading.
var (
	// ErrUnsupportedFormat indicates a config file extension with no
	// registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidConfig indicates a config value outside its valid range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// EditingConfig bounds the editing session.
type EditingConfig struct {
	// MaxUndoDepth caps the undo stack. Oldest entries drop silently.
	MaxUndoDepth int `yaml:"max_undo_depth" toml:"max_undo_depth"`

	// MaxListIndent caps list nesting.
	MaxListIndent int `yaml:"max_list_indent" toml:"max_list_indent"`

	// DefaultAttributions are style preferences active when a session
	// starts, by attribution id.
	DefaultAttributions []string `yaml:"default_attributions" toml:"default_attributions"`
}

// MarkdownConfig shapes markdown export.
type MarkdownConfig struct {
	// HardWrap serializes newlines embedded in block text as hard line
	// breaks instead of soft breaks.
	HardWrap bool `yaml:"hard_wrap" toml:"hard_wrap"`

	// TrailingNewline ends serialized output with a newline.
	TrailingNewline bool `yaml:"trailing_newline" toml:"trailing_newline"`
}

// Config is the full session configuration.
type Config struct {
	Editing  EditingConfig  `yaml:"editing" toml:"editing"`
	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Editing: EditingConfig{
			MaxUndoDepth:  history.DefaultMaxDepth,
			MaxListIndent: document.MaxListIndent,
		},
		Markdown: MarkdownConfig{
			TrailingNewline: true,
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Editing.MaxUndoDepth < 1 {
		return fmt.Errorf("%w: max_undo_depth must be >= 1, got %d",
			ErrInvalidConfig, c.Editing.MaxUndoDepth)
	}
	if c.Editing.MaxListIndent < document.MinListIndent {
		return fmt.Errorf("%w: max_list_indent must be >= %d, got %d",
			ErrInvalidConfig, document.MinListIndent, c.Editing.MaxListIndent)
	}
	return nil
}

// Load reads a config file, applies environment overrides, and
// validates the result. An empty path returns defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := decode(filepath.Ext(path), data, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg = ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse toml config: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return nil
}

// ApplyEnv overlays DOCSTORM_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("DOCSTORM_MAX_UNDO_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editing.MaxUndoDepth = n
		}
	}
	if v := os.Getenv("DOCSTORM_MAX_LIST_INDENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editing.MaxListIndent = n
		}
	}
	if v := os.Getenv("DOCSTORM_DEFAULT_ATTRIBUTIONS"); v != "" {
		cfg.Editing.DefaultAttributions = strings.Split(v, ",")
	}
	if v := os.Getenv("DOCSTORM_MARKDOWN_HARD_WRAP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Markdown.HardWrap = b
		}
	}
	if v := os.Getenv("DOCSTORM_MARKDOWN_TRAILING_NEWLINE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Markdown.TrailingNewline = b
		}
	}
	return cfg
}
