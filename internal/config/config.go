package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2kdp/internal/fileutil"
	"github.com/alnah/go-md2kdp/internal/frontmatter"
	"github.com/alnah/go-md2kdp/internal/layout"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// Field length limits.
const (
	MaxNameLength      = 200  // Author, publisher
	MaxTitleLength     = 200  // Title, subtitle
	MaxURLLength       = 2048 // Browser limit
	MaxISBNLength      = 20   // "978-0-00-000000-0"
	MaxYearLength      = 10   // "2025"
	MaxPathLength      = 4096 // PATH_MAX
	MaxThemeNameLength = 100
	MaxStyleLength     = 50 // Chroma style name
	MaxWorkers         = 64
)

// Config holds all configuration for book generation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Theme  ThemeConfig  `yaml:"theme"`
	Book   BookConfig   `yaml:"book"`
	Batch  BatchConfig  `yaml:"batch"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir    string `yaml:"defaultDir"`    // Default output directory (empty = same as source)
	FixZip        bool   `yaml:"fixZip"`        // Rewrite archives without data descriptors
	Transliterate bool   `yaml:"transliterate"` // ASCII-only output file names
}

// ThemeConfig selects the book presentation.
type ThemeConfig struct {
	Name          string `yaml:"name"`          // Embedded preset name or path to a .yaml theme
	BasePath      string `yaml:"basePath"`      // Directory with custom themes/ (empty = embedded only)
	Trim          string `yaml:"trim"`          // Trim preset overriding the theme page size
	CodeHighlight string `yaml:"codeHighlight"` // Chroma style for fenced code (empty = theme default)
}

// BookConfig supplies metadata for manuscripts whose front matter omits it.
// Front matter always wins.
type BookConfig struct {
	Author    string `yaml:"author"`
	Publisher string `yaml:"publisher"`
	Website   string `yaml:"website"`
	Year      string `yaml:"year"`
}

// BatchConfig defines directory conversion options.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 = automatic
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

var logLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"theme.name", c.Theme.Name, MaxPathLength},
		{"theme.basePath", c.Theme.BasePath, MaxPathLength},
		{"theme.codeHighlight", c.Theme.CodeHighlight, MaxStyleLength},
		{"book.author", c.Book.Author, MaxNameLength},
		{"book.publisher", c.Book.Publisher, MaxNameLength},
		{"book.website", c.Book.Website, MaxURLLength},
		{"book.year", c.Book.Year, MaxYearLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if !fileutil.IsFilePath(c.Theme.Name) {
		if err := validateFieldLength("theme.name", c.Theme.Name, MaxThemeNameLength); err != nil {
			return err
		}
	}
	if c.Theme.Trim != "" {
		if _, ok := layout.TrimSizes[strings.ToLower(c.Theme.Trim)]; !ok {
			return fmt.Errorf("%w: theme.trim %q (supported: %s)", ErrInvalidValue, c.Theme.Trim, strings.Join(layout.TrimNames(), ", "))
		}
	}
	if c.Batch.Workers < 0 || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("%w: batch.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Batch.Workers)
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that uses the default theme and no
// metadata defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// Metadata returns the configured book defaults as front matter keys.
// Empty values are omitted.
func (c *Config) Metadata() frontmatter.Metadata {
	m := frontmatter.Metadata{}
	for key, v := range map[string]string{
		frontmatter.KeyAuthor:    c.Book.Author,
		frontmatter.KeyPublisher: c.Book.Publisher,
		frontmatter.KeyWebsite:   c.Book.Website,
		frontmatter.KeyYear:      c.Book.Year,
	} {
		if v != "" {
			m[key] = v
		}
	}
	return m
}

// MetadataKeys returns the keys Metadata can set, sorted.
func MetadataKeys() []string {
	keys := []string{frontmatter.KeyAuthor, frontmatter.KeyPublisher, frontmatter.KeyWebsite, frontmatter.KeyYear}
	sort.Strings(keys)
	return keys
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseConfig decodes YAML strictly: unknown fields are errors.
func parseConfig(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrConfigParse)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxConfigSize)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2kdp/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2kdp", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
