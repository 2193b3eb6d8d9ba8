// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for specdocs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// Config represents the specdocs configuration.
type Config struct {
	// Input is the path of the hand-written OpenAPI YAML document
	Input string `mapstructure:"input" yaml:"input" json:"input"`

	// OutputDir is the directory that receives the generated artifacts
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir" json:"outputDir"`

	// JSON contains JSON artifact configuration
	JSON JSONConfig `mapstructure:"json" yaml:"json" json:"json"`

	// HTML contains HTML viewer configuration
	HTML HTMLConfig `mapstructure:"html" yaml:"html" json:"html"`

	// Generation contains generation behavior configuration
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation" json:"generation"`

	// Validation contains validator configuration
	Validation ValidationConfig `mapstructure:"validate" yaml:"validate" json:"validate"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// JSONConfig contains JSON artifact configuration.
type JSONConfig struct {
	// Indent is the indentation width of the formatted JSON artifact
	Indent int `mapstructure:"indent" yaml:"indent" json:"indent"`
}

// HTMLConfig contains HTML viewer configuration.
type HTMLConfig struct {
	// Title is used when the document has no info.title
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// WidgetURL is the base URL of the Swagger UI distribution
	WidgetURL string `mapstructure:"widgetURL" yaml:"widgetURL" json:"widgetURL"`
}

// GenerationConfig contains generation behavior configuration.
type GenerationConfig struct {
	// Stamp adds an info.x-generated block to the JSON artifacts
	Stamp bool `mapstructure:"stamp" yaml:"stamp" json:"stamp"`

	// Readme writes a README.md describing the artifacts
	Readme bool `mapstructure:"readme" yaml:"readme" json:"readme"`
}

// ValidationConfig contains validator configuration.
type ValidationConfig struct {
	// RequiredPaths is the checklist of paths that must be documented
	RequiredPaths []string `mapstructure:"requiredPaths" yaml:"requiredPaths" json:"requiredPaths"`

	// MinCoverage is the example coverage percentage that must be exceeded
	MinCoverage float64 `mapstructure:"minCoverage" yaml:"minCoverage" json:"minCoverage"`

	// Model also builds the full OpenAPI v3 model as an extra check
	Model bool `mapstructure:"model" yaml:"model" json:"model"`

	// SARIF is an optional path the report is written to in SARIF format
	SARIF string `mapstructure:"sarif" yaml:"sarif" json:"sarif"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`

	// Include is a list of glob patterns, relative to the input directory,
	// whose changes trigger a regeneration
	Include []string `mapstructure:"include" yaml:"include" json:"include"`
}

// Artifact file names inside OutputDir.
const (
	FormattedJSONFile = "openapi.json"
	CompactJSONFile   = "openapi.min.json"
	SourceCopyFile    = "openapi.yaml"
	HTMLFile          = "index.html"
	ReadmeFile        = "README.md"
)

// Defaults.
const (
	DefaultInput       = "docs/openapi-spec/openapi.yaml"
	DefaultOutputDir   = "docs/openapi-generated"
	DefaultIndent      = 2
	DefaultTitle       = "API Documentation"
	DefaultWidgetURL   = "https://unpkg.com/swagger-ui-dist@5.9.0"
	DefaultMinCoverage = 50.0
	DefaultDebounce    = 500
)

// DefaultRequiredPaths returns the default endpoint checklist.
func DefaultRequiredPaths() []string {
	return []string{
		"/auth/register",
		"/auth/login",
		"/restaurants",
		"/dishes",
		"/orders",
		"/promotions",
	}
}

func defaultWatchInclude() []string {
	return []string{"**/*.yaml", "**/*.yml", "**/*.json"}
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"specdocs.yaml",
	"specdocs.json",
	".specdocs.yaml",
	".specdocs.json",
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Input:     DefaultInput,
		OutputDir: DefaultOutputDir,
		JSON: JSONConfig{
			Indent: DefaultIndent,
		},
		HTML: HTMLConfig{
			Title:     DefaultTitle,
			WidgetURL: DefaultWidgetURL,
		},
		Generation: GenerationConfig{
			Stamp:  true,
			Readme: true,
		},
		Validation: ValidationConfig{
			RequiredPaths: DefaultRequiredPaths(),
			MinCoverage:   DefaultMinCoverage,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
			Include:  defaultWatchInclude(),
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. specdocs.yaml
// 2. specdocs.json
// 3. .specdocs.yaml
// 4. .specdocs.json
//
// If configPath is provided, it will use that path instead. Environment
// variables are not consulted.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("input", DefaultInput)
	v.SetDefault("outputDir", DefaultOutputDir)
	v.SetDefault("json.indent", DefaultIndent)
	v.SetDefault("html.title", DefaultTitle)
	v.SetDefault("html.widgetURL", DefaultWidgetURL)
	v.SetDefault("generation.stamp", true)
	v.SetDefault("generation.readme", true)
	v.SetDefault("validate.requiredPaths", DefaultRequiredPaths())
	v.SetDefault("validate.minCoverage", DefaultMinCoverage)
	v.SetDefault("validate.model", false)
	v.SetDefault("validate.sarif", "")
	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("watch.include", defaultWatchInclude())
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, ValidationError{
			Field:   "input",
			Message: "input document path is required",
		})
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "outputDir",
			Message: "output directory is required",
		})
	}

	if c.JSON.Indent < 0 || c.JSON.Indent > 8 {
		errs = append(errs, ValidationError{
			Field:   "json.indent",
			Message: fmt.Sprintf("indent %d out of range, must be between 0 and 8", c.JSON.Indent),
		})
	}

	if c.Validation.MinCoverage < 0 || c.Validation.MinCoverage > 100 {
		errs = append(errs, ValidationError{
			Field:   "validate.minCoverage",
			Message: fmt.Sprintf("coverage %.1f out of range, must be between 0 and 100", c.Validation.MinCoverage),
		})
	}

	for _, p := range c.Validation.RequiredPaths {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, ValidationError{
				Field:   "validate.requiredPaths",
				Message: fmt.Sprintf("path %q must start with /", p),
			})
		}
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	for _, pattern := range c.Watch.Include {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, ValidationError{
				Field:   "watch.include",
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ArtifactPath returns the path of the named artifact inside OutputDir.
func (c *Config) ArtifactPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

// ConfigFilePath returns the path of the config file found in the working
// directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
