// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "docs/openapi-spec/openapi.yaml", cfg.Input)
	assert.Equal(t, "docs/openapi-generated", cfg.OutputDir)
	assert.Equal(t, 2, cfg.JSON.Indent)
	assert.Equal(t, "API Documentation", cfg.HTML.Title)
	assert.Contains(t, cfg.HTML.WidgetURL, "swagger-ui-dist")
	assert.True(t, cfg.Generation.Stamp)
	assert.True(t, cfg.Generation.Readme)
	assert.Equal(t, DefaultRequiredPaths(), cfg.Validation.RequiredPaths)
	assert.Equal(t, 50.0, cfg.Validation.MinCoverage)
	assert.False(t, cfg.Validation.Model)
	assert.Equal(t, 500, cfg.Watch.Debounce)
}

func TestLoad_NoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
input: api/openapi.yaml
outputDir: public
json:
  indent: 4
html:
  title: "Catalog API"
generation:
  stamp: false
validate:
  requiredPaths:
    - /menu
    - /categories
  minCoverage: 75
  model: true
`
	err := os.WriteFile(filepath.Join(tmpDir, "specdocs.yaml"), []byte(configContent), 0o644)
	require.NoError(t, err)

	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "api/openapi.yaml", cfg.Input)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, 4, cfg.JSON.Indent)
	assert.Equal(t, "Catalog API", cfg.HTML.Title)
	assert.Equal(t, DefaultWidgetURL, cfg.HTML.WidgetURL)
	assert.False(t, cfg.Generation.Stamp)
	assert.True(t, cfg.Generation.Readme)
	assert.Equal(t, []string{"/menu", "/categories"}, cfg.Validation.RequiredPaths)
	assert.Equal(t, 75.0, cfg.Validation.MinCoverage)
	assert.True(t, cfg.Validation.Model)
}

func TestLoad_JSONConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `{
  "input": "spec/openapi.yaml",
  "outputDir": "site",
  "watch": {
    "debounce": 100
  }
}`
	err := os.WriteFile(filepath.Join(tmpDir, "specdocs.json"), []byte(configContent), 0o644)
	require.NoError(t, err)

	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "spec/openapi.yaml", cfg.Input)
	assert.Equal(t, "site", cfg.OutputDir)
	assert.Equal(t, 100, cfg.Watch.Debounce)
}

func TestLoad_DotPrefixedConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, ".specdocs.yaml"), []byte("outputDir: dist\n"), 0o644)
	require.NoError(t, err)

	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, DefaultInput, cfg.Input)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "custom-config.yaml")
	err := os.WriteFile(configPath, []byte("input: custom.yaml\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "custom.yaml", cfg.Input)
}

func TestLoad_ExplicitConfigPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_ConfigFilePriority(t *testing.T) {
	tmpDir := t.TempDir()

	// specdocs.yaml should take priority over .specdocs.yaml
	err := os.WriteFile(filepath.Join(tmpDir, "specdocs.yaml"), []byte("outputDir: first\n"), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(tmpDir, ".specdocs.yaml"), []byte("outputDir: second\n"), 0o644)
	require.NoError(t, err)

	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "first", cfg.OutputDir)
	assert.Equal(t, "specdocs.yaml", ConfigFilePath())
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_SingleField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty input", func(c *Config) { c.Input = " " }, "input"},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "outputDir"},
		{"negative indent", func(c *Config) { c.JSON.Indent = -1 }, "json.indent"},
		{"huge indent", func(c *Config) { c.JSON.Indent = 12 }, "json.indent"},
		{"coverage above 100", func(c *Config) { c.Validation.MinCoverage = 101 }, "validate.minCoverage"},
		{"relative required path", func(c *Config) { c.Validation.RequiredPaths = []string{"menu"} }, "validate.requiredPaths"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"bad glob", func(c *Config) { c.Watch.Include = []string{"[unclosed"} }, "watch.include"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var valErrs ValidationErrors
			require.ErrorAs(t, err, &valErrs)
			assert.Len(t, valErrs, 1)
			assert.Equal(t, tt.field, valErrs[0].Field)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Input = ""
	cfg.OutputDir = ""
	cfg.Watch.Debounce = -5

	err := cfg.Validate()
	require.Error(t, err)

	var valErrs ValidationErrors
	require.ErrorAs(t, err, &valErrs)
	assert.Len(t, valErrs, 3)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "input",
		Message: "input document path is required",
	}
	assert.Contains(t, err.Error(), "input")
	assert.Contains(t, err.Error(), "is required")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
		{Field: "field2", Message: "error2"},
	}
	errStr := errs.Error()
	assert.Contains(t, errStr, "field1")
	assert.Contains(t, errStr, "error1")
	assert.Contains(t, errStr, "field2")
	assert.Contains(t, errStr, "error2")
}

func TestValidationErrors_ErrorEmpty(t *testing.T) {
	errs := ValidationErrors{}
	assert.Equal(t, "no validation errors", errs.Error())
}

func TestValidationErrors_ErrorSingle(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
	}
	assert.Contains(t, errs.Error(), "config validation error")
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "specdocs.yaml"), []byte("outputDir: out\n"), 0o644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadFromPath_NoConfig(t *testing.T) {
	cfg, err := LoadFromPath(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
}

func TestArtifactPath(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = "out"

	assert.Equal(t, filepath.Join("out", "openapi.min.json"), cfg.ArtifactPath(CompactJSONFile))
}
