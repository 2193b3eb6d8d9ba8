// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/specdocs/internal/config"
)

func TestTitleFromName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "kebab case", input: "food-delivery", expected: "Food Delivery API"},
		{name: "snake case", input: "menu_service", expected: "Menu Service API"},
		{name: "dotted", input: "orders.v2", expected: "Orders V2 API"},
		{name: "single word", input: "catalog", expected: "Catalog API"},
		{name: "only separators", input: "--", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titleFromName(tt.input))
		})
	}
}

func TestDetectTitle(t *testing.T) {
	tests := []struct {
		name         string
		goModContent string
		expected     string
	}{
		{
			name:         "github module",
			goModContent: "module github.com/example/food-delivery\n\ngo 1.25\n",
			expected:     "Food Delivery API",
		},
		{
			name:         "simple module",
			goModContent: "module catalog\n",
			expected:     "Catalog API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(tt.goModContent), 0o644))

			assert.Equal(t, tt.expected, detectTitle(dir))
		})
	}
}

func TestDetectTitle_NoGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "restaurant-menu")
	require.NoError(t, os.Mkdir(dir, 0o755))

	assert.Equal(t, "Restaurant Menu API", detectTitle(dir))
}

func TestDetectInput(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", detectInput(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.yml"), []byte("openapi: 3.0.3\n"), 0o644))
	assert.Equal(t, "openapi.yml", detectInput(dir))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "api"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "openapi.yaml"), []byte("openapi: 3.0.3\n"), 0o644))
	assert.Equal(t, "api/openapi.yaml", detectInput(dir))
}

func TestBuildConfigYAML(t *testing.T) {
	cfg := config.Default()
	cfg.HTML.Title = "Menu API"

	data, err := buildConfigYAML(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# specdocs configuration file")
	assert.Contains(t, out, "input: "+config.DefaultInput)
	assert.Contains(t, out, "outputDir: "+config.DefaultOutputDir)
	assert.Contains(t, out, "title: Menu API")
	assert.Contains(t, out, "- /auth/register")
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("go.mod", []byte("module github.com/example/food-delivery\n"), 0o644))

	output, err := executeCommand(rootCmd, "init")
	require.NoError(t, err)
	assert.Contains(t, output, "Created specdocs.yaml")

	cfg, err := config.Load("specdocs.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Food Delivery API", cfg.HTML.Title)
	assert.Equal(t, config.DefaultInput, cfg.Input)
	assert.Equal(t, config.DefaultRequiredPaths(), cfg.Validation.RequiredPaths)
	assert.NoError(t, cfg.Validate())

	_, err = executeCommand(rootCmd, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCommand(rootCmd, "init", "--force", "--title", "Custom API", "-o", "site/api")
	require.NoError(t, err)

	cfg, err = config.Load("specdocs.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Custom API", cfg.HTML.Title)
	assert.Equal(t, "site/api", cfg.OutputDir)
}

func TestInitCommand_ForceKeepsSettings(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("openapi.yaml", []byte("openapi: 3.0.3\n"), 0o644))
	require.NoError(t, os.WriteFile("specdocs.yaml", []byte(`input: api/menu.yaml
html:
  title: Kept API
validate:
  minCoverage: 75
`), 0o644))

	_, err := executeCommand(rootCmd, "init", "--force")
	require.NoError(t, err)

	cfg, err := config.Load("specdocs.yaml")
	require.NoError(t, err)
	assert.Equal(t, "api/menu.yaml", cfg.Input)
	assert.Equal(t, "Kept API", cfg.HTML.Title)
	assert.Equal(t, 75.0, cfg.Validation.MinCoverage)
	assert.Equal(t, config.DefaultOutputDir, cfg.OutputDir)
}
