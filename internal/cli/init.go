// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/specdocs/internal/config"
)

var (
	initForce bool
	initTitle string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new specdocs configuration file",
	Long: `Initialize a new specdocs configuration file in the current directory.

This command creates a specdocs.yaml file with the default settings that you
can customize for your project. With --force an existing configuration is
rewritten and its settings are kept.

Features:
  - Finds the source document in common locations
  - Infers the fallback page title from go.mod or the directory name

Example:
  specdocs init                         # Create specdocs.yaml
  specdocs init --force                 # Overwrite existing config
  specdocs init --title "Menu API"      # Set the fallback page title`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initTitle, "title", "", "fallback page title for documents without info.title")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "specdocs.yaml"

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	// Start from the existing settings so --force keeps customizations
	cfg, err := config.LoadFromPath(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load existing config: %w", err)
	}

	if input != "" {
		cfg.Input = input
	} else if cfg.Input == config.DefaultInput {
		if detected := detectInput(projectRoot); detected != "" {
			cfg.Input = detected
			printVerbose("Detected source document: %s", detected)
		}
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	if initTitle != "" {
		cfg.HTML.Title = initTitle
	} else if cfg.HTML.Title == config.DefaultTitle {
		if title := detectTitle(projectRoot); title != "" {
			cfg.HTML.Title = title
		}
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Input: %s", cfg.Input)
	printVerbose("Output: %s", cfg.OutputDir)
	printVerbose("Title: %s", cfg.HTML.Title)

	return nil
}

// detectTitle derives a page title from the go.mod module name, or from the
// directory name when there is no go.mod.
// e.g. "github.com/user/food-delivery" -> "Food Delivery API"
func detectTitle(projectRoot string) string {
	name := filepath.Base(projectRoot)
	if module := detectModule(projectRoot); module != "" {
		parts := strings.Split(module, "/")
		name = parts[len(parts)-1]
	}
	return titleFromName(name)
}

func titleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return cases.Title(language.English).String(name) + " API"
}

// detectModule returns the module path declared in go.mod.
func detectModule(projectRoot string) string {
	file, err := os.Open(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module "))
		}
	}
	return ""
}

// detectInput looks for the source document in common locations.
func detectInput(projectRoot string) string {
	candidates := []string{
		config.DefaultInput,
		"docs/openapi-spec/openapi.yml",
		"docs/openapi.yaml",
		"docs/openapi.yml",
		"api/openapi.yaml",
		"api/openapi.yml",
		"openapi.yaml",
		"openapi.yml",
	}

	for _, c := range candidates {
		if stat, err := os.Stat(filepath.Join(projectRoot, c)); err == nil && !stat.IsDir() {
			return c
		}
	}
	return ""
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# specdocs configuration file
# Paths are relative to the directory specdocs runs in.

`
	return append([]byte(header), data...), nil
}
