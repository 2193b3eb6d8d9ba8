// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/api2spec/specdocs/internal/config"
	"github.com/api2spec/specdocs/internal/openapi"
)

var (
	generateNoStamp  bool
	generateNoReadme bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the documentation artifacts",
	Long: `Generate the documentation artifacts from the source OpenAPI document.

The source YAML is loaded, date values are normalized to ISO-8601 strings,
and the following files are written to the output directory:

  openapi.json      formatted JSON
  openapi.min.json  minified JSON
  openapi.yaml      byte-for-byte copy of the source
  index.html        self-contained Swagger UI page
  README.md         description of the generated files

Example:
  specdocs generate                                   # Use specdocs.yaml or defaults
  specdocs generate -i api/openapi.yaml -o public/api # Custom input and output
  specdocs generate --no-stamp                        # Omit info.x-generated`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateNoStamp, "no-stamp", false, "do not add info.x-generated to the JSON artifacts")
	generateCmd.Flags().BoolVar(&generateNoReadme, "no-readme", false, "do not write README.md")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if generateNoStamp {
		cfg.Generation.Stamp = false
	}
	if generateNoReadme {
		cfg.Generation.Readme = false
	}

	_, err = generate(cfg)
	return err
}

// generate runs one full generation and reports the written files.
func generate(cfg *config.Config) (*openapi.Result, error) {
	printInfo("Generating documentation from %s", cfg.Input)

	result, err := openapi.NewPipeline(cfg, Version).Generate()
	if err != nil {
		return nil, err
	}

	if result.SourceErr != nil {
		printWarning("source copy skipped: %v", result.SourceErr)
	}
	for _, f := range result.Files {
		printVerbose("  wrote %s", f)
	}
	printInfo("Generated %d files in %s", len(result.Files), cfg.OutputDir)

	return result, nil
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Generate only the HTML documentation page",
	Long: `Generate only index.html, the self-contained Swagger UI page, from the
source OpenAPI document. The JSON artifacts are left untouched.

Example:
  specdocs html
  specdocs html -o public/api`,
	Args: cobra.NoArgs,
	RunE: runHTML,
}

func runHTML(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := openapi.NewPipeline(cfg, Version).GenerateHTML()
	if err != nil {
		return err
	}

	printInfo("HTML documentation written to %s", path)
	return nil
}
