// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/specdocs/internal/openapi"
	"github.com/api2spec/specdocs/pkg/types"
)

// Exit codes for the validate command
const (
	ExitCodeValid   = 0 // Every check passed
	ExitCodeInvalid = 1 // At least one check failed, or the document could not be read
)

var (
	validateSARIF       string
	validateModel       bool
	validateMinCoverage float64
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the OpenAPI document",
	Long: `Validate the OpenAPI document.

The generated openapi.json is validated when it exists, otherwise the source
YAML document. Every check always runs:

  schema          openapi is 3.0.x, info.title and info.version are set, paths is a mapping
  required-paths  every path of the configured checklist is documented
  examples        more than minCoverage percent of the paths carry a response example
  model           the full OpenAPI v3 model builds (only with --model)

Exit codes:
  0  Every check passed
  1  At least one check failed, or the document could not be read

Example:
  specdocs validate
  specdocs validate --model                    # Also build the full OpenAPI model
  specdocs validate --sarif validate.sarif     # Also write a SARIF report`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSARIF, "sarif", "", "also write the report in SARIF format to this path")
	validateCmd.Flags().BoolVar(&validateModel, "model", false, "also build the full OpenAPI v3 model")
	validateCmd.Flags().Float64Var(&validateMinCoverage, "min-coverage", -1, "example coverage percentage that must be exceeded (default from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if validateSARIF != "" {
		cfg.Validation.SARIF = validateSARIF
	}
	if validateModel {
		cfg.Validation.Model = true
	}
	if validateMinCoverage >= 0 {
		cfg.Validation.MinCoverage = validateMinCoverage
	}

	doc, raw, source, err := openapi.LoadForValidation(cfg)
	if err != nil {
		return err
	}
	printInfo("Validating %s", source)
	if paths, ok := types.Lookup(doc, "paths"); ok {
		if m, ok := paths.(*types.Mapping); ok {
			printVerbose("  Paths: %s", strings.Join(m.Keys(), ", "))
		}
	}

	report := openapi.NewValidator(cfg.Validation).Validate(doc, raw)
	report.Source = source

	printReport(report)

	if cfg.Validation.SARIF != "" {
		if err := openapi.WriteSARIF(report, cfg.Validation.SARIF); err != nil {
			return err
		}
		printVerbose("SARIF report written to %s", cfg.Validation.SARIF)
	}

	if !report.Passed() {
		return fmt.Errorf("%w: %d of %d checks failed", openapi.ErrValidationFailed, len(report.Failed()), len(report.Checks))
	}
	return nil
}

// printReport prints one line per check and a summary line.
func printReport(report types.Report) {
	printInfo("")
	printInfo("Validation results:")
	for _, check := range report.Checks {
		printInfo("  %s %s: %s", check.Status(), check.Name, check.Message)
	}
	printInfo("")

	if report.Passed() {
		printInfo("All %d checks passed", len(report.Checks))
		return
	}
	printInfo("%d of %d checks failed", len(report.Failed()), len(report.Checks))
}
