// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/specdocs/internal/config"
	"github.com/api2spec/specdocs/internal/document"
	"github.com/api2spec/specdocs/internal/openapi"
	"github.com/api2spec/specdocs/pkg/types"
)

var diffFailOnBreaking bool

var diffCmd = &cobra.Command{
	Use:   "diff [old] [new]",
	Short: "Compare two OpenAPI documents",
	Long: `Compare two OpenAPI documents and show the changed operations and
component schemas.

If only one file is provided, it is compared against the source document.

If no files are provided, the generated openapi.json is compared against the
source document, which shows what the next generate run will publish.

Example:
  specdocs diff                           # Published vs source
  specdocs diff old.yaml                  # File vs source
  specdocs diff old.yaml new.yaml         # Compare two files
  specdocs diff --fail-on-breaking        # Exit non-zero on removals`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffFailOnBreaking, "fail-on-breaking", false, "exit with an error when breaking changes are found")
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldPath, newPath, err := diffPaths(args)
	if err != nil {
		return err
	}

	printVerbose("Comparing %s against %s", oldPath, newPath)

	a, err := loadNormalized(oldPath)
	if err != nil {
		return err
	}
	b, err := loadNormalized(newPath)
	if err != nil {
		return err
	}

	result := openapi.NewDiffer().Diff(a, b)
	fmt.Fprintln(stdout, openapi.FormatDiff(result))

	if diffFailOnBreaking && result.HasBreakingChanges {
		return fmt.Errorf("%w: %s", openapi.ErrBreakingChanges, result.Summary)
	}
	return nil
}

// diffPaths resolves the old and new documents from the arguments, filling
// in the published JSON and the source document as needed.
func diffPaths(args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return "", "", err
	}
	if len(args) == 1 {
		return args[0], cfg.Input, nil
	}

	published := cfg.ArtifactPath(config.FormattedJSONFile)
	if _, err := os.Stat(published); err != nil {
		return "", "", fmt.Errorf("no generated document at %s, run generate first", published)
	}
	return published, cfg.Input, nil
}

func loadNormalized(path string) (types.Node, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return document.Normalize(doc), nil
}
