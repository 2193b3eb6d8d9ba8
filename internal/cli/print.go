// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/specdocs/internal/document"
	"github.com/api2spec/specdocs/internal/openapi"
)

// Print formats
const (
	formatJSON = "json"
	formatMin  = "min"
	formatYAML = "yaml"
)

var printFormat string

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the OpenAPI document to stdout",
	Long: `Print the OpenAPI document to standard output.

If a file is provided, it is printed unchanged. Otherwise the source document
is loaded, normalized and printed in the requested format without writing any
file.

Formats:
  json  formatted JSON (default)
  min   minified JSON
  yaml  YAML

Example:
  specdocs print                                   # Source as formatted JSON
  specdocs print -f yaml                           # Source as normalized YAML
  specdocs print docs/openapi-generated/index.html # Print an existing file
  specdocs print | jq '.paths'                     # Pipe to jq for processing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVarP(&printFormat, "format", "f", formatJSON, "output format: json, min, yaml")
}

func runPrint(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		// Print existing file
		filePath := args[0]
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
		_, err = stdout.Write(data)
		return err
	}

	if printFormat != formatJSON && printFormat != formatMin && printFormat != formatYAML {
		return fmt.Errorf("unsupported format %q, must be one of: json, min, yaml", printFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := document.Load(cfg.Input)
	if err != nil {
		return err
	}
	doc = document.Normalize(doc)

	writer := &openapi.Writer{Indent: cfg.JSON.Indent}
	switch printFormat {
	case formatYAML:
		return document.EncodeYAML(doc, stdout)
	case formatMin:
		if err := writer.WriteCompactJSON(doc, stdout); err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout)
		return err
	default:
		return writer.WriteJSON(doc, stdout)
	}
}
