// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for specdocs.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/specdocs/internal/config"
)

// Global flags
var (
	cfgFile   string
	input     string
	outputDir string
	verbose   bool
	quiet     bool
)

// Output streams, bound to the executing command.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "specdocs",
	Short: "OpenAPI documentation generator and validator",
	Long: `specdocs turns a hand-written OpenAPI YAML document into published
documentation: formatted and minified JSON, a copy of the source, a
self-contained Swagger UI page and a README. It also validates the document
against a minimal OpenAPI 3.0 structure, a checklist of required endpoints
and an example coverage threshold.

Example:
  specdocs generate                    # Generate every artifact
  specdocs html                        # Regenerate only index.html
  specdocs validate                    # Validate the document
  specdocs watch                       # Regenerate whenever the source changes
  specdocs diff old.yaml new.yaml      # Compare two documents
  specdocs init                        # Create a specdocs.yaml config file`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		stdout = cmd.OutOrStdout()
		stderr = cmd.ErrOrStderr()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteArgs runs the root command with a fixed argument list instead of
// os.Args.
func ExecuteArgs(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: specdocs.yaml)")
	rootCmd.PersistentFlags().StringVarP(&input, "input", "i", "", "source OpenAPI document (default: "+config.DefaultInput+")")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (default: "+config.DefaultOutputDir+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(diffCmd)
}

// loadConfig loads the configuration, applies the global flag overrides and
// validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if input != "" {
		cfg.Input = input
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Configuration:")
	if path := config.ConfigFilePath(); cfgFile == "" && path != "" {
		printVerbose("  Config: %s", path)
	} else if cfgFile != "" {
		printVerbose("  Config: %s", cfgFile)
	}
	printVerbose("  Input: %s", cfg.Input)
	printVerbose("  Output: %s", cfg.OutputDir)

	return cfg, nil
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// printWarning prints a warning that does not stop the command.
func printWarning(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Warning: "+format+"\n", args...)
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
}
