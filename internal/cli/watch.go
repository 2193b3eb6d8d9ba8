// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/api2spec/specdocs/internal/config"
	"github.com/api2spec/specdocs/internal/openapi"
	"github.com/api2spec/specdocs/internal/watch"
	"github.com/api2spec/specdocs/pkg/types"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the documentation whenever the source changes",
	Long: `Watch the directory of the source OpenAPI document and regenerate every
artifact when a matching file changes.

The documentation is generated once at startup. Changes are debounced so that
an editor saving several files results in a single regeneration. Generation
errors are reported and watching continues. After each regeneration a summary
of the changed operations and schemas is printed.

Example:
  specdocs watch                          # Watch the source directory
  specdocs watch --debounce 1000          # Wait 1s before regenerating`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchAndGenerate(ctx, cfg)
}

// watchAndGenerate generates once and then after every change until ctx is
// done.
func watchAndGenerate(ctx context.Context, cfg *config.Config) error {
	root := filepath.Dir(cfg.Input)

	w, err := watch.Start(watch.Options{
		Root:     root,
		Include:  cfg.Watch.Include,
		Ignore:   []string{cfg.OutputDir},
		Debounce: time.Duration(cfg.Watch.Debounce) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Include: %s", strings.Join(cfg.Watch.Include, ", "))

	var last types.Node
	if result, err := generate(cfg); err != nil {
		printError("%v", err)
	} else {
		last = result.Document
	}

	printInfo("Watching for changes in: %s", root)
	printInfo("Press Ctrl+C to stop")

	err = w.Run(ctx, func(paths []string) {
		printInfo("Changed: %s", strings.Join(paths, ", "))
		result, err := generate(cfg)
		if err != nil {
			printError("%v", err)
			return
		}
		if last != nil {
			printInfo("API changes: %s", openapi.NewDiffer().Diff(last, result.Document).Summary)
		}
		last = result.Document
	})
	if err != nil {
		return err
	}

	printInfo("Stopped watching")
	return nil
}
