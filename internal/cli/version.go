// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/api2spec/specdocs/internal/openapi"
)

// Version information set via ldflags during build.
var (
	// Version is the semantic version of the application.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, build details and the OpenAPI versions the validator accepts.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout, "specdocs %s\n", Version)
		fmt.Fprintf(stdout, "  OpenAPI:    %s\n", openapi.SupportedVersions)
		fmt.Fprintf(stdout, "  Commit:     %s\n", Commit)
		fmt.Fprintf(stdout, "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(stdout, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(stdout, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

// GetVersionInfo returns formatted version information.
func GetVersionInfo() string {
	return fmt.Sprintf("specdocs %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
