// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package main validates the OpenAPI document and exits 1 when a check fails.
// It takes no flags; settings come from specdocs.yaml when present.
package main

import (
	"fmt"
	"os"

	"github.com/api2spec/specdocs/internal/cli"
)

func main() {
	if err := cli.ExecuteArgs("validate"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
