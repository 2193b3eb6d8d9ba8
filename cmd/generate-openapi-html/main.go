// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package main writes the HTML documentation page of the OpenAPI document.
// It takes no flags; settings come from specdocs.yaml when present.
package main

import (
	"fmt"
	"os"

	"github.com/api2spec/specdocs/internal/cli"
)

func main() {
	if err := cli.ExecuteArgs("html"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
