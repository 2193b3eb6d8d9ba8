// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/api2spec/specdocs/pkg/types"
)

const sarifInformationURI = "https://spec.openapis.org/oas/v3.0.3"

// NewSARIF converts a validation report to a SARIF 2.1.0 log. Every check
// becomes a rule; every failed check becomes an error result located at the
// validated document.
func NewSARIF(report types.Report) (*sarif.Report, error) {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("specdocs", sarifInformationURI)
	for _, check := range report.Checks {
		name := check.Name
		rule := run.AddRule(check.ID).
			WithDescription(check.Name).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})
		rule.Name = &name

		if check.Passed {
			continue
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(report.Source)),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(check.Message)).
			WithLevel("error").
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	log.AddRun(run)

	return log, nil
}

// WriteSARIF writes report as SARIF to path, replacing any previous file.
func WriteSARIF(report types.Report, path string) error {
	log, err := NewSARIF(report)
	if err != nil {
		return err
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create SARIF file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := log.PrettyWrite(file); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}
