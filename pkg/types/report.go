// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// Check is the outcome of a single validation check.
type Check struct {
	// ID is a stable identifier of the check (e.g. "schema")
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable name of the check
	Name string `json:"name" yaml:"name"`

	// Passed is true when the check succeeded
	Passed bool `json:"passed" yaml:"passed"`

	// Message describes the outcome
	Message string `json:"message" yaml:"message"`
}

// Status returns "PASS" or "FAIL".
func (c Check) Status() string {
	if c.Passed {
		return "PASS"
	}
	return "FAIL"
}

// Report is the aggregated result of a validation run.
type Report struct {
	// Source is the file the validated document was read from
	Source string `json:"source" yaml:"source"`

	// Checks holds every check in evaluation order
	Checks []Check `json:"checks" yaml:"checks"`
}

// Passed returns true when every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}
