// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/api2spec/specdocs/internal/config"
	"github.com/api2spec/specdocs/internal/document"
	"github.com/api2spec/specdocs/pkg/types"
)

// ErrValidationFailed is returned when at least one check did not pass.
var ErrValidationFailed = errors.New("validation failed")

// Check identifiers.
const (
	CheckIDSchema        = "schema"
	CheckIDRequiredPaths = "required-paths"
	CheckIDExamples      = "examples"
	CheckIDModel         = "model"
)

// SupportedVersions names the values of the openapi field that the schema
// check accepts.
const SupportedVersions = "3.0.x"

var openAPIVersion = regexp.MustCompile(`^3\.0\.\d+$`)

// Validator runs the structural checks over a document tree.
type Validator struct {
	// RequiredPaths must each be a key of the paths mapping
	RequiredPaths []string

	// MinCoverage is the percentage the example coverage must exceed
	MinCoverage float64

	// Model enables the full OpenAPI model check
	Model bool
}

// NewValidator creates a Validator from the validate section of cfg.
func NewValidator(cfg config.ValidationConfig) *Validator {
	return &Validator{
		RequiredPaths: cfg.RequiredPaths,
		MinCoverage:   cfg.MinCoverage,
		Model:         cfg.Model,
	}
}

// Validate runs every check and collects the results. A failing check never
// prevents the following ones from running. raw is the document text used by
// the model check and may be nil when that check is disabled.
func (v *Validator) Validate(doc types.Node, raw []byte) types.Report {
	report := types.Report{
		Checks: []types.Check{
			v.CheckSchema(doc),
			v.CheckRequiredPaths(doc),
			v.CheckExamples(doc),
		},
	}
	if v.Model {
		report.Checks = append(report.Checks, v.CheckModel(raw))
	}
	return report
}

// CheckSchema verifies the minimal OpenAPI 3.0 structure. The message names
// the first offending field.
func (v *Validator) CheckSchema(doc types.Node) types.Check {
	check := types.Check{ID: CheckIDSchema, Name: "OpenAPI 3.0 schema"}

	if err := schemaError(doc); err != "" {
		check.Message = err
		return check
	}

	check.Passed = true
	check.Message = "document conforms to the OpenAPI 3.0 structure"
	return check
}

func schemaError(doc types.Node) string {
	root, ok := doc.(*types.Mapping)
	if !ok {
		return "document must be a mapping"
	}

	version, ok := root.Get("openapi")
	if !ok {
		return `missing required field "openapi"`
	}
	s, ok := version.(types.Str)
	if !ok {
		return `field "openapi" must be a string`
	}
	if !openAPIVersion.MatchString(string(s)) {
		return fmt.Sprintf(`field "openapi" value %q does not match %s`, s, openAPIVersion)
	}

	info, ok := root.Get("info")
	if !ok {
		return `missing required field "info"`
	}
	infoMap, ok := info.(*types.Mapping)
	if !ok {
		return `field "info" must be a mapping`
	}
	for _, key := range []string{"title", "version"} {
		field := "info." + key
		value, ok := infoMap.Get(key)
		if !ok {
			return fmt.Sprintf("missing required field %q", field)
		}
		if s, ok := value.(types.Str); !ok || s == "" {
			return fmt.Sprintf("field %q must be a non-empty string", field)
		}
	}

	paths, ok := root.Get("paths")
	if !ok {
		return `missing required field "paths"`
	}
	if _, ok := paths.(*types.Mapping); !ok {
		return `field "paths" must be a mapping`
	}
	return ""
}

// CheckRequiredPaths verifies that every required path is documented.
func (v *Validator) CheckRequiredPaths(doc types.Node) types.Check {
	check := types.Check{ID: CheckIDRequiredPaths, Name: "Required endpoints"}

	missing := MissingPaths(doc, v.RequiredPaths)
	if len(missing) > 0 {
		check.Message = "missing required paths: " + strings.Join(missing, ", ")
		return check
	}

	check.Passed = true
	check.Message = "all required paths are present"
	return check
}

// MissingPaths returns the entries of required that are not keys of the
// paths mapping, in checklist order.
func MissingPaths(doc types.Node, required []string) []string {
	paths, _ := lookupMapping(doc, "paths")

	var missing []string
	for _, p := range required {
		if !paths.Has(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// CheckExamples verifies that the share of paths carrying an example exceeds
// MinCoverage.
func (v *Validator) CheckExamples(doc types.Node) types.Check {
	hit, total, pct := Coverage(doc)
	return types.Check{
		ID:      CheckIDExamples,
		Name:    "Example coverage",
		Passed:  pct > v.MinCoverage,
		Message: fmt.Sprintf("examples cover %.1f%% of paths (%d/%d)", pct, hit, total),
	}
}

// Coverage counts the paths with at least one response media type carrying
// an example or examples field. Each path counts once; the first example
// found ends the search for that path. pct is 0 when there are no paths.
func Coverage(doc types.Node) (hit, total int, pct float64) {
	paths, _ := lookupMapping(doc, "paths")
	total = paths.Len()

	for _, p := range paths.Entries() {
		if pathHasExample(p.Value) {
			hit++
		}
	}

	if total > 0 {
		pct = float64(hit) / float64(total) * 100
	}
	return hit, total, pct
}

// pathHasExample reports whether any media type under
// <method>.responses.<status>.content of item has an example.
func pathHasExample(item types.Node) bool {
	found := false
	types.Walk(item, func(path []string, n types.Node) bool {
		m, ok := n.(*types.Mapping)
		if found || !ok {
			return false
		}
		switch len(path) {
		case 2:
			return path[1] == "responses"
		case 4:
			return path[3] == "content"
		case 5:
			found = m.Has("example") || m.Has("examples")
			return false
		}
		return true
	})
	return found
}

// CheckModel builds the full OpenAPI v3 model from raw and reports every
// model error.
func (v *Validator) CheckModel(raw []byte) types.Check {
	check := types.Check{ID: CheckIDModel, Name: "OpenAPI model"}

	d, err := libopenapi.NewDocument(raw)
	if err != nil {
		check.Message = fmt.Sprintf("failed to create document: %v", err)
		return check
	}

	model, modelErrors := d.BuildV3Model()
	if len(modelErrors) > 0 {
		check.Message = fmt.Sprintf("failed to build OpenAPI v3 model: %v", errors.Join(modelErrors...))
		return check
	}
	if model == nil {
		check.Message = "OpenAPI v3 model is empty"
		return check
	}

	check.Passed = true
	check.Message = fmt.Sprintf("OpenAPI v3 model built (%d paths)", countModelPaths(model.Model.Paths))
	return check
}

func lookupMapping(n types.Node, key string) (*types.Mapping, bool) {
	v, ok := types.Lookup(n, key)
	if !ok {
		return nil, false
	}
	m, ok := v.(*types.Mapping)
	return m, ok
}

// LoadForValidation returns the document to validate: the generated
// openapi.json when it exists, otherwise the normalized source document. It
// also returns the raw text and the path it was read from.
func LoadForValidation(cfg *config.Config) (types.Node, []byte, string, error) {
	path := cfg.ArtifactPath(config.FormattedJSONFile)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		path = cfg.Input
	}

	raw, err := document.ReadFile(path)
	if err != nil {
		return nil, nil, path, err
	}
	doc, err := document.Parse(raw, path)
	if err != nil {
		return nil, nil, path, err
	}
	return document.Normalize(doc), raw, path, nil
}

func countModelPaths(paths *v3.Paths) int {
	if paths == nil || paths.PathItems == nil {
		return 0
	}
	n := 0
	for el := paths.PathItems.First(); el != nil; el = el.Next() {
		n++
	}
	return n
}
