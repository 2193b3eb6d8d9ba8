// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/specdocs/internal/config"
	"github.com/api2spec/specdocs/pkg/types"
)

const validSpec = `openapi: 3.0.3
info:
  title: Food Delivery API
  version: 1.0.0
paths:
  /auth/register:
    post:
      responses:
        "201":
          description: Created
          content:
            application/json:
              example: {id: 1}
  /auth/login:
    post:
      responses:
        "200":
          description: OK
          content:
            application/json:
              examples:
                ok: {value: {token: abc}}
  /restaurants:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              example: []
  /dishes:
    get:
      responses:
        "200":
          description: OK
  /orders:
    post:
      responses:
        "201":
          description: Created
          content:
            application/json:
              example: {id: 7}
  /promotions:
    get:
      responses:
        "200":
          description: OK
`

func defaultValidator() *Validator {
	return NewValidator(config.Default().Validation)
}

func TestValidator_Validate_AllPass(t *testing.T) {
	report := defaultValidator().Validate(parseSpec(t, validSpec), nil)

	require.Len(t, report.Checks, 3)
	assert.True(t, report.Passed(), "failed checks: %v", report.Failed())
	assert.Equal(t, "examples cover 66.7% of paths (4/6)", report.Checks[2].Message)
}

func TestValidator_CheckSchema(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		passed  bool
		message string
	}{
		{
			name:    "valid",
			spec:    "openapi: 3.0.3\ninfo: {title: A, version: \"1\"}\npaths: {}\n",
			passed:  true,
			message: "document conforms to the OpenAPI 3.0 structure",
		},
		{
			name:    "not a mapping",
			spec:    "- openapi\n",
			message: "document must be a mapping",
		},
		{
			name:    "missing openapi",
			spec:    "info: {title: A, version: \"1\"}\npaths: {}\n",
			message: `missing required field "openapi"`,
		},
		{
			name:    "openapi not a string",
			spec:    "openapi: 3\ninfo: {title: A, version: \"1\"}\npaths: {}\n",
			message: `field "openapi" must be a string`,
		},
		{
			name:    "openapi 3.1",
			spec:    "openapi: 3.1.0\ninfo: {title: A, version: \"1\"}\npaths: {}\n",
			message: `field "openapi" value "3.1.0" does not match ^3\.0\.\d+$`,
		},
		{
			name:    "missing info",
			spec:    "openapi: 3.0.0\npaths: {}\n",
			message: `missing required field "info"`,
		},
		{
			name:    "missing info.title",
			spec:    "openapi: 3.0.3\ninfo: {version: \"1\"}\npaths: {}\n",
			message: `missing required field "info.title"`,
		},
		{
			name:    "empty info.version",
			spec:    "openapi: 3.0.3\ninfo: {title: A, version: \"\"}\npaths: {}\n",
			message: `field "info.version" must be a non-empty string`,
		},
		{
			name:    "numeric info.version",
			spec:    "openapi: 3.0.3\ninfo: {title: A, version: 1.0}\npaths: {}\n",
			message: `field "info.version" must be a non-empty string`,
		},
		{
			name:    "missing paths",
			spec:    "openapi: 3.0.3\ninfo: {title: A, version: \"1\"}\n",
			message: `missing required field "paths"`,
		},
		{
			name:    "paths not a mapping",
			spec:    "openapi: 3.0.3\ninfo: {title: A, version: \"1\"}\npaths: []\n",
			message: `field "paths" must be a mapping`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := defaultValidator().CheckSchema(parseSpec(t, tt.spec))
			assert.Equal(t, CheckIDSchema, check.ID)
			assert.Equal(t, tt.passed, check.Passed)
			assert.Equal(t, tt.message, check.Message)
		})
	}
}

func TestValidator_CheckRequiredPaths(t *testing.T) {
	doc := parseSpec(t, "paths:\n  /restaurants: {}\n")

	check := defaultValidator().CheckRequiredPaths(doc)

	assert.False(t, check.Passed)
	assert.Equal(t, "missing required paths: /auth/register, /auth/login, /dishes, /orders, /promotions", check.Message)
	assert.Equal(t, []string{"/auth/register", "/auth/login", "/dishes", "/orders", "/promotions"},
		MissingPaths(doc, config.DefaultRequiredPaths()))
}

func TestValidator_CheckRequiredPaths_NoPaths(t *testing.T) {
	doc := parseSpec(t, "openapi: 3.0.3\n")

	assert.Equal(t, config.DefaultRequiredPaths(), MissingPaths(doc, config.DefaultRequiredPaths()))
	assert.Empty(t, MissingPaths(doc, nil))
}

// coverageSpec builds a document with total paths of which the first withExample
// carry a response example.
func coverageSpec(total, withExample int) string {
	var sb strings.Builder
	sb.WriteString("paths:\n")
	for i := 0; i < total; i++ {
		sb.WriteString("  /p" + string(rune('a'+i)) + ":\n")
		sb.WriteString("    get:\n      responses:\n        \"200\":\n          description: OK\n")
		if i < withExample {
			sb.WriteString("          content:\n            application/json:\n              example: {ok: true}\n")
		}
	}
	return sb.String()
}

func TestValidator_CheckExamples_Boundary(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		withExample int
		pct         float64
		passed      bool
		message     string
	}{
		{name: "half", total: 4, withExample: 2, pct: 50.0, passed: false, message: "examples cover 50.0% of paths (2/4)"},
		{name: "three quarters", total: 4, withExample: 3, pct: 75.0, passed: true, message: "examples cover 75.0% of paths (3/4)"},
		{name: "all", total: 4, withExample: 4, pct: 100.0, passed: true, message: "examples cover 100.0% of paths (4/4)"},
		{name: "no paths", total: 0, withExample: 0, pct: 0, passed: false, message: "examples cover 0.0% of paths (0/0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseSpec(t, coverageSpec(tt.total, tt.withExample))

			hit, total, pct := Coverage(doc)
			assert.Equal(t, tt.withExample, hit)
			assert.Equal(t, tt.total, total)
			assert.InDelta(t, tt.pct, pct, 1e-9)

			check := defaultValidator().CheckExamples(doc)
			assert.Equal(t, tt.passed, check.Passed)
			assert.Equal(t, tt.message, check.Message)
		})
	}
}

func TestCoverage_CountsEachPathOnce(t *testing.T) {
	doc := parseSpec(t, `paths:
  /orders:
    parameters:
      - name: id
    get:
      responses:
        "200":
          content:
            application/json: {example: {}}
            application/xml: {examples: {}}
        "404":
          content:
            application/json: {example: {}}
    post:
      responses:
        "201":
          content:
            application/json: {example: {}}
  /dishes:
    get:
      responses:
        "200":
          content:
            application/json: {schema: {type: object}}
`)

	hit, total, pct := Coverage(doc)
	assert.Equal(t, 1, hit)
	assert.Equal(t, 2, total)
	assert.InDelta(t, 50.0, pct, 1e-9)
}

func TestCoverage_ExampleLocations(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected bool
	}{
		{
			name:     "response example",
			item:     `{get: {responses: {"200": {content: {application/json: {example: 1}}}}}}`,
			expected: true,
		},
		{
			name:     "response examples",
			item:     `{get: {responses: {default: {content: {text/plain: {examples: {a: {value: x}}}}}}}}`,
			expected: true,
		},
		{
			name:     "request body only",
			item:     `{post: {requestBody: {content: {application/json: {example: 1}}}}}`,
			expected: false,
		},
		{
			name:     "schema example",
			item:     `{get: {responses: {"200": {content: {application/json: {schema: {example: 1}}}}}}}`,
			expected: false,
		},
		{
			name:     "responses as a list",
			item:     `{get: {responses: [{content: {application/json: {example: 1}}}]}}`,
			expected: false,
		},
		{
			name:     "not a mapping",
			item:     `[{get: {responses: {"200": {content: {application/json: {example: 1}}}}}}]`,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseSpec(t, "paths:\n  /x: "+tt.item+"\n")
			hit, total, _ := Coverage(doc)
			assert.Equal(t, 1, total)
			assert.Equal(t, tt.expected, hit == 1)
		})
	}
}

func TestValidator_Validate_RunsEveryCheck(t *testing.T) {
	doc := parseSpec(t, "openapi: 2.0\npaths:\n  /restaurants: {}\n")

	report := defaultValidator().Validate(doc, nil)

	require.Len(t, report.Checks, 3)
	assert.False(t, report.Passed())
	assert.Len(t, report.Failed(), 3)
	assert.Equal(t, []string{CheckIDSchema, CheckIDRequiredPaths, CheckIDExamples},
		[]string{report.Checks[0].ID, report.Checks[1].ID, report.Checks[2].ID})
}

func TestValidator_CheckModel(t *testing.T) {
	v := defaultValidator()
	v.Model = true

	report := v.Validate(parseSpec(t, validSpec), []byte(validSpec))
	require.Len(t, report.Checks, 4)

	model := report.Checks[3]
	assert.Equal(t, CheckIDModel, model.ID)
	assert.True(t, model.Passed, model.Message)
	assert.Equal(t, "OpenAPI v3 model built (6 paths)", model.Message)
}

func TestValidator_CheckModel_Invalid(t *testing.T) {
	check := defaultValidator().CheckModel([]byte("title: not an openapi document\n"))

	assert.False(t, check.Passed)
	assert.NotEmpty(t, check.Message)
}

func TestLoadForValidation_PrefersGeneratedJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input = filepath.Join(dir, "openapi.yaml")
	cfg.OutputDir = filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(cfg.Input, []byte("openapi: 3.0.0\nsource: yaml\n"), 0o644))

	doc, raw, path, err := LoadForValidation(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Input, path)
	source, _ := types.LookupString(doc, "source")
	assert.Equal(t, "yaml", source)
	assert.Contains(t, string(raw), "source: yaml")

	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
	jsonPath := cfg.ArtifactPath(config.FormattedJSONFile)
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"openapi": "3.0.0", "source": "json"}`), 0o644))

	doc, _, path, err = LoadForValidation(cfg)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, path)
	source, _ = types.LookupString(doc, "source")
	assert.Equal(t, "json", source)
}

func TestLoadForValidation_NormalizesSource(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input = filepath.Join(dir, "openapi.yaml")
	cfg.OutputDir = filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(cfg.Input, []byte("released: 2024-01-15\n"), 0o644))

	doc, _, _, err := LoadForValidation(cfg)
	require.NoError(t, err)
	released, ok := types.LookupString(doc, "released")
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", released)
}

func TestLoadForValidation_Missing(t *testing.T) {
	cfg := config.Default()
	cfg.Input = filepath.Join(t.TempDir(), "missing.yaml")
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")

	_, _, _, err := LoadForValidation(cfg)
	require.Error(t, err)
}
