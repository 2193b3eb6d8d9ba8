// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import "fmt"

// RenderReadme returns the README.md placed next to the generated artifacts.
func RenderReadme(title string) []byte {
	return []byte(fmt.Sprintf(`# %s: OpenAPI documentation

Generated API documentation. Do not edit these files by hand: change the
source document and run `+"`specdocs generate`"+` again.

## Files

- `+"`openapi.yaml`"+`: source specification in YAML
- `+"`openapi.json`"+`: specification in JSON (formatted)
- `+"`openapi.min.json`"+`: specification in JSON (minified)
- `+"`index.html`"+`: interactive documentation (Swagger UI)

## Usage

### For developers
1. Use `+"`openapi.json`"+` to generate client libraries
2. Use `+"`openapi.yaml`"+` to import the API into Postman or Swagger Editor

### For testing
1. Open `+"`index.html`"+` in a browser
2. Use the interactive documentation to try the API

## Generation

The documentation is regenerated by `+"`specdocs generate`"+`, or continuously
with `+"`specdocs watch`"+` while the source document is being edited.
Run `+"`specdocs validate`"+` to check the document before publishing.
`, title))
}
