// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/api2spec/specdocs/pkg/types"
)

// TimestampLayout is the layout of the generation time shown on the page.
const TimestampLayout = "2006-01-02 15:04:05"

// Page holds everything substituted into the HTML viewer.
type Page struct {
	// Title is the page and header title
	Title string

	// Version is the API version from info.version
	Version string

	// BaseURL is the first server URL, "/" when none is declared
	BaseURL string

	// Generated is the generation time
	Generated time.Time

	// Spec is the compact JSON form of the document
	Spec []byte
}

// PageFor collects the page metadata from a normalized document.
func PageFor(doc types.Node, spec []byte, defaultTitle string, now time.Time) Page {
	page := Page{
		Title:     defaultTitle,
		BaseURL:   "/",
		Generated: now,
		Spec:      spec,
	}

	if title, ok := types.LookupString(doc, "info", "title"); ok && title != "" {
		page.Title = title
	}
	if version, ok := types.LookupString(doc, "info", "version"); ok {
		page.Version = version
	}
	if servers, ok := types.Lookup(doc, "servers"); ok {
		if seq, ok := servers.(types.Sequence); ok && len(seq) > 0 {
			if url, ok := types.LookupString(seq[0], "url"); ok && url != "" {
				page.BaseURL = url
			}
		}
	}

	return page
}

// EmbedJSON makes JSON text safe to place inside a <script> element. "</"
// becomes "<\/" and "<!--" becomes "<\u0021--"; both are valid JSON escapes
// and can only occur inside string literals, so the embedded text still
// parses to the same value.
func EmbedJSON(spec []byte) string {
	s := strings.ReplaceAll(string(spec), "</", `<\/`)
	return strings.ReplaceAll(s, "<!--", `<\u0021--`)
}

// HTMLRenderer renders the self-contained Swagger UI page.
type HTMLRenderer struct {
	// WidgetURL is the base URL of the swagger-ui-dist package
	WidgetURL string

	tmpl *template.Template
}

// NewHTMLRenderer creates a renderer that loads Swagger UI from widgetURL.
func NewHTMLRenderer(widgetURL string) *HTMLRenderer {
	return &HTMLRenderer{
		WidgetURL: strings.TrimSuffix(widgetURL, "/"),
		tmpl:      template.Must(template.New("index.html").Parse(pageTemplate)),
	}
}

// Render produces the HTML document for page.
func (r *HTMLRenderer) Render(page Page) ([]byte, error) {
	data := struct {
		Title     string
		Version   string
		BaseURL   string
		Timestamp string
		WidgetURL string
		Spec      string
	}{
		Title:     page.Title,
		Version:   page.Version,
		BaseURL:   page.BaseURL,
		Timestamp: page.Generated.Format(TimestampLayout),
		WidgetURL: r.WidgetURL,
		Spec:      EmbedJSON(page.Spec),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// SpecScriptOpen and SpecScriptClose delimit the embedded document.
const (
	SpecScriptOpen  = `<script id="openapi-spec" type="application/json">`
	SpecScriptClose = `</script>`
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{html .Title}}</title>
    <link rel="stylesheet" href="{{html .WidgetURL}}/swagger-ui.css">
    <style>
        body { margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; }
        #swagger-ui { padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; text-align: center; }
        .header h1 { margin: 0; font-size: 28px; }
        .info-box { background: #f8f9fa; border-left: 4px solid #667eea; padding: 15px; margin: 20px; border-radius: 4px; }
        .download-links { margin: 20px; }
        .download-links a { display: inline-block; margin-right: 10px; padding: 10px 15px; background: #667eea; color: white; text-decoration: none; border-radius: 4px; }
        .download-links a:hover { background: #764ba2; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{html .Title}}</h1>
    </div>

    <div class="info-box">
        <p>API version: <strong>{{html .Version}}</strong></p>
        <p>Generated: <strong>{{html .Timestamp}}</strong></p>
        <p>Base URL: <code>{{html .BaseURL}}</code></p>
    </div>

    <div class="download-links">
        <a href="openapi.json" download>Download JSON</a>
        <a href="openapi.min.json" download>Download minified JSON</a>
        <a href="openapi.yaml" download>Download YAML</a>
    </div>

    <div id="swagger-ui"></div>

    <script id="openapi-spec" type="application/json">
{{.Spec}}
    </script>

    <script src="{{html .WidgetURL}}/swagger-ui-bundle.js"></script>
    <script src="{{html .WidgetURL}}/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            const spec = JSON.parse(document.getElementById('openapi-spec').textContent);
            window.ui = SwaggerUIBundle({
                spec: spec,
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout",
                validatorUrl: null,
                defaultModelsExpandDepth: -1,
                docExpansion: 'list',
                filter: true,
                displayRequestDuration: true
            });
        };
    </script>
</body>
</html>
`
