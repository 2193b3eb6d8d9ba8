// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/api2spec/specdocs/internal/config"
	"github.com/api2spec/specdocs/internal/document"
	"github.com/api2spec/specdocs/pkg/types"
)

// Result describes one generation run.
type Result struct {
	// Document is the normalized document the artifacts were rendered from
	Document types.Node

	// Files lists the artifacts written, in write order
	Files []string

	// SourceErr is set when the source copy was skipped because the source
	// file disappeared; the other artifacts are still written.
	SourceErr error
}

// Pipeline produces the documentation artifacts of one source document.
type Pipeline struct {
	config  *config.Config
	writer  *Writer
	html    *HTMLRenderer
	version string

	// Now returns the generation time (default: time.Now)
	Now func() time.Time
}

// NewPipeline creates a Pipeline. version is recorded in the x-generated
// block of the JSON artifacts.
func NewPipeline(cfg *config.Config, version string) *Pipeline {
	return &Pipeline{
		config:  cfg,
		writer:  &Writer{Indent: cfg.JSON.Indent},
		html:    NewHTMLRenderer(cfg.HTML.WidgetURL),
		version: version,
		Now:     time.Now,
	}
}

// Generate loads the source document and writes every artifact.
func (p *Pipeline) Generate() (*Result, error) {
	doc, err := document.Load(p.config.Input)
	if err != nil {
		return nil, err
	}
	return p.GenerateFrom(doc)
}

// GenerateFrom writes every artifact from an already loaded document.
func (p *Pipeline) GenerateFrom(doc types.Node) (*Result, error) {
	now := p.Now()
	normalized := document.Normalize(doc)

	published := normalized
	if p.config.Generation.Stamp {
		published = document.Stamp(normalized, document.NewGenerated(p.version, now))
	}

	result := &Result{Document: normalized}

	formatted, err := p.writer.RenderFormatted(published)
	if err != nil {
		return nil, err
	}
	compact, err := p.writer.RenderCompact(published)
	if err != nil {
		return nil, err
	}

	if err := p.write(result, config.FormattedJSONFile, formatted); err != nil {
		return nil, err
	}
	if err := p.write(result, config.CompactJSONFile, compact); err != nil {
		return nil, err
	}

	dst := p.config.ArtifactPath(config.SourceCopyFile)
	if err := CopySource(p.config.Input, dst); err != nil {
		if !errors.Is(err, ErrSourceMissing) {
			return nil, err
		}
		result.SourceErr = err
	} else {
		result.Files = append(result.Files, dst)
	}

	page, err := p.html.Render(PageFor(normalized, compact, p.config.HTML.Title, now))
	if err != nil {
		return nil, err
	}
	if err := p.write(result, config.HTMLFile, page); err != nil {
		return nil, err
	}

	if p.config.Generation.Readme {
		title := PageFor(normalized, nil, p.config.HTML.Title, now).Title
		if err := p.write(result, config.ReadmeFile, RenderReadme(title)); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// GenerateHTML writes only the HTML viewer and returns its path.
func (p *Pipeline) GenerateHTML() (string, error) {
	doc, err := document.Load(p.config.Input)
	if err != nil {
		return "", err
	}
	normalized := document.Normalize(doc)

	compact, err := p.writer.RenderCompact(normalized)
	if err != nil {
		return "", err
	}
	page, err := p.html.Render(PageFor(normalized, compact, p.config.HTML.Title, p.Now()))
	if err != nil {
		return "", err
	}

	path := p.config.ArtifactPath(config.HTMLFile)
	if err := WriteFile(path, page); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", config.HTMLFile, err)
	}
	return path, nil
}

func (p *Pipeline) write(result *Result, name string, data []byte) error {
	path := p.config.ArtifactPath(name)
	if err := WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	result.Files = append(result.Files, path)
	return nil
}
