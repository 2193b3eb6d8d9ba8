// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/api2spec/specdocs/pkg/types"
)

// Normalize returns a copy of n in which every value is representable in
// strict JSON: timestamps become their ISO-8601 text and non-finite numbers
// become their YAML spelling. All other nodes are copied unchanged, so
// normalizing twice is the same as normalizing once.
func Normalize(n types.Node) types.Node {
	return types.Transform(n, func(leaf types.Node) types.Node {
		switch v := leaf.(type) {
		case types.Timestamp:
			return types.Str(v.String())
		case types.Number:
			if !v.Finite() {
				return types.Str(v.Text)
			}
		}
		return leaf
	})
}

// GeneratorName identifies specdocs in the x-generated block.
const GeneratorName = "specdocs"

// Generated describes the x-generated block added to info by Stamp.
type Generated struct {
	Timestamp time.Time
	Generator string
	Version   string
	RunID     string
}

// NewGenerated returns a Generated for the current run.
func NewGenerated(version string, now time.Time) Generated {
	return Generated{
		Timestamp: now,
		Generator: GeneratorName,
		Version:   version,
		RunID:     uuid.NewString(),
	}
}

// Stamp returns a copy of n whose info mapping carries an x-generated block.
// Documents without an info mapping are returned as an unchanged copy.
func Stamp(n types.Node, g Generated) types.Node {
	out := types.Transform(n, func(leaf types.Node) types.Node { return leaf })

	info, ok := types.Lookup(out, "info")
	if !ok {
		return out
	}
	infoMap, ok := info.(*types.Mapping)
	if !ok {
		return out
	}

	block := types.NewMapping()
	block.Set("timestamp", types.Str(g.Timestamp.Format(time.RFC3339)))
	block.Set("generator", types.Str(g.Generator))
	block.Set("version", types.Str(g.Version))
	if g.RunID != "" {
		block.Set("runId", types.Str(g.RunID))
	}
	infoMap.Set("x-generated", block)

	return out
}
