// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/api2spec/specdocs/pkg/types"
)

// ErrBreakingChanges is returned by callers that refuse breaking changes.
var ErrBreakingChanges = errors.New("breaking changes detected")

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new item was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates an item was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates an item was modified.
	DiffTypeModified DiffType = "modified"
)

// httpMethods are the operation keys of a path item, in display order.
var httpMethods = []string{"get", "post", "put", "delete", "patch", "options", "head", "trace"}

// PathChange represents a change to a path/operation.
type PathChange struct {
	Type        DiffType
	Path        string
	Method      string
	Description string
}

// SchemaChange represents a change to a component schema.
type SchemaChange struct {
	Type        DiffType
	Name        string
	Description string
}

// DiffResult contains the differences between two OpenAPI documents.
type DiffResult struct {
	// PathChanges contains all path/operation changes.
	PathChanges []PathChange

	// SchemaChanges contains all schema changes.
	SchemaChanges []SchemaChange

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.PathChanges) == 0 && len(d.SchemaChanges) == 0
}

// Differ compares two OpenAPI document trees.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff compares two documents and returns the differences. Either document
// may be nil. Operations and schemas are compared structurally, so any
// change inside them counts as a modification.
func (d *Differ) Diff(a, b types.Node) *DiffResult {
	result := &DiffResult{
		PathChanges:   []PathChange{},
		SchemaChanges: []SchemaChange{},
	}

	d.diffPaths(a, b, result)
	d.diffSchemas(a, b, result)

	result.HasBreakingChanges = d.detectBreakingChanges(result)
	result.Summary = d.generateSummary(result)

	return result
}

// diffPaths compares the paths between two documents.
func (d *Differ) diffPaths(a, b types.Node, result *DiffResult) {
	aPaths, _ := lookupMapping(a, "paths")
	bPaths, _ := lookupMapping(b, "paths")

	// Find removed and modified paths
	for _, entry := range aPaths.Entries() {
		bItem, exists := bPaths.Get(entry.Key)
		if !exists {
			for _, method := range pathMethods(entry.Value) {
				result.PathChanges = append(result.PathChanges, pathChange(DiffTypeRemoved, entry.Key, method))
			}
			continue
		}
		d.diffPathItem(entry.Key, entry.Value, bItem, result)
	}

	// Find added paths
	for _, entry := range bPaths.Entries() {
		if aPaths.Has(entry.Key) {
			continue
		}
		for _, method := range pathMethods(entry.Value) {
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeAdded, entry.Key, method))
		}
	}
}

// diffPathItem compares operations within a path item.
func (d *Differ) diffPathItem(path string, a, b types.Node, result *DiffResult) {
	for _, method := range httpMethods {
		aOp, aOK := types.Lookup(a, method)
		bOp, bOK := types.Lookup(b, method)

		switch {
		case !aOK && bOK:
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeAdded, path, method))
		case aOK && !bOK:
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeRemoved, path, method))
		case aOK && bOK && !types.Equal(aOp, bOp):
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeModified, path, method))
		}
	}
}

func pathChange(kind DiffType, path, method string) PathChange {
	method = strings.ToUpper(method)
	verb := map[DiffType]string{
		DiffTypeAdded:    "Added",
		DiffTypeRemoved:  "Removed",
		DiffTypeModified: "Modified",
	}[kind]

	return PathChange{
		Type:        kind,
		Path:        path,
		Method:      method,
		Description: fmt.Sprintf("%s %s %s", verb, method, path),
	}
}

// pathMethods returns the HTTP methods defined for a path item.
func pathMethods(item types.Node) []string {
	var methods []string
	for _, method := range httpMethods {
		if _, ok := types.Lookup(item, method); ok {
			methods = append(methods, method)
		}
	}
	return methods
}

// diffSchemas compares components.schemas between two documents.
func (d *Differ) diffSchemas(a, b types.Node, result *DiffResult) {
	aSchemas := componentSchemas(a)
	bSchemas := componentSchemas(b)

	// Find removed and modified schemas
	for _, entry := range aSchemas.Entries() {
		bSchema, exists := bSchemas.Get(entry.Key)
		if !exists {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeRemoved,
				Name:        entry.Key,
				Description: fmt.Sprintf("Removed schema: %s", entry.Key),
			})
		} else if !types.Equal(entry.Value, bSchema) {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeModified,
				Name:        entry.Key,
				Description: fmt.Sprintf("Modified schema: %s", entry.Key),
			})
		}
	}

	// Find added schemas
	for _, entry := range bSchemas.Entries() {
		if !aSchemas.Has(entry.Key) {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type:        DiffTypeAdded,
				Name:        entry.Key,
				Description: fmt.Sprintf("Added schema: %s", entry.Key),
			})
		}
	}
}

func componentSchemas(doc types.Node) *types.Mapping {
	components, _ := lookupMapping(doc, "components")
	schemas, _ := lookupMapping(components, "schemas")
	return schemas
}

// detectBreakingChanges checks if any changes are breaking.
func (d *Differ) detectBreakingChanges(result *DiffResult) bool {
	// Removed operations are breaking
	for _, change := range result.PathChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	// Removed schemas are breaking
	for _, change := range result.SchemaChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	return false
}

// generateSummary creates a human-readable summary of changes.
func (d *Differ) generateSummary(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	pathCounts := make(map[DiffType]int)
	for _, c := range result.PathChanges {
		pathCounts[c.Type]++
	}
	schemaCounts := make(map[DiffType]int)
	for _, c := range result.SchemaChanges {
		schemaCounts[c.Type]++
	}

	var parts []string
	for _, t := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
		if n := pathCounts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d path(s) %s", n, t))
		}
	}
	for _, t := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
		if n := schemaCounts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d schema(s) %s", n, t))
		}
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

func changeSymbol(t DiffType) string {
	switch t {
	case DiffTypeAdded:
		return "+ "
	case DiffTypeRemoved:
		return "- "
	case DiffTypeModified:
		return "~ "
	default:
		return "  "
	}
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== OpenAPI Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	if len(result.PathChanges) > 0 {
		sb.WriteString("--- Path Changes ---\n")

		// Sort changes for deterministic output
		changes := make([]PathChange, len(result.PathChanges))
		copy(changes, result.PathChanges)
		sort.SliceStable(changes, func(i, j int) bool {
			return changes[i].Path < changes[j].Path
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s %s\n", changeSymbol(c.Type), c.Method, c.Path))
		}
		sb.WriteString("\n")
	}

	if len(result.SchemaChanges) > 0 {
		sb.WriteString("--- Schema Changes ---\n")

		changes := make([]SchemaChange, len(result.SchemaChanges))
		copy(changes, result.SchemaChanges)
		sort.Slice(changes, func(i, j int) bool {
			return changes[i].Name < changes[j].Name
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s\n", changeSymbol(c.Type), c.Name))
		}
	}

	return sb.String()
}
