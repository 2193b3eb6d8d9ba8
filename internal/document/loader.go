// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package document loads OpenAPI source documents into the tree model of
// pkg/types and applies the pure tree transformations of the pipeline.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/specdocs/pkg/types"
)

// ErrNotFound is returned when the document path does not exist.
var ErrNotFound = errors.New("document not found")

// ParseError is returned when a document is not well-formed YAML or JSON, or
// uses a construct the tree model cannot represent.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// YAML core schema tags as reported by yaml.Node.ShortTag.
const (
	tagStr       = "!!str"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagBool      = "!!bool"
	tagNull      = "!!null"
	tagTimestamp = "!!timestamp"
	tagBinary    = "!!binary"
	tagMerge     = "!!merge"
)

// jsonNumber matches literals that are already valid JSON numbers.
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ReadFile reads the raw bytes of a document, mapping a missing file to
// ErrNotFound.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Load reads and parses the document at path. JSON input is accepted as well,
// being a subset of YAML.
func Load(path string) (types.Node, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse converts YAML or JSON text into a tree. name is only used in errors.
// An empty document yields Null.
func Parse(data []byte, name string) (types.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}

	c := &converter{visiting: make(map[*yaml.Node]bool)}
	n, err := c.node(&root)
	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	return n, nil
}

type converter struct {
	// visiting guards against aliases that refer to one of their ancestors
	visiting map[*yaml.Node]bool
}

func (c *converter) node(n *yaml.Node) (types.Node, error) {
	switch n.Kind {
	case 0:
		return types.Null{}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return types.Null{}, nil
		}
		return c.node(n.Content[0])
	case yaml.AliasNode:
		if c.visiting[n.Alias] {
			return nil, fmt.Errorf("line %d: recursive alias %q", n.Line, n.Value)
		}
		c.visiting[n.Alias] = true
		defer delete(c.visiting, n.Alias)
		return c.node(n.Alias)
	case yaml.MappingNode:
		return c.mapping(n)
	case yaml.SequenceNode:
		seq := make(types.Sequence, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.node(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		return scalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// mapping converts a mapping node. Entries pulled in through merge keys come
// first and are overridden by explicit keys; a repeated key keeps its first
// position and takes the last value.
func (c *converter) mapping(n *yaml.Node) (types.Node, error) {
	out := types.NewMapping()

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == tagMerge {
			if err := c.merge(out, v); err != nil {
				return nil, err
			}
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == tagMerge {
			continue
		}
		key, err := keyText(k)
		if err != nil {
			return nil, err
		}
		value, err := c.node(v)
		if err != nil {
			return nil, err
		}
		out.Set(key, value)
	}

	return out, nil
}

func (c *converter) merge(into *types.Mapping, v *yaml.Node) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, src := range sources {
		merged, err := c.node(src)
		if err != nil {
			return err
		}
		m, ok := merged.(*types.Mapping)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		for _, e := range m.Entries() {
			if !into.Has(e.Key) {
				into.Set(e.Key, e.Value)
			}
		}
	}
	return nil
}

// keyText returns the string form of a mapping key, the way it appears once
// the document is written as JSON.
func keyText(k *yaml.Node) (string, error) {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
	}
	v, err := scalar(k)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case types.Str:
		return string(s), nil
	case types.Number:
		return s.Text, nil
	case types.Bool:
		return strconv.FormatBool(bool(s)), nil
	case types.Null:
		return "null", nil
	case types.Timestamp:
		return s.String(), nil
	default:
		return k.Value, nil
	}
}

func scalar(n *yaml.Node) (types.Node, error) {
	switch n.ShortTag() {
	case tagStr, tagBinary:
		return types.Str(n.Value), nil
	case tagNull:
		return types.Null{}, nil
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return types.Bool(b), nil
	case tagInt, tagFloat:
		return number(n)
	case tagTimestamp:
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		dateOnly := isDateOnly(n.Value)
		return types.Timestamp{Time: t, DateOnly: dateOnly, Naive: !dateOnly && !hasZone(n.Value)}, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
	}
}

func number(n *yaml.Node) (types.Node, error) {
	integer := n.ShortTag() == tagInt
	if jsonNumber.MatchString(n.Value) {
		return types.Number{Text: n.Value, Integer: integer}, nil
	}

	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	switch x := v.(type) {
	case int:
		return types.Number{Text: strconv.Itoa(x), Integer: true}, nil
	case int64:
		return types.Number{Text: strconv.FormatInt(x, 10), Integer: true}, nil
	case uint64:
		return types.Number{Text: strconv.FormatUint(x, 10), Integer: true}, nil
	case float64:
		return types.Number{Text: formatFloat(x), Integer: integer}, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported number %q", n.Line, n.Value)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// isDateOnly reports whether a timestamp literal carries no time of day.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(strings.TrimSpace(s), "Tt :")
}

var zoneSuffix = regexp.MustCompile(`(?:[Zz]|[+-]\d{1,2}(?::?\d{2})?)$`)

// hasZone reports whether a date-time literal ends in a zone designator.
func hasZone(s string) bool {
	return zoneSuffix.MatchString(strings.TrimSpace(s))
}
