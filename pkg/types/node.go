// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types defines the public data model shared across specdocs:
// the document tree and the validation report.
package types

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindMapping is an ordered string-keyed mapping.
	KindMapping Kind = iota

	// KindSequence is an ordered list of nodes.
	KindSequence

	// KindString is a text scalar.
	KindString

	// KindNumber is an integer or floating point scalar.
	KindNumber

	// KindBool is a boolean scalar.
	KindBool

	// KindNull is the null scalar.
	KindNull

	// KindTimestamp is a date or date-time scalar.
	KindTimestamp
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Node is one node of a document tree. The set of implementations is closed:
// *Mapping, Sequence, Str, Number, Bool, Null and Timestamp.
type Node interface {
	Kind() Kind
	sealed()
}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Node
}

// Mapping is a string-keyed mapping that keeps keys in insertion order.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// NewMapping creates an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Kind implements Node.
func (m *Mapping) Kind() Kind { return KindMapping }

func (m *Mapping) sealed() {}

// Set stores value under key. An existing key keeps its position and has its
// value replaced.
func (m *Mapping) Set(key string, value Node) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Sequence is an ordered list of nodes.
type Sequence []Node

// Kind implements Node.
func (s Sequence) Kind() Kind { return KindSequence }

func (s Sequence) sealed() {}

// Str is a text scalar.
type Str string

// Kind implements Node.
func (s Str) Kind() Kind { return KindString }

func (s Str) sealed() {}

// Number is a numeric scalar. Text holds the literal in JSON number syntax,
// or the YAML spelling (".inf", "-.inf", ".nan") for non-finite values.
type Number struct {
	Text    string
	Integer bool
}

// Kind implements Node.
func (n Number) Kind() Kind { return KindNumber }

func (n Number) sealed() {}

// Finite reports whether the number can be written in strict JSON.
func (n Number) Finite() bool {
	f, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		// Integers beyond float64 range still parse as +/-Inf with ErrRange;
		// those are finite JSON literals.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return true
		}
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Bool is a boolean scalar.
type Bool bool

// Kind implements Node.
func (b Bool) Kind() Kind { return KindBool }

func (b Bool) sealed() {}

// Null is the null scalar.
type Null struct{}

// Kind implements Node.
func (Null) Kind() Kind { return KindNull }

func (Null) sealed() {}

// DateLayout is the canonical layout of a date-only Timestamp.
const DateLayout = "2006-01-02"

// NaiveLayout is the canonical layout of a date-time written without a zone.
const NaiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a date or date-time scalar.
type Timestamp struct {
	Time     time.Time
	DateOnly bool
	// Naive is set when the literal carried no zone designator
	Naive bool
}

// Kind implements Node.
func (t Timestamp) Kind() Kind { return KindTimestamp }

func (t Timestamp) sealed() {}

// String returns the ISO-8601 form. Date-only values print as a calendar
// date and naive values print without an offset. Anything else is RFC 3339
// with fractional seconds.
func (t Timestamp) String() string {
	switch {
	case t.DateOnly:
		return t.Time.Format(DateLayout)
	case t.Naive:
		return t.Time.Format(NaiveLayout)
	default:
		return t.Time.Format(time.RFC3339Nano)
	}
}

// Transform returns a new tree in which every scalar has been replaced by
// fn(scalar). Mappings and sequences are rebuilt, so the input is never
// modified.
func Transform(n Node, fn func(Node) Node) Node {
	switch v := n.(type) {
	case *Mapping:
		out := NewMapping()
		for _, e := range v.entries {
			out.Set(e.Key, Transform(e.Value, fn))
		}
		return out
	case Sequence:
		out := make(Sequence, len(v))
		for i, item := range v {
			out[i] = Transform(item, fn)
		}
		return out
	case nil:
		return fn(Null{})
	default:
		return fn(n)
	}
}

// Walk visits n and its descendants depth-first. path holds the mapping keys
// and sequence indexes leading to the visited node. Returning false from fn
// skips the children of that node.
func Walk(n Node, fn func(path []string, n Node) bool) {
	walk(nil, n, fn)
}

func walk(path []string, n Node, fn func([]string, Node) bool) {
	if !fn(path, n) {
		return
	}
	switch v := n.(type) {
	case *Mapping:
		for _, e := range v.entries {
			walk(append(path[:len(path):len(path)], e.Key), e.Value, fn)
		}
	case Sequence:
		for i, item := range v {
			walk(append(path[:len(path):len(path)], strconv.Itoa(i)), item, fn)
		}
	}
}

// Equal reports whether two trees are structurally identical, including the
// key order of mappings.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Mapping:
		bv := b.(*Mapping)
		if av.Len() != bv.Len() {
			return false
		}
		for i, e := range av.entries {
			if bv.entries[i].Key != e.Key || !Equal(e.Value, bv.entries[i].Value) {
				return false
			}
		}
		return true
	case Sequence:
		bv := b.(Sequence)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Timestamp:
		bv := b.(Timestamp)
		return av.DateOnly == bv.DateOnly && av.Naive == bv.Naive && av.Time.Equal(bv.Time)
	default:
		return a == b
	}
}

// Lookup follows a chain of mapping keys from n and returns the node found.
func Lookup(n Node, keys ...string) (Node, bool) {
	cur := n
	for _, k := range keys {
		m, ok := cur.(*Mapping)
		if !ok {
			return nil, false
		}
		cur, ok = m.Get(k)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// LookupString is Lookup restricted to string scalars.
func LookupString(n Node, keys ...string) (string, bool) {
	v, ok := Lookup(n, keys...)
	if !ok {
		return "", false
	}
	s, ok := v.(Str)
	return string(s), ok
}
