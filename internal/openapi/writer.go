// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi turns a loaded OpenAPI document into its published
// artifacts and validates it.
package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/api2spec/specdocs/pkg/types"
)

// ErrSourceMissing is returned by CopySource when the source file is gone.
var ErrSourceMissing = errors.New("source document missing")

// Writer renders document trees as JSON.
type Writer struct {
	// Indent specifies the indentation for formatted JSON output (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// RenderCompact returns the document as JSON without insignificant
// whitespace. Non-ASCII text is written as-is.
func (w *Writer) RenderCompact(doc types.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeNode(&buf, doc, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderFormatted returns the document as indented JSON terminated by a
// newline.
func (w *Writer) RenderFormatted(doc types.Node) ([]byte, error) {
	compact, err := w.RenderCompact(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", w.Indent)); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteJSON writes the formatted JSON form of doc to out.
func (w *Writer) WriteJSON(doc types.Node, out io.Writer) error {
	data, err := w.RenderFormatted(doc)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// WriteCompactJSON writes the compact JSON form of doc to out.
func (w *Writer) WriteCompactJSON(doc types.Node, out io.Writer) error {
	data, err := w.RenderCompact(doc)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// WriteFile writes data to path, creating missing parent directories and
// replacing any previous content.
func WriteFile(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CopySource copies src to dst byte for byte, keeping the source file mode and
// modification time. A missing source yields ErrSourceMissing.
func CopySource(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return fmt.Errorf("failed to stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	if err := ensureDir(dst); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy source: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to preserve modification time: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// encodeNode writes n as compact JSON. path locates n for error messages.
func encodeNode(buf *bytes.Buffer, n types.Node, path []string) error {
	switch v := n.(type) {
	case *types.Mapping:
		buf.WriteByte('{')
		for i, e := range v.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeNode(buf, e.Value, append(path[:len(path):len(path)], e.Key)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case types.Sequence:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, item, append(path[:len(path):len(path)], fmt.Sprint(i))); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case types.Str:
		return encodeString(buf, string(v))
	case types.Timestamp:
		return encodeString(buf, v.String())
	case types.Number:
		if !v.Finite() {
			return fmt.Errorf("value %s at /%s is not representable in JSON", v.Text, strings.Join(path, "/"))
		}
		buf.WriteString(v.Text)
	case types.Bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case types.Null, nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unsupported node %T at /%s", n, strings.Join(path, "/"))
	}
	return nil
}

// encodeString writes s as a JSON string literal without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode string: %w", err)
	}
	unescapeLineSeparators(buf, bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// unescapeLineSeparators copies an encoded string literal to buf, writing
// U+2028 and U+2029 as raw characters instead of \u escapes.
func unescapeLineSeparators(buf *bytes.Buffer, lit []byte) {
	for i := 0; i < len(lit); i++ {
		if lit[i] != '\\' || i+1 >= len(lit) {
			buf.WriteByte(lit[i])
			continue
		}
		switch rest := lit[i+1:]; {
		case bytes.HasPrefix(rest, []byte("u2028")):
			buf.WriteRune('\u2028')
			i += 5
		case bytes.HasPrefix(rest, []byte("u2029")):
			buf.WriteRune('\u2029')
			i += 5
		default:
			buf.Write(lit[i : i+2])
			i++
		}
	}
}
