// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/specdocs/pkg/types"
)

// ToYAMLNode converts a tree back into a yaml.Node, keeping key order.
func ToYAMLNode(n types.Node) *yaml.Node {
	switch v := n.(type) {
	case *types.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Entries() {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: e.Key},
				ToYAMLNode(e.Value),
			)
		}
		return out
	case types.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			out.Content = append(out.Content, ToYAMLNode(item))
		}
		return out
	case types.Str:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: string(v)}
	case types.Number:
		tag := tagFloat
		if v.Integer {
			tag = tagInt
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Text}
	case types.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: strconv.FormatBool(bool(v))}
	case types.Timestamp:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagTimestamp, Value: v.String()}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
	}
}

// EncodeYAML writes the tree as YAML with a two-space indent.
func EncodeYAML(n types.Node, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(ToYAMLNode(n)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
