// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// RedactedMarker replaces secret values in rendered argument output.
const RedactedMarker = "<< REDACTED >>"

// Args is the flat pipeline argument map. Values are strings, string slices,
// or other YAML-renderable scalars.
type Args map[string]any

// Clone returns a copy of the argument map. Values are shared; callers that
// replace values get copy-on-write semantics via map assignment.
func (a Args) Clone() Args {
	return maps.Clone(a)
}

// Redact returns a copy of the argument map with the value of every key that
// contains "token" (case-insensitive) replaced by RedactedMarker. The
// receiver is not modified. Rendered output must always come from the
// redacted copy; the executing pipeline keeps the real values.
func (a Args) Redact() Args {
	redacted := maps.Clone(a)
	for k := range redacted {
		if strings.Contains(strings.ToLower(k), "token") {
			redacted[k] = RedactedMarker
		}
	}
	return redacted
}

// Render serializes the argument map as YAML with keys in sorted order, so
// two runs with equal arguments produce byte-identical output.
func (a Args) Render() (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range slices.Sorted(maps.Keys(a)) {
		var keyNode, valNode yaml.Node
		keyNode.SetString(k)
		if err := valNode.Encode(a[k]); err != nil {
			return "", fmt.Errorf("failed to render argument %q: %w", k, err)
		}
		root.Content = append(root.Content, &keyNode, &valNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("failed to render arguments: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to render arguments: %w", err)
	}
	return buf.String(), nil
}
