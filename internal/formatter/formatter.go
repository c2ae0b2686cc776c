package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mcncl/dynomarshal/internal/models"
)

// Formatter renders marshalling results as text
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatItem renders the encoded item as DynamoDB JSON, preserving
// attribute order. When pretty is true the output is indented.
func (f *Formatter) FormatItem(item *models.Item, pretty bool) (string, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("failed to render item: %w", err)
	}
	if !pretty {
		return string(raw), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to indent item: %w", err)
	}
	return buf.String(), nil
}

// FormatLevels renders the per-attribute nesting report, deepest
// attribute first, ties broken by name.
func (f *Formatter) FormatLevels(levels map[string]int) string {
	keys := make([]string, 0, len(levels))
	for key := range levels {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if levels[keys[i]] != levels[keys[j]] {
			return levels[keys[i]] > levels[keys[j]]
		}
		return keys[i] < keys[j]
	})

	var sb strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&sb, "%s: %d\n", key, levels[key])
	}
	return sb.String()
}
