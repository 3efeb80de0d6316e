package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ApplySets applies "path=value" assignments to a copy of tree. Paths use
// dot notation with numeric indexes for lists (configuration.0.theme.simple.height).
// Values that parse as JSON are stored as such (numbers, booleans, lists,
// objects, quoted strings); anything else is stored as a plain string.
func ApplySets(tree map[string]any, sets []string) (map[string]any, error) {
	if len(sets) == 0 {
		return cloneTree(tree), nil
	}
	if tree == nil {
		tree = map[string]any{}
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("config: encode tree: %w", err)
	}

	for _, set := range sets {
		path, value, ok := strings.Cut(set, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return nil, fmt.Errorf("config: invalid assignment %q, want path=value", set)
		}
		value = strings.TrimSpace(value)

		if value != "" && gjson.Valid(value) {
			raw, err = sjson.SetRawBytes(raw, path, []byte(value))
		} else {
			raw, err = sjson.SetBytes(raw, path, value)
		}
		if err != nil {
			return nil, fmt.Errorf("config: apply %q: %w", path, err)
		}
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("config: decode tree: %w", err)
	}
	return out, nil
}
