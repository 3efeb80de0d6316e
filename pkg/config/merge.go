package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MergeStrategy selects how per-call overrides combine with the base tree.
type MergeStrategy int

const (
	// MergeRecursive merges nested maps key by key. Scalars and lists from
	// the override replace the base value.
	MergeRecursive MergeStrategy = iota
	// MergeReplace assigns each top-level override key over the base value.
	MergeReplace
)

func (s MergeStrategy) String() string {
	switch s {
	case MergeReplace:
		return "replace"
	default:
		return "recursive"
	}
}

// ParseMergeStrategy maps "recursive" or "replace" to a strategy. An empty
// value selects MergeRecursive.
func ParseMergeStrategy(value string) (MergeStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "recursive", "deep":
		return MergeRecursive, nil
	case "replace", "flat":
		return MergeReplace, nil
	default:
		return MergeRecursive, fmt.Errorf("config: unknown merge strategy %q", value)
	}
}

// Merge combines base and override without mutating either input.
func Merge(base, override map[string]any, strategy MergeStrategy) map[string]any {
	out := cloneTree(base)
	for key, value := range override {
		if strategy == MergeRecursive {
			if dst, ok := out[key].(map[string]any); ok {
				if src, ok := value.(map[string]any); ok {
					out[key] = Merge(dst, src, MergeRecursive)
					continue
				}
			}
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Decode converts a raw configuration tree into the typed model.
func Decode(tree map[string]any) (Config, error) {
	if tree == nil {
		tree = map[string]any{}
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return Config{}, fmt.Errorf("config: encode tree: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func cloneTree(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneTree(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
