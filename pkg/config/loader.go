package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a configuration file has no content.
var ErrEmptyDocument = errors.New("config: document is empty")

// Parse decodes a configuration document. The format is picked from the
// extension of name (.json, .jsonc, .yaml, .yml); other names are tried as
// JSON first and YAML second.
func Parse(data []byte, name string) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, name)
	}

	var (
		out map[string]any
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		err = json.Unmarshal(data, &out)
	case ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		if jsonErr := json.Unmarshal(data, &out); jsonErr != nil {
			out = nil
			if yamlErr := yaml.Unmarshal(data, &out); yamlErr != nil {
				return nil, fmt.Errorf("config: parse %s: invalid JSON or YAML", name)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// LoadFile reads and parses a configuration file from disk.
func LoadFile(ctx context.Context, path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a configuration file from fsys.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (map[string]any, error) {
	if name == "" {
		return nil, errors.New("config: fs path is required")
	}
	if fsys == nil {
		return nil, errors.New("config: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data, name)
}
