package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"

	"github.com/goliatone/go-tinymce/pkg/config"
	"github.com/goliatone/go-tinymce/pkg/markers"
)

// MustLoadTree loads a YAML, JSON or JSONC fixture into a raw configuration
// tree.
func MustLoadTree(t *testing.T, path string) map[string]any {
	t.Helper()

	tree, err := LoadTree(path)
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	return tree
}

// LoadTree reads a configuration fixture without requiring testing.T so callers
// can wire fixtures in setup functions.
func LoadTree(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("testsupport: fixture path is required")
	}
	tree, err := config.LoadFile(context.Background(), path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load fixture: %w", err)
	}
	return tree, nil
}

// RecordingAssets resolves asset paths by prefixing them and records each
// call as "path|package".
type RecordingAssets struct {
	Prefix string
	Calls  []string
}

var _ markers.AssetResolver = (*RecordingAssets)(nil)

func (r *RecordingAssets) AssetURL(path, packageName string) (string, error) {
	r.Calls = append(r.Calls, path+"|"+packageName)
	return r.Prefix + path, nil
}

// Routes returns a route resolver that maps names to "/_route/<name>".
func Routes() markers.RouteResolver {
	return markers.RouteResolverFunc(func(name string) (string, error) {
		return "/_route/" + name, nil
	})
}

// ExtractConfig returns the configuration literal assigned to tinymceConfig in
// rendered init markup.
func ExtractConfig(t *testing.T, markup string) string {
	t.Helper()

	const marker = "tinymceConfig = "
	start := strings.Index(markup, marker)
	if start < 0 {
		t.Fatalf("config assignment not found in markup:\n%s", markup)
	}
	body := markup[start+len(marker):]

	depth := 0
	inString := false
	escaped := false
	for i, r := range body {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
		case r == '{' || r == '[':
			depth++
		case r == '}' || r == ']':
			depth--
			if depth == 0 {
				return body[:i+1]
			}
		}
	}
	t.Fatalf("unterminated config literal in markup:\n%s", markup)
	return ""
}

// ConfigPath reads a value from a script literal with gjson. Bare callback
// expressions are not valid JSON, so callers should only query plain values.
func ConfigPath(literal, path string) gjson.Result {
	return gjson.Get(literal, path)
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
