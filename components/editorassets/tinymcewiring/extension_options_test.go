package tinymcewiring

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-tinymce/components/editorassets"
	"github.com/goliatone/go-tinymce/pkg/extension"
)

func TestExtensionOptions_PointsScriptsAtMount(t *testing.T) {
	opts := append(ExtensionOptions("/admin"), extension.WithConfig(map[string]any{}))
	ext, err := extension.New(opts...)
	if err != nil {
		t.Fatalf("new extension: %v", err)
	}

	markup, err := ext.Init(context.Background(), nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(markup, `<script src="/admin/bundles/tinymce/js/init.standard.js"></script>`) {
		t.Fatalf("init script not served from mount:\n%s", markup)
	}
}

func TestExtensionOptions_UsesComponentLanguages(t *testing.T) {
	files := fstest.MapFS{
		"vendor/tinymce/langs/nl.js": &fstest.MapFile{Data: []byte(`tinymce.addI18n("nl", {});`)},
	}
	opts := append(
		ExtensionOptions("/", editorassets.WithFiles(files), editorassets.WithRoutePath("/editor")),
		extension.WithConfig(map[string]any{"language": "nl"}),
	)
	ext, err := extension.New(opts...)
	if err != nil {
		t.Fatalf("new extension: %v", err)
	}

	settings, err := ext.Config(context.Background(), nil)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if settings.Language != "nl" {
		t.Fatalf("language = %q, want nl", settings.Language)
	}

	settings, err = ext.Config(context.Background(), map[string]any{"language": "de"})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if settings.Language != "" {
		t.Fatalf("language = %q, want empty for a file the component does not serve", settings.Language)
	}
}
