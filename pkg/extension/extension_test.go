package extension_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-tinymce/pkg/config"
	"github.com/goliatone/go-tinymce/pkg/extension"
	"github.com/goliatone/go-tinymce/pkg/locale"
	"github.com/goliatone/go-tinymce/pkg/markers"
	"github.com/goliatone/go-tinymce/pkg/render/template/gotemplate"
	"github.com/goliatone/go-tinymce/pkg/testsupport"
)

const cdn = "https://cdn.test"

func TestInit_RendersMarkupWithRewrittenConfig(t *testing.T) {
	ext, _ := newExtension(t)

	markup, err := ext.Init(context.Background(), nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, want := range []string{
		`<script src="` + cdn + `/bundles/tinymce/vendor/tinymce/tinymce.min.js"></script>`,
		`<script src="` + cdn + `/bundles/tinymce/js/init.standard.js"></script>`,
		`initTinyMCE(tinymceConfig);`,
		`"file_picker_callback":pickFile`,
		`"paste_preprocess":cleanPaste`,
		`"language":"fr_FR"`,
		`"spellchecker_rpc_url":"/_route/spellchecker_check"`,
		`"url":"` + cdn + `/bundles/acme/js/filemanager/plugin.min.js"`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
	for _, unwanted := range []string{`"pickFile"`, `"cleanPaste"`, `asset_package_name`, `asset[`, `path[`, `jquery.min.js`} {
		if strings.Contains(markup, unwanted) {
			t.Fatalf("markup should not contain %q:\n%s", unwanted, markup)
		}
	}

	literal := testsupport.ExtractConfig(t, markup)
	if !strings.HasPrefix(literal, "{") || !strings.HasSuffix(literal, "}") {
		t.Fatalf("unexpected config literal %q", literal)
	}
}

func TestInit_IsDeterministic(t *testing.T) {
	ext, _ := newExtension(t)

	first, err := ext.Init(context.Background(), nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	second, err := ext.Init(context.Background(), nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("markup differs between calls (-first +second):\n%s", diff)
	}
}

func TestConfig_RewritesEntries(t *testing.T) {
	ext, assets := newExtension(t)

	settings, err := ext.Config(context.Background(), nil)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if len(settings.Configuration) != 1 {
		t.Fatalf("expected one configuration entry, got %d", len(settings.Configuration))
	}
	entry := settings.Configuration[0]

	button := entry.Buttons["stfalcon"]
	if button.Image != cdn+"/bundles/acme/img/button.png" {
		t.Fatalf("unexpected button image %q", button.Image)
	}
	if button.Text != "Stfalcon" || button.Title != "Stfalcon & co" {
		t.Fatalf("unexpected button labels %q / %q", button.Text, button.Title)
	}

	plain := entry.Buttons["plain"]
	if plain.Image != "" {
		t.Fatalf("empty image should stay empty, got %q", plain.Image)
	}
	if strings.Contains(plain.Icon, "script") || !strings.Contains(plain.Icon, "<path") {
		t.Fatalf("icon was not sanitised: %q", plain.Icon)
	}

	if got := entry.ExternalPlugins["filemanager"].URL; got != cdn+"/bundles/acme/js/filemanager/plugin.min.js" {
		t.Fatalf("unexpected plugin url %q", got)
	}

	simple := entry.Theme["simple"]
	if got, want := simple.ContentCSS.String(), cdn+"/css/editor.css,https://fonts.test/font.css"; got != want {
		t.Fatalf("content_css mismatch\nwant: %q\n got: %q", want, got)
	}
	for name, theme := range entry.Theme {
		if theme.Language != "fr_FR" {
			t.Fatalf("theme %q language = %q, want fr_FR", name, theme.Language)
		}
	}
	if got := entry.Theme["advanced"].SpellcheckerRPCURL; got != "/_route/spellchecker_check" {
		t.Fatalf("unexpected spellchecker url %q", got)
	}

	wantCalls := []string{
		"/bundles/acme/img/button.png|editor",
		"/bundles/acme/js/filemanager/plugin.min.js|editor",
		"/css/editor.css|editor",
	}
	for _, call := range wantCalls {
		if !contains(assets.Calls, call) {
			t.Fatalf("expected resolver call %q, got %v", call, assets.Calls)
		}
	}
}

func TestInit_MergesOverridesWithoutMutatingBase(t *testing.T) {
	tree := map[string]any{
		"selector":       ".tinymce",
		"configuration":  []any{},
		"include_jquery": false,
	}
	ext, err := extension.New(extension.WithConfig(tree))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	markup, err := ext.Init(context.Background(), map[string]any{"selector": ".comment"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	literal := testsupport.ExtractConfig(t, markup)
	if got := testsupport.ConfigPath(literal, "selector").String(); got != ".comment" {
		t.Fatalf("selector = %q, want .comment", got)
	}
	if tree["selector"] != ".tinymce" {
		t.Fatalf("base tree mutated: %v", tree["selector"])
	}
}

func TestInit_ReplaceStrategyDropsBaseConfiguration(t *testing.T) {
	tree := map[string]any{
		"selector": ".tinymce",
		"configuration": []any{
			map[string]any{"theme": map[string]any{"simple": map[string]any{"menubar": false}}},
		},
	}
	ext, err := extension.New(
		extension.WithConfig(tree),
		extension.WithMergeStrategy(config.MergeReplace),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	settings, err := ext.Config(context.Background(), map[string]any{"configuration": []any{}})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if len(settings.Configuration) != 0 {
		t.Fatalf("expected overrides to replace configuration, got %d entries", len(settings.Configuration))
	}
	if settings.Selector != ".tinymce" {
		t.Fatalf("selector = %q", settings.Selector)
	}
}

func TestInit_LanguageFromLocaleProvider(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		policy locale.Policy
		want   string
	}{
		{name: "exact", locale: "de", policy: locale.PolicyStrict, want: "de"},
		{name: "normalised", locale: "pt-br", policy: locale.PolicyStrict, want: "pt_BR"},
		{name: "strict omits base code", locale: "fr", policy: locale.PolicyStrict, want: ""},
		{name: "fallback expands base code", locale: "fr", policy: locale.PolicyFallback, want: "fr_FR"},
		{name: "fallback to base", locale: "de_AT", policy: locale.PolicyFallback, want: "de"},
		{name: "unknown", locale: "ja_JP", policy: locale.PolicyFallback, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := extension.New(
				extension.WithConfig(map[string]any{"configuration": []any{
					map[string]any{"theme": map[string]any{"simple": map[string]any{}}},
				}}),
				extension.WithLocaleProvider(locale.StaticProvider(tt.locale)),
				extension.WithLanguagePolicy(tt.policy),
			)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			settings, err := ext.Config(context.Background(), nil)
			if err != nil {
				t.Fatalf("config: %v", err)
			}
			if settings.Language != tt.want {
				t.Fatalf("language = %q, want %q", settings.Language, tt.want)
			}
			if got := settings.Configuration[0].Theme["simple"].Language; got != tt.want {
				t.Fatalf("theme language = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInit_LanguageFromRequestContext(t *testing.T) {
	ext, err := extension.New(
		extension.WithConfig(map[string]any{}),
		extension.WithLocaleProvider(locale.ContextProvider{}),
		extension.WithLanguages(locale.NewSetLanguages("uk")),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	settings, err := ext.Config(locale.WithLocale(context.Background(), "uk"), nil)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if settings.Language != "uk" {
		t.Fatalf("language = %q, want uk", settings.Language)
	}

	settings, err = ext.Config(context.Background(), nil)
	if err != nil {
		t.Fatalf("missing locale should not fail: %v", err)
	}
	if settings.Language != "" {
		t.Fatalf("language = %q, want empty", settings.Language)
	}
}

func TestInit_LocaleProviderErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	ext, err := extension.New(
		extension.WithConfig(map[string]any{}),
		extension.WithLocaleProvider(locale.ProviderFunc(func(context.Context) (string, error) {
			return "", boom
		})),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := ext.Init(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestInit_LogsUnavailableLanguage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ext, err := extension.New(
		extension.WithConfig(map[string]any{"language": "xx"}),
		extension.WithLogger(zap.New(core)),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := ext.Init(context.Background(), nil); err != nil {
		t.Fatalf("init: %v", err)
	}

	entries := logs.FilterMessage("tinymce.language.unavailable").All()
	if len(entries) != 1 {
		t.Fatalf("expected one unavailable language log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["locale"]; got != "xx" {
		t.Fatalf("logged locale = %v", got)
	}
}

func TestInit_TinymceJQuery(t *testing.T) {
	ext, _ := newExtension(t)

	overrides := map[string]any{"tinymce_jquery": true, "include_jquery": true}
	settings, err := ext.Config(context.Background(), overrides)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if want := cdn + "/bundles/tinymce/vendor/tinymce/tinymce.jquery.min.js"; settings.JQueryScriptURL != want {
		t.Fatalf("jquery_script_url = %q, want %q", settings.JQueryScriptURL, want)
	}

	markup, err := ext.Init(context.Background(), overrides)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, want := range []string{
		`<script src="` + cdn + `/bundles/tinymce/vendor/jquery/jquery.min.js"></script>`,
		`<script src="` + cdn + `/bundles/tinymce/js/init.jquery.js"></script>`,
		`"jquery_script_url":"` + cdn + `/bundles/tinymce/vendor/tinymce/tinymce.jquery.min.js"`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
	if strings.Contains(markup, "init.standard.js") {
		t.Fatalf("standard init script should not be included:\n%s", markup)
	}
}

func TestInit_CustomJQueryAndCallbackInit(t *testing.T) {
	ext, err := extension.New(
		extension.WithConfig(map[string]any{
			"include_jquery":            true,
			"use_callback_tinymce_init": true,
		}),
		extension.WithJQueryURL("https://code.jquery.test/jquery.js"),
		extension.WithScriptDir("/static/editor/"),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	markup, err := ext.Init(context.Background(), nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, want := range []string{
		`<script src="https://code.jquery.test/jquery.js"></script>`,
		`<script src="/static/editor/js/init.standard.js"></script>`,
		`callback_tinymce_init(tinymceConfig);`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
	if strings.Contains(markup, "initTinyMCE(tinymceConfig)") {
		t.Fatalf("callback init should replace the default init call:\n%s", markup)
	}
}

func TestInit_MissingRouteResolver(t *testing.T) {
	ext, err := extension.New(extension.WithConfig(map[string]any{
		"configuration": []any{
			map[string]any{"theme": map[string]any{
				"advanced": map[string]any{"spellchecker_rpc_url": "path[spellchecker]"},
			}},
		},
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := ext.Init(context.Background(), nil); !errors.Is(err, markers.ErrNoRouteResolver) {
		t.Fatalf("expected ErrNoRouteResolver, got %v", err)
	}
}

func TestInit_CancelledContext(t *testing.T) {
	ext, _ := newExtension(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ext.Init(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_RequiresConfigSource(t *testing.T) {
	if _, err := extension.New(); !errors.Is(err, extension.ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestInit_MissingParameter(t *testing.T) {
	ext, err := extension.New(extension.WithParameters(config.Parameters{}, ""))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := ext.Init(context.Background(), nil); !errors.Is(err, config.ErrParameterNotFound) {
		t.Fatalf("expected ErrParameterNotFound, got %v", err)
	}
}

func TestInit_CustomTemplateRenderer(t *testing.T) {
	renderer := &recordingRenderer{}
	ext, err := extension.New(
		extension.WithConfig(map[string]any{"selector": "#body", "asset_package_name": "cdn"}),
		extension.WithAssets(markers.StaticAssets{Packages: map[string]markers.Package{
			"cdn": {BasePath: "https://static.test"},
		}}),
		extension.WithTemplateRenderer(renderer),
		extension.WithTemplate("editor/init"),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := ext.Init(context.Background(), nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if out != "rendered" {
		t.Fatalf("unexpected output %q", out)
	}
	if renderer.name != "editor/init" {
		t.Fatalf("template name = %q", renderer.name)
	}

	data := renderer.data
	if data["asset_package_name"] != "cdn" {
		t.Fatalf("asset_package_name = %v", data["asset_package_name"])
	}
	if data["init_script_url"] != "https://static.test/bundles/tinymce/js/init.standard.js" {
		t.Fatalf("init_script_url = %v", data["init_script_url"])
	}
	literal, _ := data["tinymce_config"].(string)
	if got := testsupport.ConfigPath(literal, "selector").String(); got != "#body" {
		t.Fatalf("selector = %q in %s", got, literal)
	}
	if testsupport.ConfigPath(literal, "asset_package_name").Exists() {
		t.Fatalf("asset_package_name must not be serialised: %s", literal)
	}
}

func TestTemplateFuncs_RenderSafeMarkup(t *testing.T) {
	ext, _ := newExtension(t)

	engine, err := gotemplate.New(
		gotemplate.WithFS(fstest.MapFS{
			"page.tpl": &fstest.MapFile{Data: []byte(`<main>{{ tinymce_init(opts) }}</main>`)},
		}),
		gotemplate.WithTemplateFunc(ext.TemplateFuncs()),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("page", map[string]any{
		"opts": map[string]any{"selector": ".comment"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<script src="`) {
		t.Fatalf("markup was escaped:\n%s", out)
	}
	if !strings.Contains(out, `"selector":".comment"`) {
		t.Fatalf("overrides not applied:\n%s", out)
	}
}

func TestName(t *testing.T) {
	ext, _ := newExtension(t)
	if ext.Name() != "tinymce" {
		t.Fatalf("name = %q", ext.Name())
	}
}

func TestEmbeddedLanguages(t *testing.T) {
	codes, err := locale.ListLanguages(extension.LanguagesFS(), ".")
	if err != nil {
		t.Fatalf("list languages: %v", err)
	}
	for _, code := range []string{"de", "fr_FR", "pt_BR"} {
		if !contains(codes, code) {
			t.Fatalf("expected embedded language %q in %v", code, codes)
		}
	}
}

func newExtension(t *testing.T) (*extension.Extension, *testsupport.RecordingAssets) {
	t.Helper()

	params, err := config.LoadParameters(context.Background(), filepath.Join("testdata", "tinymce.yaml"))
	if err != nil {
		t.Fatalf("load parameters: %v", err)
	}

	assets := &testsupport.RecordingAssets{Prefix: cdn}
	ext, err := extension.New(
		extension.WithParameters(params, "tinymce.config"),
		extension.WithAssets(assets),
		extension.WithRoutes(testsupport.Routes()),
	)
	if err != nil {
		t.Fatalf("new extension: %v", err)
	}
	return ext, assets
}

type recordingRenderer struct {
	name string
	data map[string]any
}

func (r *recordingRenderer) Render(name string, data any, _ ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data)
}

func (r *recordingRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	return "rendered", nil
}

func (r *recordingRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *recordingRenderer) GlobalContext(any) error {
	return nil
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
