package extension

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-tinymce/pkg/config"
	"github.com/goliatone/go-tinymce/pkg/locale"
	"github.com/goliatone/go-tinymce/pkg/markers"
	rendertemplate "github.com/goliatone/go-tinymce/pkg/render/template"
	"github.com/goliatone/go-tinymce/pkg/render/template/gotemplate"
	"github.com/goliatone/go-tinymce/pkg/script"
)

// ErrNoConfig is returned by New when neither WithParameters nor WithConfig
// supplied a configuration source.
var ErrNoConfig = errors.New("tinymce: configuration source is required")

// Extension renders editor initialisation markup.
type Extension struct {
	store        config.ParameterStore
	parameterKey string
	tree         map[string]any

	assets   markers.AssetResolver
	routes   markers.RouteResolver
	locales  locale.Provider
	resolver locale.Resolver
	merge    config.MergeStrategy

	templates    rendertemplate.TemplateRenderer
	templateName string

	scriptDir string
	jqueryURL string
	logger    *zap.Logger
}

// New builds an Extension. Without WithTemplateRenderer a pongo2 engine over
// the embedded templates is used.
func New(opts ...Option) (*Extension, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.store == nil && cfg.tree == nil {
		return nil, ErrNoConfig
	}

	renderer := cfg.templates
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templatesFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("tinymce: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Extension{
		store:        cfg.store,
		parameterKey: cfg.parameterKey,
		tree:         cfg.tree,
		assets:       cfg.assets,
		routes:       cfg.routes,
		locales:      cfg.locales,
		resolver:     locale.NewResolver(cfg.languages, cfg.policy),
		merge:        cfg.merge,
		templates:    renderer,
		templateName: cfg.templateName,
		scriptDir:    cfg.scriptDir,
		jqueryURL:    cfg.jqueryURL,
		logger:       cfg.logger,
	}, nil
}

// Name returns the extension name.
func (e *Extension) Name() string {
	return Name
}

// Init renders the initialisation markup for the bundle configuration merged
// with overrides.
func (e *Extension) Init(ctx context.Context, overrides map[string]any) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	settings, err := e.Config(ctx, overrides)
	if err != nil {
		return "", err
	}

	rw := e.rewriter(settings)
	urls, err := e.scriptURLs(rw, settings)
	if err != nil {
		return "", err
	}

	literal, err := script.MarshalString(settings)
	if err != nil {
		return "", fmt.Errorf("tinymce: serialise config: %w", err)
	}

	data := map[string]any{
		"tinymce_config":     literal,
		"include_jquery":     settings.IncludeJQuery,
		"tinymce_jquery":     settings.TinymceJQuery,
		"use_callback_init":  settings.UseCallbackInit,
		"asset_package_name": settings.AssetPackageName,
		"base_url":           settings.BaseURL,
		"tinymce_script_url": urls.editor,
		"init_script_url":    urls.init,
		"jquery_url":         urls.jquery,
	}

	out, err := e.templates.RenderTemplate(e.templateName, data)
	if err != nil {
		return "", fmt.Errorf("tinymce: render %s: %w", e.templateName, err)
	}

	e.logger.Debug("tinymce.init.rendered",
		zap.String("selector", settings.Selector),
		zap.String("language", settings.Language),
		zap.Int("entries", len(settings.Configuration)),
		zap.Bool("tinymce_jquery", settings.TinymceJQuery),
	)
	return out, nil
}

// Config returns the merged and rewritten configuration Init serialises.
func (e *Extension) Config(ctx context.Context, overrides map[string]any) (config.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	base, err := e.baseTree()
	if err != nil {
		return config.Config{}, err
	}

	settings, err := config.Decode(config.Merge(base, overrides, e.merge))
	if err != nil {
		return config.Config{}, fmt.Errorf("tinymce: decode config: %w", err)
	}

	rw := e.rewriter(settings)
	if settings.TinymceJQuery {
		url, err := rw.AssetPath(e.scriptDir + EditorJQueryScriptName)
		if err != nil {
			return config.Config{}, fmt.Errorf("tinymce: jquery script url: %w", err)
		}
		settings.JQueryScriptURL = url
	}

	language, err := e.language(ctx, settings.Language)
	if err != nil {
		return config.Config{}, err
	}
	settings.Language = language

	for i := range settings.Configuration {
		if err := e.rewriteEntry(rw, &settings.Configuration[i], language); err != nil {
			return config.Config{}, fmt.Errorf("tinymce: configuration[%d]: %w", i, err)
		}
	}
	return settings, nil
}

// TemplateFuncs exposes tinymce_init for host pongo2 templates. The locale
// provider sees a background context; use TemplateFuncsFor to bind a
// request context.
func (e *Extension) TemplateFuncs() map[string]any {
	return e.TemplateFuncsFor(context.Background())
}

// TemplateFuncsFor exposes tinymce_init bound to ctx. The function takes an
// optional map of overrides and returns safe markup.
func (e *Extension) TemplateFuncsFor(ctx context.Context) map[string]any {
	return map[string]any{
		FunctionName: func(args ...*pongo2.Value) (*pongo2.Value, error) {
			overrides, err := overridesFromArgs(args)
			if err != nil {
				return nil, err
			}
			out, err := e.Init(ctx, overrides)
			if err != nil {
				return nil, err
			}
			return pongo2.AsSafeValue(out), nil
		},
	}
}

func (e *Extension) baseTree() (map[string]any, error) {
	if e.tree != nil {
		return e.tree, nil
	}
	tree, err := config.Tree(e.store, e.parameterKey)
	if err != nil {
		return nil, fmt.Errorf("tinymce: load parameter %q: %w", e.parameterKey, err)
	}
	return tree, nil
}

func (e *Extension) rewriter(settings config.Config) *markers.Rewriter {
	return markers.NewRewriter(e.assets, e.routes,
		markers.WithBaseURL(settings.BaseURL),
		markers.WithPackage(settings.AssetPackageName),
	)
}

func (e *Extension) language(ctx context.Context, configured string) (string, error) {
	code := strings.TrimSpace(configured)
	if code == "" && e.locales != nil {
		current, err := e.locales.Locale(ctx)
		switch {
		case errors.Is(err, locale.ErrNoLocale):
			e.logger.Debug("tinymce.language.no_locale")
		case err != nil:
			return "", fmt.Errorf("tinymce: current locale: %w", err)
		default:
			code = current
		}
	}
	if code == "" {
		return "", nil
	}

	resolved, ok := e.resolver.Resolve(code)
	if !ok {
		e.logger.Debug("tinymce.language.unavailable",
			zap.String("locale", code),
			zap.Stringer("policy", e.resolver.Policy),
		)
		return "", nil
	}
	return resolved, nil
}

func (e *Extension) rewriteEntry(rw *markers.Rewriter, entry *config.ThemeConfig, language string) error {
	for name, button := range entry.Buttons {
		button.Text = sanitizeLabel(button.Text)
		button.Title = sanitizeLabel(button.Title)

		if button.Image != "" {
			url, err := rw.Asset(button.Image)
			if err != nil {
				return fmt.Errorf("button %q image: %w", name, err)
			}
			button.Image = url
		}

		switch {
		case button.Icon == "":
		case isInlineSVG(button.Icon):
			button.Icon = sanitizeIconMarkup(button.Icon)
		default:
			url, err := rw.Asset(button.Icon)
			if err != nil {
				return fmt.Errorf("button %q icon: %w", name, err)
			}
			button.Icon = url
		}
		entry.Buttons[name] = button
	}

	for name, plugin := range entry.ExternalPlugins {
		url, err := rw.Asset(plugin.URL)
		if err != nil {
			return fmt.Errorf("external plugin %q: %w", name, err)
		}
		plugin.URL = url
		entry.ExternalPlugins[name] = plugin
	}

	for name, theme := range entry.Theme {
		if language != "" {
			theme.Language = language
		}
		if theme.ContentCSS != nil {
			css, err := rw.CSS(theme.ContentCSS)
			if err != nil {
				return fmt.Errorf("theme %q content_css: %w", name, err)
			}
			theme.ContentCSS = config.SplitCSS(css)
		}
		if theme.SpellcheckerRPCURL != "" {
			url, err := rw.Route(theme.SpellcheckerRPCURL)
			if err != nil {
				return fmt.Errorf("theme %q spellchecker_rpc_url: %w", name, err)
			}
			theme.SpellcheckerRPCURL = url
		}
		entry.Theme[name] = theme
	}
	return nil
}

type scriptURLs struct {
	editor string
	init   string
	jquery string
}

func (e *Extension) scriptURLs(rw *markers.Rewriter, settings config.Config) (scriptURLs, error) {
	var urls scriptURLs
	var err error

	initScript := InitScriptName
	if settings.TinymceJQuery {
		initScript = InitJQueryScriptName
	} else if urls.editor, err = rw.AssetPath(e.scriptDir + EditorScriptName); err != nil {
		return urls, fmt.Errorf("tinymce: editor script url: %w", err)
	}
	if urls.init, err = rw.AssetPath(e.scriptDir + initScript); err != nil {
		return urls, fmt.Errorf("tinymce: init script url: %w", err)
	}

	if settings.IncludeJQuery {
		urls.jquery = e.jqueryURL
		if urls.jquery == "" {
			if urls.jquery, err = rw.AssetPath(e.scriptDir + JQueryScriptName); err != nil {
				return urls, fmt.Errorf("tinymce: jquery url: %w", err)
			}
		}
	}
	return urls, nil
}

func overridesFromArgs(args []*pongo2.Value) (map[string]any, error) {
	if len(args) == 0 || args[0] == nil || args[0].IsNil() {
		return nil, nil
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("%s: expected at most one argument, got %d", FunctionName, len(args))
	}
	switch typed := args[0].Interface().(type) {
	case map[string]any:
		return typed, nil
	case pongo2.Context:
		return map[string]any(typed), nil
	default:
		return nil, fmt.Errorf("%s: overrides must be a map, got %T", FunctionName, typed)
	}
}
