package extension

import (
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-tinymce/pkg/config"
	"github.com/goliatone/go-tinymce/pkg/locale"
	"github.com/goliatone/go-tinymce/pkg/markers"
	rendertemplate "github.com/goliatone/go-tinymce/pkg/render/template"
)

const (
	// Name identifies the extension to template hosts.
	Name = "tinymce"
	// FunctionName is the template function exposed by TemplateFuncs.
	FunctionName = "tinymce_init"
	// DefaultParameterKey is the parameter holding the bundle configuration.
	DefaultParameterKey = "tinymce.config"
	// DefaultTemplate is the init template rendered by Init.
	DefaultTemplate = "templates/init"
	// DefaultScriptDir is the bundle directory, relative to the base URL.
	DefaultScriptDir = "bundles/tinymce/"
)

// Option configures an Extension.
type Option func(*options)

type options struct {
	store        config.ParameterStore
	parameterKey string
	tree         map[string]any

	assets    markers.AssetResolver
	routes    markers.RouteResolver
	locales   locale.Provider
	languages locale.Languages
	policy    locale.Policy
	merge     config.MergeStrategy

	templates    rendertemplate.TemplateRenderer
	templatesFS  fs.FS
	templateName string

	scriptDir string
	jqueryURL string
	logger    *zap.Logger
}

func defaultOptions() options {
	return options{
		parameterKey: DefaultParameterKey,
		assets:       markers.StaticAssets{},
		languages:    locale.NewFSLanguages(AssetsFS(), LanguagesDir),
		policy:       locale.PolicyStrict,
		merge:        config.MergeRecursive,
		templatesFS:  TemplatesFS(),
		templateName: DefaultTemplate,
		scriptDir:    DefaultScriptDir,
		logger:       zap.NewNop(),
	}
}

// WithParameters reads the bundle configuration from store under key. An
// empty key keeps DefaultParameterKey.
func WithParameters(store config.ParameterStore, key string) Option {
	return func(o *options) {
		if store == nil {
			return
		}
		o.store = store
		if key = strings.TrimSpace(key); key != "" {
			o.parameterKey = key
		}
	}
}

// WithConfig supplies the bundle configuration tree directly. It takes
// precedence over WithParameters.
func WithConfig(tree map[string]any) Option {
	return func(o *options) {
		if tree != nil {
			o.tree = tree
		}
	}
}

// WithAssets sets the resolver for asset[...] markers and script URLs.
func WithAssets(assets markers.AssetResolver) Option {
	return func(o *options) {
		if assets != nil {
			o.assets = assets
		}
	}
}

// WithRoutes sets the resolver for path[...] markers.
func WithRoutes(routes markers.RouteResolver) Option {
	return func(o *options) {
		if routes != nil {
			o.routes = routes
		}
	}
}

// WithLocaleProvider supplies the current locale when the configuration does
// not set a language.
func WithLocaleProvider(provider locale.Provider) Option {
	return func(o *options) {
		if provider != nil {
			o.locales = provider
		}
	}
}

// WithLanguages replaces the embedded language file set.
func WithLanguages(languages locale.Languages) Option {
	return func(o *options) {
		if languages != nil {
			o.languages = languages
		}
	}
}

// WithLanguagePolicy selects how locales are matched to language files.
func WithLanguagePolicy(policy locale.Policy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithMergeStrategy selects how per-call overrides merge into the base
// configuration.
func WithMergeStrategy(strategy config.MergeStrategy) Option {
	return func(o *options) {
		o.merge = strategy
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.templates = renderer
		}
	}
}

// WithTemplatesFS supplies an alternate template bundle for the default
// renderer.
func WithTemplatesFS(files fs.FS) Option {
	return func(o *options) {
		if files != nil {
			o.templatesFS = files
		}
	}
}

// WithTemplatesDir loads templates for the default renderer from disk.
func WithTemplatesDir(path string) Option {
	return func(o *options) {
		if path == "" {
			return
		}
		o.templatesFS = os.DirFS(path)
	}
}

// WithTemplate overrides the name of the init template.
func WithTemplate(name string) Option {
	return func(o *options) {
		if name = strings.TrimSpace(name); name != "" {
			o.templateName = name
		}
	}
}

// WithScriptDir overrides the bundle directory holding the editor and init
// scripts, relative to the configured base URL.
func WithScriptDir(dir string) Option {
	return func(o *options) {
		dir = strings.Trim(strings.TrimSpace(dir), "/")
		if dir == "" {
			return
		}
		o.scriptDir = dir + "/"
	}
}

// WithJQueryURL points include_jquery at a jQuery build outside the bundle.
func WithJQueryURL(url string) Option {
	return func(o *options) {
		o.jqueryURL = strings.TrimSpace(url)
	}
}

// WithLogger sets the logger. Init logs at debug level only.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
