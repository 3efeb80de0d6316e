package tinymce

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-tinymce/pkg/config"
	"github.com/goliatone/go-tinymce/pkg/extension"
	"github.com/goliatone/go-tinymce/pkg/markers"
)

// Option aliases extension.Option for callers configuring the root helpers.
type Option = extension.Option

// Config aliases the decoded editor configuration.
type Config = config.Config

// Extension aliases the init renderer.
type Extension = extension.Extension

// New exposes the extension constructor from the top-level module.
func New(options ...Option) (*Extension, error) {
	return extension.New(options...)
}

// Init builds an extension from options and renders the initialisation
// markup once. It is the simplest entry point for callers that just want the
// script tags.
func Init(ctx context.Context, overrides map[string]any, options ...Option) (string, error) {
	ext, err := extension.New(options...)
	if err != nil {
		return "", err
	}
	return ext.Init(ctx, overrides)
}

// InitFromFile loads the bundle configuration from a YAML, JSON or JSONC
// parameters file and renders the initialisation markup.
func InitFromFile(ctx context.Context, path string, overrides map[string]any, options ...Option) (string, error) {
	params, err := config.LoadParameters(ctx, path)
	if err != nil {
		return "", err
	}
	opts := append([]Option{extension.WithParameters(params, "")}, options...)
	return Init(ctx, overrides, opts...)
}

// WithThemeSelector resolves asset[theme:<key>] markers through a go-theme
// selector. Other asset paths go to next, or to plain static paths when next
// is nil.
func WithThemeSelector(selector theme.ThemeSelector, themeName, variant string, next markers.AssetResolver) Option {
	if next == nil {
		next = markers.StaticAssets{}
	}
	return extension.WithAssets(markers.NewThemeAssets(selector, themeName, variant, next))
}
