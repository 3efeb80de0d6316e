// Package extension renders the TinyMCE initialisation markup for a page.
//
// An Extension reads the bundle configuration from a parameter store, merges
// per-call overrides, rewrites asset[...] and path[...] markers into URLs,
// resolves the editor language against the available language files and
// renders the init template with the serialised configuration. Callback
// settings (file_browser_callback, file_picker_callback, paste_preprocess)
// are emitted as bare script expressions.
//
// All collaborators are supplied through Options at construction time:
//
//	ext, err := extension.New(
//		extension.WithParameters(params, "tinymce.config"),
//		extension.WithAssets(markers.StaticAssets{BasePath: "/static"}),
//		extension.WithRoutes(routes),
//		extension.WithLocaleProvider(locale.ContextProvider{Default: "en"}),
//	)
//	markup, err := ext.Init(ctx, map[string]any{"selector": ".comment"})
//
// Extensions are immutable once built and can be shared between goroutines.
package extension
