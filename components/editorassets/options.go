package editorassets

import (
	"io/fs"
	"net/http"

	"github.com/goliatone/go-tinymce/pkg/extension"
)

// Route names usable with a markers.RouteTable.
const (
	RouteAssets    = "tinymce_assets"
	RouteLanguages = "tinymce_languages"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath     string
	LanguagesPath string
	CacheControl  string
	Guard         GuardFunc

	Files fs.FS
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     "/bundles/tinymce",
		LanguagesPath: "/languages",
		CacheControl:  "public, max-age=3600",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/bundles/tinymce"
	}
	if opts.LanguagesPath == "" {
		opts.LanguagesPath = "/languages"
	}
	if opts.Files == nil {
		opts.Files = extension.AssetsFS()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithLanguagesPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LanguagesPath = path
	}
}

// WithCacheControl sets the Cache-Control header for served files. An empty
// value disables the header.
func WithCacheControl(value string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CacheControl = value
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithFiles replaces the embedded asset bundle. The layout must match
// extension.AssetsFS().
func WithFiles(files fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Files = files
	}
}
