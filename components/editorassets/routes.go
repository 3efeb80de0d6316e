package editorassets

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-tinymce/pkg/markers"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the component under basePath,
// without a trailing slash.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the asset handler under basePath on mux and
// returns the registered pattern.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers a handler under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("editorassets: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	mount := mountPath(basePath, opts.RoutePath)
	pattern := mount + "/"
	mux.Handle(pattern, http.StripPrefix(mount, HandlerWithOptions(opts)))
	return pattern, nil
}

// RegisterRouteNames adds RouteAssets and RouteLanguages to table so
// path[tinymce_languages] markers resolve to the mounted component.
func RegisterRouteNames(table *markers.RouteTable, basePath string, fns ...OptionFn) error {
	if table == nil {
		return fmt.Errorf("editorassets: missing route table")
	}
	opts := NewOptions(fns...)
	mount := mountPath(basePath, opts.RoutePath)
	if err := table.Register(RouteAssets, mount+"/"); err != nil {
		return err
	}
	return table.Register(RouteLanguages, mount+"/"+strings.Trim(opts.LanguagesPath, "/"))
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
