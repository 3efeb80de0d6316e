package markers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoAssetResolver is returned when an asset marker is found but no
	// AssetResolver was configured.
	ErrNoAssetResolver = errors.New("markers: asset resolver is not configured")
	// ErrNoRouteResolver is returned when a path marker is found but no
	// RouteResolver was configured.
	ErrNoRouteResolver = errors.New("markers: route resolver is not configured")
)

var (
	assetMarker = regexp.MustCompile(`(?i)^asset\[(.+)\]$`)
	pathMarker  = regexp.MustCompile(`(?i)^path\[(.+)\]$`)
)

// AssetResolver turns an asset path into a public URL. packageName selects a
// named asset package and may be empty.
type AssetResolver interface {
	AssetURL(path, packageName string) (string, error)
}

// AssetResolverFunc adapts a function to AssetResolver.
type AssetResolverFunc func(path, packageName string) (string, error)

// AssetURL calls f.
func (f AssetResolverFunc) AssetURL(path, packageName string) (string, error) {
	return f(path, packageName)
}

// RouteResolver generates the URL for a named route.
type RouteResolver interface {
	RouteURL(name string) (string, error)
}

// RouteResolverFunc adapts a function to RouteResolver.
type RouteResolverFunc func(name string) (string, error)

// RouteURL calls f.
func (f RouteResolverFunc) RouteURL(name string) (string, error) {
	return f(name)
}

// ParseAsset returns the path inside an asset[...] marker.
func ParseAsset(value string) (string, bool) {
	return parse(assetMarker, value)
}

// ParseRoute returns the route name inside a path[...] marker.
func ParseRoute(value string) (string, bool) {
	return parse(pathMarker, value)
}

func parse(pattern *regexp.Regexp, value string) (string, bool) {
	match := pattern.FindStringSubmatch(value)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Rewriter resolves markers for one render call.
type Rewriter struct {
	assets      AssetResolver
	routes      RouteResolver
	baseURL     string
	packageName string
}

// RewriterOption configures a Rewriter.
type RewriterOption func(*Rewriter)

// WithBaseURL sets the prefix prepended to asset marker paths.
func WithBaseURL(baseURL string) RewriterOption {
	return func(r *Rewriter) {
		r.baseURL = baseURL
	}
}

// WithPackage sets the asset package passed to the AssetResolver.
func WithPackage(name string) RewriterOption {
	return func(r *Rewriter) {
		r.packageName = strings.TrimSpace(name)
	}
}

// NewRewriter builds a Rewriter. Either resolver may be nil; rewriting a
// marker that needs a missing resolver fails.
func NewRewriter(assets AssetResolver, routes RouteResolver, options ...RewriterOption) *Rewriter {
	r := &Rewriter{assets: assets, routes: routes}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// BaseURL returns the configured base URL.
func (r *Rewriter) BaseURL() string {
	return r.baseURL
}

// Asset rewrites an asset[...] marker. Other strings are returned unchanged.
func (r *Rewriter) Asset(value string) (string, error) {
	path, ok := ParseAsset(value)
	if !ok {
		return value, nil
	}
	return r.AssetPath(path)
}

// AssetPath resolves a plain asset path relative to the base URL.
func (r *Rewriter) AssetPath(path string) (string, error) {
	if r.assets == nil {
		return "", fmt.Errorf("%w (path %q)", ErrNoAssetResolver, path)
	}
	url, err := r.assets.AssetURL(r.baseURL+path, r.packageName)
	if err != nil {
		return "", fmt.Errorf("markers: resolve asset %q: %w", path, err)
	}
	return url, nil
}

// Route rewrites a path[...] marker. Other strings are returned unchanged.
func (r *Rewriter) Route(value string) (string, error) {
	name, ok := ParseRoute(value)
	if !ok {
		return value, nil
	}
	if r.routes == nil {
		return "", fmt.Errorf("%w (route %q)", ErrNoRouteResolver, name)
	}
	url, err := r.routes.RouteURL(name)
	if err != nil {
		return "", fmt.Errorf("markers: resolve route %q: %w", name, err)
	}
	return url, nil
}

// CSS trims and rewrites every stylesheet entry and joins the result with
// commas, keeping the original order.
func (r *Rewriter) CSS(files []string) (string, error) {
	out := make([]string, 0, len(files))
	for _, file := range files {
		url, err := r.Asset(strings.TrimSpace(file))
		if err != nil {
			return "", err
		}
		out = append(out, url)
	}
	return strings.Join(out, ","), nil
}
