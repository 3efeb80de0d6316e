package markers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPackage is returned when an asset names an unregistered package.
var ErrUnknownPackage = errors.New("markers: unknown asset package")

// Package is a named asset location, for example a CDN host.
type Package struct {
	BasePath string
	Version  string
}

// StaticAssets resolves asset paths against a base path with optional named
// packages and version query strings. Absolute URLs and paths that already
// start with "/" skip the base path.
type StaticAssets struct {
	BasePath string
	Version  string
	Packages map[string]Package
}

// AssetURL implements AssetResolver.
func (s StaticAssets) AssetURL(path, packageName string) (string, error) {
	pkg := Package{BasePath: s.BasePath, Version: s.Version}
	if name := strings.TrimSpace(packageName); name != "" {
		named, ok := s.Packages[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownPackage, name)
		}
		pkg = named
	}
	return pkg.url(path), nil
}

func (p Package) url(path string) string {
	if isAbsoluteURL(path) {
		return path
	}
	versioned := withVersion(path, p.Version)
	if strings.HasPrefix(versioned, "/") {
		return versioned
	}
	base := strings.TrimRight(p.BasePath, "/")
	return base + "/" + strings.TrimLeft(versioned, "/")
}

func isAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "//") || strings.Contains(path, "://")
}

func withVersion(path, version string) string {
	version = strings.TrimSpace(version)
	if version == "" || path == "" {
		return path
	}
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return path + separator + "v=" + version
}
