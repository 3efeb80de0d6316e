package markers

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemePrefix marks asset paths that name a theme asset key, as in
// asset[theme:editor.content_css].
const ThemePrefix = "theme:"

// ErrUnknownThemeAsset is returned when the selected theme has no file for a key.
var ErrUnknownThemeAsset = errors.New("markers: unknown theme asset")

// ThemeAssets resolves theme:<key> asset paths through a go-theme selector
// and hands every other path to Next.
type ThemeAssets struct {
	Selector theme.ThemeSelector
	Theme    string
	Variant  string
	Next     AssetResolver
}

// NewThemeAssets builds a ThemeAssets resolver.
func NewThemeAssets(selector theme.ThemeSelector, themeName, variant string, next AssetResolver) *ThemeAssets {
	return &ThemeAssets{
		Selector: selector,
		Theme:    strings.TrimSpace(themeName),
		Variant:  strings.TrimSpace(variant),
		Next:     next,
	}
}

// AssetURL implements AssetResolver. The base URL prepended by the Rewriter
// is ignored for theme keys because theme manifests carry their own prefix.
func (t *ThemeAssets) AssetURL(path, packageName string) (string, error) {
	_, key, ok := strings.Cut(path, ThemePrefix)
	if !ok {
		if t.Next == nil {
			return "", fmt.Errorf("%w (path %q)", ErrNoAssetResolver, path)
		}
		return t.Next.AssetURL(path, packageName)
	}

	key = strings.TrimSpace(key)
	if t.Selector == nil {
		return "", errors.New("markers: theme selector is not configured")
	}
	selection, err := t.Selector.Select(t.Theme, t.Variant)
	if err != nil {
		return "", fmt.Errorf("markers: select theme %q: %w", t.Theme, err)
	}
	if selection == nil || selection.Manifest == nil {
		return "", fmt.Errorf("markers: theme %q has no manifest", t.Theme)
	}

	manifest := selection.Manifest
	prefix := manifest.Assets.Prefix
	file, found := manifest.Assets.Files[key]
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		if override, ok := variant.Assets.Files[key]; ok {
			file, found = override, true
		}
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}
	if !found || strings.TrimSpace(file) == "" {
		return "", fmt.Errorf("%w: %s (theme %q)", ErrUnknownThemeAsset, key, selection.Theme)
	}
	if isAbsoluteURL(file) || prefix == "" {
		return file, nil
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/"), nil
}
