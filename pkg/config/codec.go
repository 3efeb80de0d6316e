package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-tinymce/pkg/script"
)

// UnmarshalJSON decodes the known root settings and keeps the rest in Extra.
func (c *Config) UnmarshalJSON(data []byte) error {
	var out Config
	extra, err := decodeObject(data, map[string]any{
		KeyIncludeJQuery:    &out.IncludeJQuery,
		KeyTinymceJQuery:    &out.TinymceJQuery,
		KeyJQueryScriptURL:  &out.JQueryScriptURL,
		KeySelector:         &out.Selector,
		KeyLanguage:         &out.Language,
		KeyBaseURL:          &out.BaseURL,
		KeyAssetPackageName: &out.AssetPackageName,
		KeyUseCallbackInit:  &out.UseCallbackInit,
		KeyConfiguration:    &out.Configuration,
	})
	if err != nil {
		return fmt.Errorf("config: decode root: %w", err)
	}
	out.Extra = extra
	*c = out
	return nil
}

// MarshalScript returns the script tree for the configuration. The asset
// package name is consumed by the server side only and is never emitted.
func (c Config) MarshalScript() (any, error) {
	out := cloneMap(c.Extra)
	out[KeyIncludeJQuery] = c.IncludeJQuery
	out[KeyTinymceJQuery] = c.TinymceJQuery
	out[KeyUseCallbackInit] = c.UseCallbackInit
	setString(out, KeyJQueryScriptURL, c.JQueryScriptURL)
	setString(out, KeySelector, c.Selector)
	setString(out, KeyLanguage, c.Language)
	setString(out, KeyBaseURL, c.BaseURL)

	entries := make([]any, 0, len(c.Configuration))
	for _, entry := range c.Configuration {
		entries = append(entries, entry)
	}
	out[KeyConfiguration] = entries
	return out, nil
}

// UnmarshalJSON decodes a theme configuration entry.
func (t *ThemeConfig) UnmarshalJSON(data []byte) error {
	var out ThemeConfig
	extra, err := decodeObject(data, map[string]any{
		KeyButtons:         &out.Buttons,
		KeyExternalPlugins: &out.ExternalPlugins,
		KeyTheme:           &out.Theme,
	})
	if err != nil {
		return fmt.Errorf("config: decode configuration entry: %w", err)
	}
	out.Extra = extra
	*t = out
	return nil
}

// MarshalScript returns the script tree for the entry.
func (t ThemeConfig) MarshalScript() (any, error) {
	out := cloneMap(t.Extra)

	buttons := make(map[string]any, len(t.Buttons))
	for name, button := range t.Buttons {
		buttons[name] = button
	}
	out[KeyButtons] = buttons

	plugins := make(map[string]any, len(t.ExternalPlugins))
	for name, plugin := range t.ExternalPlugins {
		plugins[name] = plugin
	}
	out[KeyExternalPlugins] = plugins

	themes := make(map[string]any, len(t.Theme))
	for name, options := range t.Theme {
		themes[name] = options
	}
	out[KeyTheme] = themes
	return out, nil
}

// UnmarshalJSON decodes a custom button.
func (b *Button) UnmarshalJSON(data []byte) error {
	var out Button
	extra, err := decodeObject(data, map[string]any{
		KeyText:  &out.Text,
		KeyTitle: &out.Title,
		KeyImage: &out.Image,
		KeyIcon:  &out.Icon,
	})
	if err != nil {
		return fmt.Errorf("config: decode button: %w", err)
	}
	out.Extra = extra
	*b = out
	return nil
}

// MarshalScript omits empty image and icon settings.
func (b Button) MarshalScript() (any, error) {
	out := cloneMap(b.Extra)
	setString(out, KeyText, b.Text)
	setString(out, KeyTitle, b.Title)
	setString(out, KeyImage, b.Image)
	setString(out, KeyIcon, b.Icon)
	return out, nil
}

// UnmarshalJSON decodes an external plugin.
func (p *ExternalPlugin) UnmarshalJSON(data []byte) error {
	var out ExternalPlugin
	extra, err := decodeObject(data, map[string]any{
		KeyURL: &out.URL,
	})
	if err != nil {
		return fmt.Errorf("config: decode external plugin: %w", err)
	}
	out.Extra = extra
	*p = out
	return nil
}

// MarshalScript returns the plugin script tree.
func (p ExternalPlugin) MarshalScript() (any, error) {
	out := cloneMap(p.Extra)
	out[KeyURL] = p.URL
	return out, nil
}

// UnmarshalJSON decodes theme options, typing the callback settings.
func (o *ThemeOptions) UnmarshalJSON(data []byte) error {
	var out ThemeOptions
	extra, err := decodeObject(data, map[string]any{
		KeyLanguage:                  &out.Language,
		KeyContentCSS:                &out.ContentCSS,
		KeySpellcheckerRPCURL:        &out.SpellcheckerRPCURL,
		script.FileBrowserCallbackKey: &out.FileBrowserCallback,
		script.FilePickerCallbackKey:  &out.FilePickerCallback,
		script.PastePreprocessKey:     &out.PastePreprocess,
	})
	if err != nil {
		return fmt.Errorf("config: decode theme options: %w", err)
	}
	out.Extra = extra
	*o = out
	return nil
}

// MarshalScript emits callbacks as bare expressions and the stylesheet list
// as a comma separated string.
func (o ThemeOptions) MarshalScript() (any, error) {
	out := cloneMap(o.Extra)
	setString(out, KeyLanguage, o.Language)
	setString(out, KeySpellcheckerRPCURL, o.SpellcheckerRPCURL)
	if o.ContentCSS != nil {
		out[KeyContentCSS] = o.ContentCSS.String()
	}
	setCallback(out, script.FileBrowserCallbackKey, o.FileBrowserCallback)
	setCallback(out, script.FilePickerCallbackKey, o.FilePickerCallback)
	setCallback(out, script.PastePreprocessKey, o.PastePreprocess)
	return out, nil
}

// UnmarshalJSON accepts a comma separated string or a list of strings.
func (l *CSSList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*l = SplitCSS(value)
		return nil
	}
	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("content_css must be a string or a list of strings: %w", err)
	}
	*l = CSSList(list)
	return nil
}

// MarshalJSON encodes the list as a comma separated string.
func (l CSSList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func decodeObject(data []byte, fields map[string]any) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	extra := make(map[string]any)
	for key, value := range raw {
		if target, ok := fields[key]; ok {
			if isNull(value) {
				continue
			}
			if err := json.Unmarshal(value, target); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			continue
		}

		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		extra[key] = liftCallbacks(key, decoded)
	}

	if len(extra) == 0 {
		return nil, nil
	}
	return extra, nil
}

// liftCallbacks converts string values stored under callback keys into
// script.Callback at any depth of a free-form settings tree.
func liftCallbacks(key string, value any) any {
	switch typed := value.(type) {
	case string:
		if script.IsCallbackKey(key) {
			return script.Callback(typed)
		}
		return typed
	case map[string]any:
		for k, v := range typed {
			typed[k] = liftCallbacks(k, v)
		}
		return typed
	case []any:
		for i, v := range typed {
			typed[i] = liftCallbacks("", v)
		}
		return typed
	default:
		return value
	}
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func setString(out map[string]any, key, value string) {
	if strings.TrimSpace(value) == "" {
		delete(out, key)
		return
	}
	out[key] = value
}

func setCallback(out map[string]any, key string, value script.Callback) {
	if value.Empty() {
		delete(out, key)
		return
	}
	out[key] = value
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+8)
	for key, value := range in {
		out[key] = value
	}
	return out
}
