package config

import (
	"strings"

	"github.com/goliatone/go-tinymce/pkg/script"
)

// Root configuration keys.
const (
	KeyIncludeJQuery    = "include_jquery"
	KeyTinymceJQuery    = "tinymce_jquery"
	KeyJQueryScriptURL  = "jquery_script_url"
	KeySelector         = "selector"
	KeyLanguage         = "language"
	KeyBaseURL          = "base_url"
	KeyAssetPackageName = "asset_package_name"
	KeyUseCallbackInit  = "use_callback_tinymce_init"
	KeyConfiguration    = "configuration"
)

// Theme configuration entry keys.
const (
	KeyButtons         = "tinymce_buttons"
	KeyExternalPlugins = "external_plugins"
	KeyTheme           = "theme"

	KeyText  = "text"
	KeyTitle = "title"
	KeyImage = "image"
	KeyIcon  = "icon"
	KeyURL   = "url"

	KeyContentCSS         = "content_css"
	KeySpellcheckerRPCURL = "spellchecker_rpc_url"
)

// Config is the decoded editor configuration for one render call.
type Config struct {
	IncludeJQuery    bool
	TinymceJQuery    bool
	JQueryScriptURL  string
	Selector         string
	Language         string
	BaseURL          string
	AssetPackageName string
	UseCallbackInit  bool
	Configuration    []ThemeConfig
	Extra            map[string]any
}

// ThemeConfig is one configuration entry: custom buttons, external plugins
// and the per-theme editor settings.
type ThemeConfig struct {
	Buttons         map[string]Button
	ExternalPlugins map[string]ExternalPlugin
	Theme           map[string]ThemeOptions
	Extra           map[string]any
}

// Button describes a custom toolbar button. Image and Icon may hold
// asset[...] markers.
type Button struct {
	Text  string
	Title string
	Image string
	Icon  string
	Extra map[string]any
}

// ExternalPlugin points the editor at a plugin script outside the bundle.
type ExternalPlugin struct {
	URL   string
	Extra map[string]any
}

// ThemeOptions are the editor settings for a named theme.
type ThemeOptions struct {
	Language            string
	ContentCSS          CSSList
	SpellcheckerRPCURL  string
	FileBrowserCallback script.Callback
	FilePickerCallback  script.Callback
	PastePreprocess     script.Callback
	Extra               map[string]any
}

// CSSList holds content stylesheet entries. It decodes from either a comma
// separated string or a list and always encodes back to a comma separated
// string.
type CSSList []string

// String joins the entries with commas.
func (l CSSList) String() string {
	return strings.Join(l, ",")
}

// SplitCSS splits a comma separated stylesheet list. Entries are not trimmed.
func SplitCSS(value string) CSSList {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return CSSList(strings.Split(value, ","))
}
