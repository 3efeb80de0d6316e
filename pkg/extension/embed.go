package extension

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed assets
var embeddedAssets embed.FS

const (
	// InitScriptName is the standard init script, relative to the bundle dir.
	InitScriptName = "js/init.standard.js"
	// InitJQueryScriptName is the jQuery init script, relative to the bundle dir.
	InitJQueryScriptName = "js/init.jquery.js"
	// EditorScriptName is the editor build, relative to the bundle dir.
	EditorScriptName = "vendor/tinymce/tinymce.min.js"
	// EditorJQueryScriptName is the jQuery editor build, relative to the bundle dir.
	EditorJQueryScriptName = "vendor/tinymce/tinymce.jquery.min.js"
	// JQueryScriptName is the jQuery library, relative to the bundle dir.
	JQueryScriptName = "vendor/jquery/jquery.min.js"
	// LanguagesDir holds one <code>.js file per editor language.
	LanguagesDir = "vendor/tinymce/langs"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded init scripts and language files so callers
// can serve them over HTTP or copy them into their own asset pipeline. The
// editor build itself is not bundled.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// LanguagesFS exposes the embedded language files.
func LanguagesFS() fs.FS {
	sub, err := fs.Sub(AssetsFS(), LanguagesDir)
	if err != nil {
		return AssetsFS()
	}
	return sub
}
