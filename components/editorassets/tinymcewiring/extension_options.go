package tinymcewiring

import (
	"github.com/goliatone/go-tinymce/components/editorassets"
	"github.com/goliatone/go-tinymce/pkg/extension"
	"github.com/goliatone/go-tinymce/pkg/locale"
)

// ExtensionOptions returns extension options that point the rendered script
// tags at the editorassets component mounted under basePath and resolve
// languages against the files the component serves.
//
// The options:
// - set the script dir to the component mount path
// - check languages in the component's file bundle
func ExtensionOptions(basePath string, fns ...editorassets.OptionFn) []extension.Option {
	opts := editorassets.NewOptions(fns...)
	mount := editorassets.MountPath(basePath, func(o *editorassets.Options) {
		if o == nil {
			return
		}
		*o = opts
	})

	return []extension.Option{
		extension.WithScriptDir(mount),
		extension.WithLanguages(locale.NewFSLanguages(opts.Files, extension.LanguagesDir)),
	}
}
