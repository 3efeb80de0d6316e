package tinymce

import (
	"io/fs"

	"github.com/goliatone/go-tinymce/pkg/extension"
)

// RuntimeAssetsFS exposes the init scripts and language files so Go
// applications can serve them next to their own editor build.
//
// Typical mount:
//
//	mux.Handle("/bundles/tinymce/",
//	  http.StripPrefix("/bundles/tinymce/",
//	    http.FileServerFS(tinymce.RuntimeAssetsFS()),
//	  ),
//	)
//
// components/editorassets wraps the same files with a guard and a language
// listing.
func RuntimeAssetsFS() fs.FS {
	return extension.AssetsFS()
}

// LanguagesFS exposes the editor language files, one <code>.js per language.
func LanguagesFS() fs.FS {
	return extension.LanguagesFS()
}
