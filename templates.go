package tinymce

import (
	"io/fs"

	"github.com/goliatone/go-tinymce/pkg/extension"
)

// EmbeddedTemplates exposes the built-in init templates so callers can reuse
// or extend them without importing the extension package directly.
func EmbeddedTemplates() fs.FS {
	return extension.TemplatesFS()
}
