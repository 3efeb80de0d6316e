// Package editorassets serves the embedded editor init scripts and language
// files over net/http.
//
// The handler answers GET and HEAD requests. Files are served from
// extension.AssetsFS() unless WithFiles replaces them, and the languages
// route returns the available language codes as JSON.
package editorassets
