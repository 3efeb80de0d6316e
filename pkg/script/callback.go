package script

import "strings"

// Callback holds a JavaScript expression (usually a function name or inline
// function) that must be emitted without quotes.
type Callback string

// Empty reports whether the callback carries no expression.
func (c Callback) Empty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Callback keys recognised by the editor settings.
const (
	FileBrowserCallbackKey = "file_browser_callback"
	FilePickerCallbackKey  = "file_picker_callback"
	PastePreprocessKey     = "paste_preprocess"
)

var callbackKeys = map[string]struct{}{
	FileBrowserCallbackKey: {},
	FilePickerCallbackKey:  {},
	PastePreprocessKey:     {},
}

// IsCallbackKey reports whether values stored under key are callbacks.
func IsCallbackKey(key string) bool {
	_, ok := callbackKeys[strings.TrimSpace(key)]
	return ok
}

// CallbackKeys returns the recognised callback keys.
func CallbackKeys() []string {
	return []string{FileBrowserCallbackKey, FilePickerCallbackKey, PastePreprocessKey}
}
