package locale

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

// LanguageFileExt is the extension of editor language files.
const LanguageFileExt = ".js"

// Languages reports whether a language file exists for code.
type Languages interface {
	Has(code string) bool
}

// FSLanguages checks for <Dir>/<code>.js inside FS on every lookup.
type FSLanguages struct {
	FS  fs.FS
	Dir string
}

// NewFSLanguages returns a Languages backed by a directory of language files.
func NewFSLanguages(fsys fs.FS, dir string) FSLanguages {
	return FSLanguages{FS: fsys, Dir: strings.Trim(strings.TrimSpace(dir), "/")}
}

// Has reports whether the language file exists.
func (l FSLanguages) Has(code string) bool {
	code = strings.TrimSpace(code)
	if l.FS == nil || code == "" || strings.ContainsAny(code, `/\`) || strings.HasPrefix(code, ".") {
		return false
	}
	name := code + LanguageFileExt
	if l.Dir != "" && l.Dir != "." {
		name = path.Join(l.Dir, name)
	}
	info, err := fs.Stat(l.FS, name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// List enumerates the available language codes.
func (l FSLanguages) List() ([]string, error) {
	return ListLanguages(l.FS, l.Dir)
}

// SetLanguages is a fixed set of language codes.
type SetLanguages map[string]struct{}

// NewSetLanguages builds a set from codes.
func NewSetLanguages(codes ...string) SetLanguages {
	set := make(SetLanguages, len(codes))
	for _, code := range codes {
		if code = strings.TrimSpace(code); code != "" {
			set[code] = struct{}{}
		}
	}
	return set
}

// Has reports whether code is in the set.
func (s SetLanguages) Has(code string) bool {
	_, ok := s[strings.TrimSpace(code)]
	return ok
}

// ListLanguages returns the sorted language codes found in dir.
func ListLanguages(fsys fs.FS, dir string) ([]string, error) {
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, LanguageFileExt) {
			continue
		}
		codes = append(codes, strings.TrimSuffix(name, LanguageFileExt))
	}
	sort.Strings(codes)
	return codes, nil
}
