// Package runtime ships the C++ support headers that generated code
// includes: checked and saturating arithmetic primitives, the constraint
// error type, the istream drill and the atlas_value dispatch.
package runtime

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/atlas/errors"
)

//go:embed headers/atlas/*.hpp
var headers embed.FS

// Names lists the embedded headers as include paths ("atlas/value.hpp")
func Names() []string {
	entries, err := fs.ReadDir(headers, "headers/atlas")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, "atlas/"+entry.Name())
	}
	sort.Strings(names)
	return names
}

// Header returns the content of one support header by include path
func Header(name string) ([]byte, error) {
	content, err := headers.ReadFile("headers/" + name)
	if err != nil {
		return nil, errors.Newf("unknown runtime header %q", name)
	}
	return content, nil
}

// Emit writes the support headers under dir, creating dir/atlas
func Emit(dir string) error {
	target := filepath.Join(dir, "atlas")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return errors.NewFileError(err, "creating "+target)
	}
	for _, name := range Names() {
		content, err := Header(name)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return errors.NewFileError(err, "writing "+path)
		}
	}
	return nil
}
