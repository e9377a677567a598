// Package sitefs is the generator's view of the file system: reading
// templates and includes, writing rendered pages, and walking the site tree.
package sitefs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// FS is the set of file operations the generator depends on.
type FS interface {
	ReadText(path string) (string, error)
	WriteText(path, text string) error
	Enumerate(root, suffix string) ([]string, error)
}

// OS implements FS on the local file system.
type OS struct{}

var _ FS = OS{}

// ReadText returns the whole file as text.
func (OS) ReadText(path string) (string, error) {
	// #nosec G304 -- paths come from the site tree the user asked to build.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "read file").
			WithContext("path", path).
			Build()
	}
	return string(data), nil
}

// WriteText creates or truncates path, creating parent directories as needed.
func (OS) WriteText(path, text string) error {
	if path == "" {
		return errors.FileSystemError("output path is required").Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", path).
			Build()
	}
	// #nosec G306 -- generated pages are meant to be served.
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write output file").
			WithContext("path", path).
			Build()
	}
	return nil
}

// Enumerate lists every regular file under root whose name ends in suffix,
// recursively and in lexical walk order.
func (OS) Enumerate(root, suffix string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), suffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "enumerate site files").
			WithContext("path", root).
			WithContext("suffix", suffix).
			Build()
	}
	return paths, nil
}
