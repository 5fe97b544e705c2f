// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/multierr"
)

// ErrUnsafePath is reported for entries which could escape destination
// directory when extracted (absolute or with ".." elements).
var ErrUnsafePath = errors.New("unsafe path in archive")

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to Walk
// The file argument is the zip.File structure for file in archive which satisfies
// match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk calls walkFn for every regular file in the archive located under
// prefix. Prefix is matched on path element boundaries: "docs" selects
// "docs/a.txt" and "docs" itself but not "docs2/a.txt". Empty prefix selects
// everything.
//
// Unsafe entries are skipped, walking continues and their names are returned
// in the combined error afterwards. Error returned by walkFn stops walking
// immediately and is returned as is.
func Walk(archive, prefix string, walkFn WalkFunc) (err error) {
	r, err := zip.OpenReader(archive)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}
	defer r.Close()

	prefix = strings.Trim(prefix, "/")

	var skipped error
	for _, f := range r.File {
		name := f.FileHeader.Name
		if f.FileInfo().IsDir() || !underPrefix(name, prefix) {
			continue
		}
		if !isSafePath(name) {
			skipped = multierr.Append(skipped, fmt.Errorf("%w: %q", ErrUnsafePath, name))
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return skipped
}

func underPrefix(name, prefix string) bool {
	if prefix == "" {
		return true
	}
	rest, found := strings.CutPrefix(name, prefix)
	return found && (rest == "" || rest[0] == '/')
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) || (len(name) > 1 && name[1] == ':') {
		return false
	}
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
