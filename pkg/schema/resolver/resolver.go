// Package resolver implements the on-disk schema file layout convention
// consulted by schema.Parser.ExpandFromObject.
package resolver

import (
	"os"
	"path/filepath"

	"github.com/pgschema-labs/pgschema/pkg/schema"
)

// FS resolves an object name and kind directory to a path of the form
// <root>/<kindDir>/<objName>.sch and confirms the file is readable.
type FS struct {
	Root string
}

// New returns an FS rooted at root.
func New(root string) FS {
	return FS{Root: root}
}

// Resolve implements schema.FileResolver.
func (f FS) Resolve(objName, kindDir string) (string, error) {
	path := filepath.Join(f.Root, kindDir, objName+".sch")
	if _, err := os.Stat(path); err != nil {
		return "", schema.NewFileNotAccessibleError(path, err)
	}
	return path, nil
}
