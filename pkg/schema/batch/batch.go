// Package batch runs ExtractAttributeNames concurrently across a
// directory of schema files. Each file gets its own buffer, so the
// single-threaded, non-reentrant constraint on a *schema.Parser instance
// never applies across files.
package batch

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pgschema-labs/pgschema/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// FileResult holds the outcome of extracting one file's attribute names.
type FileResult struct {
	Path  string
	Names []string
	Err   error
}

// ExtractDir walks dir non-recursively for files matching the glob pattern
// (".sch" by default when pattern is empty) and extracts attribute names
// from each concurrently, up to limit goroutines at once (a limit <= 0
// means unbounded). Results are sorted by path for deterministic output.
// A per-file error does not stop the rest of the batch; it is recorded in
// that file's FileResult.Err.
func ExtractDir(dir, pattern string, limit int) ([]FileResult, error) {
	if pattern == "" {
		pattern = "*.sch"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, schema.NewFileNotAccessibleError(dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	results := make([]FileResult, len(paths))
	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			p := schema.NewParser()
			names, err := p.ExtractAttributeNamesFromFile(path)
			results[i] = FileResult{Path: path, Names: names, Err: err}
			return nil
		})
	}
	// errors are per-file, not batch-fatal; g.Wait() only surfaces a
	// programmer error in one of the goroutines above, which never
	// returns one.
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}
