package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pgschema-labs/pgschema/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FindsFileByConvention(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sql"), 0o755))
	want := filepath.Join(dir, "sql", "table.sch")
	require.NoError(t, os.WriteFile(want, []byte("CREATE TABLE {name} ();\n"), 0o644))

	r := New(dir)
	got, err := r.Resolve("table", "sql")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolve_MissingFileWrapsAsFileNotAccessible(t *testing.T) {
	dir := t.TempDir()

	r := New(dir)
	_, err := r.Resolve("missing", "xml")
	require.Error(t, err)

	var fileErr *schema.FileNotAccessibleError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, filepath.Join(dir, "xml", "missing.sch"), fileErr.Path)
}

func TestResolve_DistinguishesKindDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "xml"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xml", "col.sch"), []byte("<col/>\n"), 0o644))

	r := New(dir)
	_, err := r.Resolve("col", "sql")
	require.Error(t, err)

	got, err := r.Resolve("col", "xml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "xml", "col.sch"), got)
}
