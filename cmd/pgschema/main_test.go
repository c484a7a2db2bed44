package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pgschema-labs/pgschema/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "pgschema")
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, expected := range []string{"expand", "expand-object", "attrs", "attrs-batch", "watch", "serve", "version"} {
		assert.Contains(t, output, expected)
	}
}

func TestExpandCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.sch")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE {name} ();\n"), 0o644))

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"expand", path, "--attr", "name=accounts"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "CREATE TABLE accounts ();\n", buf.String())
}

func TestExpandCommand_MissingAttributeReportsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.sch")
	require.NoError(t, os.WriteFile(path, []byte("{missing}\n"), 0o644))

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"expand", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown attribute") || strings.Contains(err.Error(), "missing"))
}
