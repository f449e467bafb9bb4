// Package integration provides end-to-end lifecycle tests for neubase,
// exercising the catalog and table layers together against a real store
// file on disk.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neudata/neubase/internal/catalog"
)

// newWorkspace creates a temp workspace with a catalog store inside it and
// returns both.
func newWorkspace(t *testing.T) (string, *catalog.Catalog) {
	t.Helper()
	workspace := t.TempDir()
	cat, err := catalog.Open(filepath.Join(workspace, "payroll.db"), nil)
	require.NoError(t, err)
	return workspace, cat
}

// writeFixtureCSV writes content to a CSV file inside dir and returns its path.
func writeFixtureCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
