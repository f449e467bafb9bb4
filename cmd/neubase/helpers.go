// Shared helpers for neubase CLI commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neudata/neubase/internal/catalog"
	"github.com/neudata/neubase/internal/paths"
	"github.com/neudata/neubase/pkg/frame"
	"github.com/neudata/neubase/pkg/types"
)

// defaultStoreFileName is the store file created under the data directory
// when no db_file is configured.
const defaultStoreFileName = "neubase.db"

// resolveDBFile returns the store file path following the precedence:
// --db flag > config.yaml db_file > NEUBASE_DATA_DIR/neubase.db >
// $(CWD)/.neubase-db/neubase.db.
func resolveDBFile() (string, error) {
	if flagDBFile != "" {
		return filepath.Abs(flagDBFile)
	}
	if configDBFile != "" {
		return filepath.Abs(configDBFile)
	}
	dataDir, err := paths.ResolveDataDir("", "")
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, defaultStoreFileName), nil
}

// openCatalog resolves the store file, creates its directory if needed, and
// opens the catalog without seeding metadata.
func openCatalog() (*catalog.Catalog, error) {
	dbFile, err := resolveDBFile()
	if err != nil {
		return nil, fmt.Errorf("resolve db file: %w", err)
	}
	cfg := types.Config{DBFile: dbFile, OutputDir: configOutputDir}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbFile), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	cat, err := catalog.Open(cfg.DBFile, nil)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return cat, nil
}

// parseKeyValues parses key=value arguments into a map.
func parseKeyValues(args []string) (map[string]string, error) {
	kv := make(map[string]string, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid argument %q (expected key=value)", arg)
		}
		kv[parts[0]] = parts[1]
	}
	return kv, nil
}

// printFrame renders a frame as aligned columns on stdout.
func printFrame(f *frame.Frame) {
	names := f.Names()
	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = len(name)
	}
	for i := 0; i < f.NumRows(); i++ {
		for j, v := range f.Row(i) {
			if n := len(v.String()); n > widths[j] {
				widths[j] = n
			}
		}
	}

	var b strings.Builder
	for j, name := range names {
		fmt.Fprintf(&b, "%-*s  ", widths[j], name)
	}
	fmt.Println(strings.TrimRight(b.String(), " "))
	for i := 0; i < f.NumRows(); i++ {
		b.Reset()
		for j, v := range f.Row(i) {
			fmt.Fprintf(&b, "%-*s  ", widths[j], v.String())
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
}
