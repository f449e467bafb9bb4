// Init command creates a store and seeds catalog-level metadata.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neudata/neubase/internal/catalog"
)

var initCmd = &cobra.Command{
	Use:   "init [key=value...]",
	Short: "Initialize the store, optionally seeding catalog metadata",
	Long: `Init creates the SQLite store file and its system tables. Optional
key=value arguments are seeded as catalog-level metadata under the __db__
partition. Seeding fails if the store already has a meta table.

Example:
  neubase init
  neubase init owner=research team=data-curation`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dbFile, err := resolveDBFile()
	if err != nil {
		return fmt.Errorf("resolve db file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbFile), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	var meta map[string]string
	if len(args) > 0 {
		meta, err = parseKeyValues(args)
		if err != nil {
			return err
		}
	}

	if _, err := catalog.Open(dbFile, meta); err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	fmt.Printf("Initialized store at %s\n", dbFile)
	return nil
}
