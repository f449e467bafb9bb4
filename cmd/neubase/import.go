// Import command ingests an external file as a new logical table.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neudata/neubase/internal/table"
)

var (
	flagMetaFile string
	flagSrcFile  string
)

var importCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Create a table from a metadata workbook or a source file",
	Long: `Import constructs a logical table and persists it as three artifacts:
the data table, its meta rows, and its column rows.

With --meta-file, the workbook's Meta sheet describes the source file and
ingestion options, and its Columns sheet supplies the column metadata.
With --file, the source is ingested directly and column metadata is derived
from the data's shape.

Example:
  neubase import members --meta-file data/members_meta.xlsx
  neubase import pay2025 --file data/pay2025.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagMetaFile, "meta-file", "", "metadata workbook (Meta + Columns sheets)")
	importCmd.Flags().StringVar(&flagSrcFile, "file", "", "source CSV or spreadsheet file")
}

func runImport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if flagMetaFile == "" && flagSrcFile == "" {
		return fmt.Errorf("either --meta-file or --file is required")
	}

	cat, err := openCatalog()
	if err != nil {
		return err
	}

	t, err := table.New(name, cat, nil, flagMetaFile)
	if err != nil {
		return fmt.Errorf("construct table: %w", err)
	}
	if flagSrcFile != "" {
		if t.Meta == nil {
			t.Meta = table.Meta{}
		}
		t.Meta[table.MetaKeyFile] = flagSrcFile
		if err := t.ReadDataFromFile(); err != nil {
			return fmt.Errorf("read source: %w", err)
		}
	}

	if err := t.CreateTable(); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	fmt.Printf("Imported %s (%d rows)\n", name, t.Data.NumRows())
	return nil
}
