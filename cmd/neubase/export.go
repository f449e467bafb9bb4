// Export command renders a table as a styled spreadsheet.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neudata/neubase/internal/table"
	"github.com/neudata/neubase/pkg/types"
)

var (
	flagColor      string
	flagPageHeader string
	flagPageFooter string
	flagFitToWidth bool
	flagNotes      []string
	flagWrapCols   []string
	flagFreezeCols int
)

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a table as a styled spreadsheet",
	Long: `Export loads a table's data and renders it as one styled workbook in a
timestamped directory under the export directory. Column number formats come
from the output_format column metadata.

Example:
  neubase export members
  neubase export pay2025 --color "#CCDDEE" --notes "Draft figures" --fit`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagColor, "color", "", "header band color (default: random pastel)")
	exportCmd.Flags().StringVar(&flagPageHeader, "page-header", "", "printed page header")
	exportCmd.Flags().StringVar(&flagPageFooter, "page-footer", "", "printed page footer")
	exportCmd.Flags().BoolVar(&flagFitToWidth, "fit", false, "fit printed output to one page wide")
	exportCmd.Flags().StringArrayVar(&flagNotes, "notes", nil, "free-text notes appended below the data")
	exportCmd.Flags().StringArrayVar(&flagWrapCols, "wrap", nil, "db_name columns to text-wrap")
	exportCmd.Flags().IntVar(&flagFreezeCols, "freeze-cols", -1, "frozen column count (default: index columns)")
}

func runExport(cmd *cobra.Command, args []string) error {
	name := args[0]

	cat, err := openCatalog()
	if err != nil {
		return err
	}

	t, err := table.New(name, cat, nil, "")
	if err != nil {
		return fmt.Errorf("construct table: %w", err)
	}
	if t.Columns == nil || t.Columns.Len() == 0 {
		return fmt.Errorf("%s: %w", name, types.ErrTableNotFound)
	}
	if err := t.LoadData(); err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	if outputDir, err := resolveOutputDir(); err == nil {
		if _, ok := t.Meta.String(table.MetaKeyOutputDir); !ok {
			t.Meta[table.MetaKeyOutputDir] = outputDir
		}
	}

	opts := table.ExportOptions{
		HeaderColor: flagColor,
		PageHeader:  flagPageHeader,
		PageFooter:  flagPageFooter,
		FitToWidth:  flagFitToWidth,
		Notes:       flagNotes,
		WrapCols:    flagWrapCols,
	}
	if flagFreezeCols >= 0 {
		opts.FreezeCols = &flagFreezeCols
	}

	path, err := t.ExportExcel(opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
