// Columns command shows the stored column names of a table.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "List a table's column names from the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumns,
}

func runColumns(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}

	cols, err := cat.ListColumns(args[0])
	if err != nil {
		return fmt.Errorf("list columns: %w", err)
	}
	for _, name := range cols {
		fmt.Println(name)
	}
	return nil
}
