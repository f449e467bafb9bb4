// Delete command removes a table, or rows from it.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neudata/neubase/internal/table"
)

var flagRows string

var deleteCmd = &cobra.Command{
	Use:   "delete <table>",
	Short: "Delete a table, or rows matching a predicate",
	Long: `Delete drops the named data table and purges its rows from both system
tables. With --rows, only matching rows are deleted and the table and its
metadata stay in place; the predicate 'all' deletes every row.

Example:
  neubase delete members
  neubase delete members --rows "branch = 'north'"
  neubase delete members --rows all`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&flagRows, "rows", "", "SQL predicate selecting rows to delete ('all' for every row)")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	cat, err := openCatalog()
	if err != nil {
		return err
	}

	t, err := table.New(name, cat, nil, "")
	if err != nil {
		return fmt.Errorf("construct table: %w", err)
	}

	if flagRows != "" {
		if err := t.DeleteRows(flagRows); err != nil {
			return fmt.Errorf("delete rows: %w", err)
		}
		fmt.Printf("Deleted rows from %s where %s\n", name, flagRows)
		return nil
	}

	if err := t.Delete(); err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	fmt.Printf("Deleted %s\n", name)
	return nil
}
