// List command enumerates data tables in the store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagListViews bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List data tables in the store",
	Long: `List enumerates the store's data tables. The two system tables are
excluded. With --views, views are listed as well.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListViews, "views", false, "list views as well")
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}

	tables, err := cat.ListTables()
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	for _, name := range tables {
		fmt.Println(name)
	}
	if flagListViews {
		for _, name := range cat.ViewList {
			fmt.Printf("%s (view)\n", name)
		}
	}
	return nil
}
