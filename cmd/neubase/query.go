// Query command runs an ad-hoc read query against the store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagIndexCols []string

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a read query and print the result",
	Long: `Query executes an arbitrary read query against the store and prints the
tabular result. The SQL is passed through unvalidated.

Example:
  neubase query "SELECT * FROM members WHERE branch = 'north'"
  neubase query "SELECT key, value FROM __meta__" --index key`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringArrayVar(&flagIndexCols, "index", nil, "columns to key the result by")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}

	result, err := cat.Query(args[0], flagIndexCols...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	printFrame(result)
	return nil
}
