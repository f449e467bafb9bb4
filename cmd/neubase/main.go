// Package main provides the neubase CLI: spreadsheet-shaped tabular data
// imported into a SQLite store with column-level metadata, and re-exported
// as formatted reports.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
