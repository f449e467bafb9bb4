// Version command prints the release version.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neudata/neubase/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("neubase v%s\n", types.Version)
	},
}
