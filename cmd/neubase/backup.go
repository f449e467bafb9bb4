// Backup command archives the workspace into a tar.xz file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neudata/neubase/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup [workspace]",
	Short: "Archive the workspace into archive/<name>_<timestamp>.tar.xz",
	Long: `Backup packs the workspace directory (default: the current directory)
into a timestamped tar.xz archive under its archive/ subdirectory. The
archive directory itself is excluded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	workspace := "."
	if len(args) == 1 {
		workspace = args[0]
	}
	if _, err := os.Stat(workspace); err != nil {
		return fmt.Errorf("workspace: %w", err)
	}

	path, err := backup.Archive(workspace, "neubase")
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
