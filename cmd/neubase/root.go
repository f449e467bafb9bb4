// Root command for the neubase CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/neudata/neubase/internal/paths"
	"github.com/neudata/neubase/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDBFile    string
	flagOutputDir string
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDBFile    string
	configOutputDir string
)

var rootCmd = &cobra.Command{
	Use:     "neubase",
	Short:   "Neubase maps spreadsheet data onto a SQLite store with column metadata",
	Version: types.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDBFile = cfg.GetString(cfgKeyDBFile)
		configOutputDir = cfg.GetString(cfgKeyOutputDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDBFile, "db", "", "SQLite store file (default: $(CWD)/.neubase-db/neubase.db)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "export directory (default: $(CWD)/output)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(backupCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > NEUBASE_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveOutputDir returns the export directory following the precedence:
// --output-dir flag > config.yaml output_dir > NEUBASE_OUTPUT_DIR env >
// $(CWD)/output.
func resolveOutputDir() (string, error) {
	return paths.ResolveOutputDir(flagOutputDir, configOutputDir)
}
