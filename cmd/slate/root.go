package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kverlander/slate/internal/boards"
	"github.com/kverlander/slate/internal/config"
	"github.com/kverlander/slate/internal/ui"
)

var (
	flagDataDir string
	flagNoColor bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "Manage slate boards from the command line",
	Long: `slate is the persistence tool for slate workspaces.

It operates on a data directory (default: the nearest .slate directory, or
~/.slate) containing the boards index, one JSON document per board, shared
settings, and stored assets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if flagNoColor || cfg.NoColor {
			ui.DisableColor()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: auto-discovered)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(watchCmd)
}

// openStore resolves the data directory, wires logging, and returns the
// facade.
func openStore() *boards.Store {
	dataDir := boards.FindDataDir(firstNonEmpty(flagDataDir, cfg.DataDir))
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create data directory %s: %v\n", dataDir, err)
		os.Exit(1)
	}
	config.SetupLogging(cfg, dataDir)
	return boards.Open(dataDir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// fail prints an error and exits, in the style used by every command.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
