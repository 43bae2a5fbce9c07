package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kverlander/slate/internal/boards"
	"github.com/kverlander/slate/internal/migrate"
	"github.com/kverlander/slate/internal/ui"
)

var migrateBackup bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert a legacy single-board data directory",
	Long: `Convert a legacy single-board data directory to the multi-board layout.

This runs automatically the first time any command touches a legacy data
directory; the explicit command exists for scripted upgrades and for the
--backup option.

Steps:
  1. Decode the legacy workspace.json
  2. Write it as boards/{id}.json
  3. Write index.json naming it the sole, active board

The legacy file is left in place and never read again.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Resolve the directory without opening the facade, which would
		// itself trigger migration before we can pass options.
		dataDir := boards.FindDataDir(firstNonEmpty(flagDataDir, cfg.DataDir))

		if !migrate.Needed(dataDir) {
			fmt.Printf("%s Nothing to migrate in %s\n", ui.RenderAccent("ℹ"), dataDir)
			return
		}

		result, err := migrate.Run(migrate.Options{
			DataDir: dataDir,
			Backup:  migrateBackup,
		})
		if err != nil {
			fail("%v", err)
		}

		fmt.Printf("%s Migrated legacy workspace to board %s\n", ui.RenderPass("✓"), result.BoardID)
		if result.BackupCreated != "" {
			fmt.Printf("   Backup: %s\n", result.BackupCreated)
		}
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateBackup, "backup", false, "keep a timestamped copy of the legacy file")
}
