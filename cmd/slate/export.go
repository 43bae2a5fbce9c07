package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kverlander/slate/internal/boards"
	"github.com/kverlander/slate/internal/schema"
	"github.com/kverlander/slate/internal/ui"
)

var exportBoard string

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export a board to a standalone file",
	Long: `Export one board to a self-contained file outside the data directory.

The format follows the extension: .yaml/.yml writes YAML, anything else
writes the canonical JSON document. With no --board flag the default board
is exported.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		var idArgs []string
		if exportBoard != "" {
			idArgs = []string{exportBoard}
		}
		id, err := resolveBoardID(st, idArgs)
		if err != nil {
			fail("%v", err)
		}

		doc, err := st.Load(id)
		if err != nil {
			fail("%v", err)
		}
		if err := boards.Export(doc, args[0]); err != nil {
			fail("%v", err)
		}
		fmt.Printf("%s Exported %q to %s\n", ui.RenderPass("✓"), doc.Title, args[0])
	},
}

var importAsNew bool

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a board from an exported file",
	Long: `Import a previously exported board file into the data directory.

The imported document gets a fresh updated-at timestamp and is registered in
the index. With --as-new a fresh board id is allocated so an existing board
with the same id is not overwritten.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		doc, err := boards.Import(args[0])
		if err != nil {
			fail("%v", err)
		}
		if doc.ID.IsZero() || importAsNew {
			doc.ID = schema.NewBoardID()
		}
		if err := st.Save(doc); err != nil {
			fail("%v", err)
		}
		fmt.Printf("%s Imported %q as board %s\n", ui.RenderPass("✓"), doc.Title, doc.ID)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportBoard, "board", "", "board id to export (default: active board)")
	importCmd.Flags().BoolVar(&importAsNew, "as-new", false, "allocate a new board id on import")
}
