package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kverlander/slate/internal/boards"
	"github.com/kverlander/slate/internal/schema"
	"github.com/kverlander/slate/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all boards",
	Long: `List every registered board with its id and last-updated time.

The active board is marked with an asterisk. Boards whose document file
exists but which are missing from the index (e.g. after an interrupted save)
do not appear; opening them once repairs the index.`,
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()
		metas, err := st.List()
		if err != nil {
			fail("%v", err)
		}
		active, err := st.Active()
		if err != nil {
			fail("%v", err)
		}
		fmt.Print(ui.RenderBoardList(metas, active))
	},
}

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new board and make it active",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := ""
		if len(args) > 0 {
			title = args[0]
		}

		st := openStore()
		doc, err := st.CreateBoard(title)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("%s Created board %q (%s)\n", ui.RenderPass("✓"), doc.Title, doc.ID)
	},
}

var useCmd = &cobra.Command{
	Use:   "use <board-id>",
	Short: "Set the active board",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()
		id := schema.BoardID(args[0])
		if err := st.SetActive(id); err != nil {
			fail("%v", err)
		}
		fmt.Printf("%s Active board is now %s\n", ui.RenderPass("✓"), id)
	},
}

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <board-id>",
	Short: "Remove a board from the index",
	Long: `Remove a board from the index.

The board's document file and its assets are retained on disk; only the
registry entry is removed. If the deleted board was active, the first
remaining board becomes active (or a fresh board is created when none
remain).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()
		id := schema.BoardID(args[0])

		if !deleteForce {
			meta := args[0]
			if metas, err := st.List(); err == nil {
				for _, m := range metas {
					if m.ID == id {
						meta = fmt.Sprintf("%q (%s)", m.Title, m.ID)
					}
				}
			}
			confirmed := false
			prompt := huh.NewConfirm().
				Title(fmt.Sprintf("Delete board %s?", meta)).
				Description("The document file stays on disk but the board disappears from listings.").
				Value(&confirmed)
			if err := prompt.Run(); err != nil {
				fail("%v", err)
			}
			if !confirmed {
				fmt.Fprintln(os.Stderr, "Aborted.")
				return
			}
		}

		if err := st.DeleteBoard(id); err != nil {
			fail("%v", err)
		}
		fmt.Printf("%s Deleted board %s\n", ui.RenderPass("✓"), id)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [board-id]",
	Short: "Summarize one board",
	Long: `Show a summary of one board: entry, memory, reminder, note and event
counts. With no argument the default board is shown.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()
		id, err := resolveBoardID(st, args)
		if err != nil {
			fail("%v", err)
		}

		doc, err := st.Load(id)
		if err != nil {
			fail("%v", err)
		}

		noteCount := 0
		for _, area := range doc.Notes.Areas {
			for _, stack := range area.Stacks {
				for _, nb := range stack.Notebooks {
					for _, sec := range nb.Sections {
						noteCount += len(sec.Notes)
					}
				}
			}
		}

		fmt.Printf("%s %s\n", ui.RenderAccent("▣"), doc.Title)
		fmt.Printf("   ID:        %s\n", doc.ID)
		fmt.Printf("   Updated:   %s\n", ui.RelativeTime(doc.UpdatedAt))
		fmt.Printf("   Entries:   %d\n", len(doc.Entries))
		fmt.Printf("   Memories:  %d\n", len(doc.Memories))
		fmt.Printf("   Reminders: %d\n", len(doc.Reminders))
		fmt.Printf("   Notes:     %d\n", noteCount)
		fmt.Printf("   Events:    %d\n", len(doc.Calendar.Events))
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
}

// resolveBoardID returns the id named by args, or the default board.
func resolveBoardID(st *boards.Store, args []string) (schema.BoardID, error) {
	if len(args) > 0 {
		return schema.BoardID(args[0]), nil
	}
	return st.DefaultBoardID()
}
