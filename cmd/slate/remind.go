package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/kverlander/slate/internal/schema"
	"github.com/kverlander/slate/internal/ui"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage reminders on a board",
}

var (
	remindBoard string
	remindAt    string
)

var remindAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a reminder",
	Long: `Add a reminder to a board.

The --at flag accepts natural language ("tomorrow at 5pm", "next friday") as
well as RFC 3339 timestamps. Without --at the reminder is undated.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		var idArgs []string
		if remindBoard != "" {
			idArgs = []string{remindBoard}
		}
		id, err := resolveBoardID(st, idArgs)
		if err != nil {
			fail("%v", err)
		}
		doc, err := st.LoadOrCreate(id)
		if err != nil {
			fail("%v", err)
		}

		reminder := schema.Reminder{
			ID:        uuid.NewString(),
			Text:      args[0],
			CreatedAt: time.Now().UTC(),
		}
		if remindAt != "" {
			due, err := parseWhen(remindAt)
			if err != nil {
				fail("%v", err)
			}
			reminder.DueAt = &due
		}

		doc.Reminders = append(doc.Reminders, reminder)
		if err := st.Save(doc); err != nil {
			fail("%v", err)
		}

		if reminder.DueAt != nil {
			fmt.Printf("%s Reminder set for %s\n", ui.RenderPass("✓"),
				reminder.DueAt.Format("Mon Jan 2 15:04"))
		} else {
			fmt.Printf("%s Reminder added\n", ui.RenderPass("✓"))
		}
	},
}

var remindListCmd = &cobra.Command{
	Use:   "list [board-id]",
	Short: "List reminders on a board",
	Args:  cobra.MaximumNArgs(1),
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

		if len(doc.Reminders) == 0 {
			fmt.Println(ui.RenderDim("no reminders"))
			return
		}
		for _, r := range doc.Reminders {
			marker := " "
			if r.Done {
				marker = ui.RenderPass("✓")
			}
			due := ui.RenderDim("undated")
			if r.DueAt != nil {
				due = r.DueAt.Format("Mon Jan 2 15:04")
				if r.DueAt.Before(time.Now()) && !r.Done {
					due = ui.RenderWarn(due)
				}
			}
			fmt.Printf("%s %s  %s\n", marker, r.Text, due)
		}
	},
}

// parseWhen parses a due time, trying RFC 3339 first and falling back to
// natural-language parsing.
func parseWhen(input string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(input, time.Now())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", input, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("could not understand time %q", input)
	}
	return result.Time, nil
}

func init() {
	remindAddCmd.Flags().StringVar(&remindBoard, "board", "", "board id (default: active board)")
	remindAddCmd.Flags().StringVar(&remindAt, "at", "", "due time (natural language or RFC 3339)")
	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindListCmd)
}
