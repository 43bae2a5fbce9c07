package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kverlander/slate/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and modify shared settings",
	Long: `Inspect and modify the shared settings that seed newly created boards.

Keys: api-key, user-name, notes.`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print settings (api key redacted)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()
		settings, err := st.Settings()
		if err != nil {
			fail("%v", err)
		}

		redactedKey := "(unset)"
		if settings.APIKey != "" {
			redactedKey = "********"
		}

		if len(args) == 0 {
			fmt.Printf("api-key:   %s\n", redactedKey)
			fmt.Printf("user-name: %s\n", settings.UserName)
			fmt.Printf("notes:     %s\n", summarize(settings.Notes))
			fmt.Printf("memories:  %d\n", len(settings.Memories))
			return
		}

		switch args[0] {
		case "api-key":
			fmt.Println(redactedKey)
		case "user-name":
			fmt.Println(settings.UserName)
		case "notes":
			fmt.Println(settings.Notes)
		default:
			fail("unknown settings key %q", args[0])
		}
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a settings value",
	Long: `Set a settings value.

Setting api-key with no value prompts for it without echoing.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()
		settings, err := st.Settings()
		if err != nil {
			fail("%v", err)
		}

		key := args[0]
		var value string
		if len(args) == 2 {
			value = args[1]
		} else if key == "api-key" {
			fmt.Fprint(os.Stderr, "API key: ")
			secret, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				fail("failed to read API key: %v", err)
			}
			value = strings.TrimSpace(string(secret))
		} else {
			fail("a value is required for key %q", key)
		}

		switch key {
		case "api-key":
			settings.APIKey = value
		case "user-name":
			settings.UserName = value
		case "notes":
			settings.Notes = value
		default:
			fail("unknown settings key %q", key)
		}

		if err := st.SaveSettings(settings); err != nil {
			fail("%v", err)
		}
		fmt.Printf("%s Updated %s\n", ui.RenderPass("✓"), key)
	},
}

// summarize shortens multi-line text for one-line display.
func summarize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 60 {
		return s[:57] + "..."
	}
	if s == "" {
		return "(empty)"
	}
	return s
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
