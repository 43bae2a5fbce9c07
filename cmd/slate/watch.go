package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kverlander/slate/internal/ui"
	"github.com/kverlander/slate/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the data directory for changes",
	Long: `Watch the data directory and print board, asset and index changes as
they happen. Useful when an external tool (e.g. a sync client) modifies the
directory. Stop with Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		w, err := watcher.New()
		if err != nil {
			fail("%v", err)
		}
		if err := w.Start(st.DataDir()); err != nil {
			fail("%v", err)
		}
		defer w.Stop()

		fmt.Printf("%s Watching %s\n", ui.RenderAccent("👁"), st.DataDir())

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		for {
			select {
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				fmt.Printf("%s %s %s\n", ui.RenderAccent(ev.Op.String()), ev.Kind, ev.Path)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "%s watch error: %v\n", ui.RenderWarn("⚠"), err)
			case <-sigs:
				fmt.Println()
				return
			}
		}
	},
}
