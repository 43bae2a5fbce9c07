// Command slate manages a slate data directory: the boards index, per-board
// documents, assets and shared settings used by the desktop app.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
