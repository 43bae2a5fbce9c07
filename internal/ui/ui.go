// Package ui provides styled terminal output helpers for the slate CLI.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kverlander/slate/internal/schema"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)

	colorEnabled = termenv.EnvColorProfile() != termenv.Ascii && !termenv.EnvNoColor()
)

// DisableColor turns off all styling (used for --no-color and non-TTY
// output).
func DisableColor() {
	colorEnabled = false
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// RenderPass styles a success marker.
func RenderPass(s string) string { return render(passStyle, s) }

// RenderWarn styles a warning marker.
func RenderWarn(s string) string { return render(warnStyle, s) }

// RenderErr styles an error marker.
func RenderErr(s string) string { return render(errStyle, s) }

// RenderAccent styles an informational marker.
func RenderAccent(s string) string { return render(accentStyle, s) }

// RenderDim styles secondary text.
func RenderDim(s string) string { return render(dimStyle, s) }

// RenderBoardList formats the board registry for `slate list`. The active
// board is marked with an asterisk.
func RenderBoardList(boards []schema.BoardMeta, active schema.BoardID) string {
	if len(boards) == 0 {
		return RenderDim("no boards") + "\n"
	}

	var b strings.Builder
	for _, meta := range boards {
		marker := " "
		title := meta.Title
		if meta.ID == active {
			marker = RenderAccent("*")
			title = render(titleStyle, title)
		}
		fmt.Fprintf(&b, "%s %s  %s  %s\n",
			marker,
			title,
			RenderDim(string(meta.ID)),
			RenderDim("updated "+RelativeTime(meta.UpdatedAt)),
		)
	}
	return b.String()
}

// RelativeTime renders a timestamp as a coarse "2h ago" style string.
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
