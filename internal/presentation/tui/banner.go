package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal. Rendered output
// is only used when it is.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintAnswer writes the solution step count. On a colour terminal the
// count is highlighted; elsewhere it is the bare number so scripts can read it.
func PrintAnswer(w io.Writer, steps uint64, styled bool) {
	if !styled {
		fmt.Fprintln(w, steps)
		return
	}
	p := termenv.ColorProfile()
	label := termenv.String("steps ").Foreground(p.Color("#a78bfa"))
	value := termenv.String(fmt.Sprint(steps)).Foreground(p.Color("#f472b6")).Bold()
	fmt.Fprintf(w, "%s%s\n", label, value)
}
