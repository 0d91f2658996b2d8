// Package output defines the styling for undot's terminal output.
// Styles use semantic names with adaptive colors so they read well on
// light and dark themes; color is dropped entirely when stderr is not
// a terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	// Success marks completed operations
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "35"}).
		Bold(true)

	// Error marks fatal diagnostics
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"}).
		Bold(true)

	// Warning marks recoverable conditions
	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})

	// Subject marks program identities and file names inside messages
	Subject = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"}).
		Bold(true)

	// Dim marks secondary detail
	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "245"})
)

func init() {
	// User-facing messages go to stderr; the child program owns stdout.
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		lipgloss.DefaultRenderer().SetColorProfile(termenv.Ascii)
	}
}

// Errorf writes a styled diagnostic line to w
func Errorf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, Error.Render("error:")+" "+fmt.Sprintf(format, args...))
}

// Successf writes a styled success line to w
func Successf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, Success.Render(fmt.Sprintf(format, args...)))
}

// Warnf writes a styled warning line to w
func Warnf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, Warning.Render(fmt.Sprintf(format, args...)))
}
