// Package ui renders operator-facing output with optional color.
package ui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

var (
	// Check if output supports colors
	supportsColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Color functions
	ColorSuccess = colorFunc(ansi.Green)
	ColorError   = colorFunc(ansi.Red)
	ColorWarning = colorFunc(ansi.Yellow)
	ColorInfo    = colorFunc(ansi.Cyan)
	ColorBold    = colorFunc("default+b")
	ColorDim     = colorFunc("default+h")
)

// colorFunc returns a function that colors text if supported
func colorFunc(color string) func(string) string {
	return func(text string) string {
		if supportsColor {
			return ansi.Color(text, color)
		}
		return text
	}
}

// UI writes formatted operator messages, honoring quiet and verbose modes.
type UI struct {
	Verbose bool
	Quiet   bool
}

func New(verbose, quiet bool) *UI {
	return &UI{Verbose: verbose, Quiet: quiet}
}

// Infof prints an informational message unless quiet
func (u *UI) Infof(format string, args ...interface{}) {
	if !u.Quiet {
		fmt.Printf("%s %s\n", ColorInfo("•"), fmt.Sprintf(format, args...))
	}
}

// Successf prints a success message unless quiet
func (u *UI) Successf(format string, args ...interface{}) {
	if !u.Quiet {
		fmt.Printf("%s %s\n", ColorSuccess("✓"), fmt.Sprintf(format, args...))
	}
}

// Warningf prints a warning message unless quiet
func (u *UI) Warningf(format string, args ...interface{}) {
	if !u.Quiet {
		fmt.Printf("%s %s\n", ColorWarning("⚠"), fmt.Sprintf(format, args...))
	}
}

// Errorf prints an error message; errors ignore quiet mode
func (u *UI) Errorf(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", ColorError("✗"), fmt.Sprintf(format, args...))
}

// Verbosef prints only in verbose mode
func (u *UI) Verbosef(format string, args ...interface{}) {
	if u.Verbose && !u.Quiet {
		fmt.Printf("%s %s\n", ColorDim("·"), fmt.Sprintf(format, args...))
	}
}

// Printf prints raw formatted output unless quiet
func (u *UI) Printf(format string, args ...interface{}) {
	if !u.Quiet {
		fmt.Printf(format, args...)
	}
}
