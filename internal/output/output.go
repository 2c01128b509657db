// Package output handles formatting CLI output as table, compact lines or JSON.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Format represents an output format.
type Format int

const (
	// FormatTable outputs a human-readable table.
	FormatTable Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatCompact outputs one line per task.
	FormatCompact
)

// EnvOutput selects the default format when no flag is given.
const EnvOutput = "TASKLIST_OUTPUT"

// isTerminalFn reports whether stdout is a terminal. Replaced in tests.
var isTerminalFn = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// Detect returns the format chosen by flags, then TASKLIST_OUTPUT. Without
// either, a terminal gets a table and a pipe gets JSON.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case tableFlag:
		return FormatTable
	case compactFlag:
		return FormatCompact
	}

	switch os.Getenv(EnvOutput) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	case "compact", "oneline":
		return FormatCompact
	}

	if isTerminalFn() {
		return FormatTable
	}
	return FormatJSON
}

// Messagef prints a formatted line to w.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
