package doctor

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Package-level variables to allow test overrides.
var (
	isTerminalFunc = term.IsTerminal
	getSizeFunc    = term.GetSize
	getenvFunc     = os.Getenv
)

// TerminalCheck verifies a dialog can be shown in the current terminal.
type TerminalCheck struct {
	width, height int
}

// NewTerminalCheck creates a terminal check for a canvas of the given size.
func NewTerminalCheck(width, height int) *TerminalCheck {
	return &TerminalCheck{width: width, height: height}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	stdout := int(os.Stdout.Fd())
	if isTerminalFunc(stdout) {
		result.add("stdout", StatusPass, "interactive")
	} else {
		result.add("stdout", StatusFail, "not a terminal; confirm and hold need one")
	}

	if isTerminalFunc(int(os.Stdin.Fd())) {
		result.add("stdin", StatusPass, "interactive")
	} else {
		result.add("stdin", StatusWarn, "not a terminal; input may not reach the dialog")
	}

	switch t := getenvFunc("TERM"); t {
	case "", "dumb":
		result.add("TERM", StatusWarn, fmt.Sprintf("%q may not report mouse events", t))
	default:
		result.add("TERM", StatusPass, t)
	}

	// title, border and footer around the canvas
	needW, needH := c.width+2, c.height+4
	if w, h, err := getSizeFunc(stdout); err == nil {
		if w < needW || h < needH {
			result.add("size", StatusWarn, fmt.Sprintf("%dx%d is smaller than the %dx%d dialog", w, h, needW, needH))
		} else {
			result.add("size", StatusPass, fmt.Sprintf("%dx%d", w, h))
		}
	}

	return result
}
