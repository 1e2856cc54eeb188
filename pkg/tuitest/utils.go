// Package tuitest builds bubbletea messages for driving dialog models in
// tests.
package tuitest

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI drops escape codes, trailing blanks on each line and trailing
// empty lines so rendered views can be compared as plain text.
func StripANSI(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}}
}

// KeyCtrlC creates a ctrl+c key press message.
func KeyCtrlC() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyCtrlC}
}

// MousePress creates a left button press at the given cell.
func MousePress(x, y int) tea.Msg {
	return mouse(x, y, tea.MouseButtonLeft, tea.MouseActionPress)
}

// MouseMotion creates a drag with the left button held.
func MouseMotion(x, y int) tea.Msg {
	return mouse(x, y, tea.MouseButtonLeft, tea.MouseActionMotion)
}

// MouseRelease creates a left button release at the given cell.
func MouseRelease(x, y int) tea.Msg {
	return mouse(x, y, tea.MouseButtonNone, tea.MouseActionRelease)
}

// Tap is a press and release on the same cell.
func Tap(x, y int) []tea.Msg {
	return []tea.Msg{MousePress(x, y), MouseRelease(x, y)}
}

// Drag presses at (x0, y0), moves to (x1, y1) and releases there.
func Drag(x0, y0, x1, y1 int) []tea.Msg {
	return []tea.Msg{MousePress(x0, y0), MouseMotion(x1, y1), MouseRelease(x1, y1)}
}

// Send feeds msgs to m in order and returns the command from the last one.
func Send(m tea.Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

func mouse(x, y int, button tea.MouseButton, action tea.MouseAction) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Button: button, Action: action}
}
