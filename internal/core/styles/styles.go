// Package styles provides the lipgloss styles behind the opaque style IDs
// handed to widgets.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/touchgate/internal/core/paint"
)

// Style IDs understood by the terminal painter.
const (
	ButtonConfirm       paint.StyleID = "btn-confirm"
	ButtonConfirmActive paint.StyleID = "btn-confirm-active"
	ButtonCancel        paint.StyleID = "btn-cancel"
	ButtonCancelActive  paint.StyleID = "btn-cancel-active"
	ProgressIdle        paint.StyleID = "progress"
	ProgressActive      paint.StyleID = "progress-active"
)

// Default style pairs for the dialog widgets.
var (
	ConfirmPair  = paint.StylePair{Normal: ButtonConfirm, Active: ButtonConfirmActive}
	CancelPair   = paint.StylePair{Normal: ButtonCancel, Active: ButtonCancelActive}
	ProgressPair = paint.StylePair{Normal: ProgressIdle, Active: ProgressActive}
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	BodyStyle   lipgloss.Style
	CanvasStyle lipgloss.Style
	ResultStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	ErrorStyle  lipgloss.Style
)

// registry maps style IDs to the styles built for the active theme.
var registry map[paint.StyleID]lipgloss.Style

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	BodyStyle = lipgloss.NewStyle().
		Foreground(p.Text)
	CanvasStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent)
	ResultStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Dim)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Danger)

	registry = map[paint.StyleID]lipgloss.Style{
		ButtonConfirm: lipgloss.NewStyle().
			Background(p.Panel).
			Foreground(p.Confirm),
		ButtonConfirmActive: lipgloss.NewStyle().
			Background(p.Confirm).
			Foreground(p.Base).
			Bold(true),
		ButtonCancel: lipgloss.NewStyle().
			Background(p.Panel).
			Foreground(p.Danger),
		ButtonCancelActive: lipgloss.NewStyle().
			Background(p.Danger).
			Foreground(p.Base).
			Bold(true),
		ProgressIdle: lipgloss.NewStyle().
			Foreground(p.Dim),
		ProgressActive: lipgloss.NewStyle().
			Foreground(p.Confirm),
	}
}

// Apply activates the named theme. It reports false for an unknown name and
// leaves the current theme in place.
func Apply(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		return false
	}
	SetTheme(p)
	return true
}

// Resolve returns the style for id. Unknown IDs resolve to the body style.
func Resolve(id paint.StyleID) lipgloss.Style {
	if s, ok := registry[id]; ok {
		return s
	}
	return BodyStyle
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
