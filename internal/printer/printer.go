// Package printer writes styled status lines for CLI commands.
package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/touchgate/internal/core/styles"
)

// Printer writes status lines to a writer.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) line(prefix string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = style.Render(prefix) + " " + msg
	}
	_, _ = fmt.Fprintln(p.w, msg)
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", lipgloss.Style{}, format, args...)
}

// Successf prints a line with a success marker.
func (p *Printer) Successf(format string, args ...any) {
	p.line("✔", lipgloss.NewStyle().Foreground(styles.CurrentPalette.Confirm), format, args...)
}

// Infof prints a line with an info marker.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", lipgloss.NewStyle().Foreground(styles.CurrentPalette.Accent), format, args...)
}

// Warnf prints a line with a warning marker.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", lipgloss.NewStyle().Foreground(styles.CurrentPalette.Caution), format, args...)
}

// Errorf prints a line with an error marker.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✘", styles.ErrorStyle, format, args...)
}
