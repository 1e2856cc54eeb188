// Package display paints dialogs onto a fixed-size terminal cell grid.
package display

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/touchgate/internal/content"
	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/styles"
)

// segment is a pre-rendered span of one canvas row.
type segment struct {
	x, w int
	text string
}

// Canvas is a paint.Painter over a width x height grid of cells. Widgets
// overwrite the cells of their area on every paint, so repainting without
// clearing is safe. Body text fills the rows above the progress strip.
type Canvas struct {
	width    int
	height   int
	bodyRows int

	markdown *content.Markdown
	body     []string
	rows     map[int][]segment
}

var _ paint.Painter = (*Canvas)(nil)

// Option configures a Canvas.
type Option func(*Canvas)

// WithMarkdown renders body text through glamour.
func WithMarkdown(enabled bool) Option {
	return func(c *Canvas) {
		if enabled {
			c.markdown = content.NewMarkdown(c.width)
		} else {
			c.markdown = nil
		}
	}
}

// NewCanvas creates a blank canvas sized to layout.
func NewCanvas(layout dialog.Layout, opts ...Option) *Canvas {
	c := &Canvas{
		width:    layout.Width,
		height:   layout.Height,
		bodyRows: max(layout.Height-layout.BarHeight-layout.ProgressHeight, 0),
		rows:     make(map[int][]segment),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Clear blanks the canvas.
func (c *Canvas) Clear() {
	c.body = nil
	c.rows = make(map[int][]segment)
}

// Button draws label centered in area using the resolved style.
func (c *Canvas) Button(area geom.Rect, label paint.Label, style paint.StyleID) {
	if area.Empty() {
		return
	}

	text := labelText(label)
	text = ansi.Truncate(text, area.W, "…")

	block := styles.Resolve(style).
		Width(area.W).
		Height(area.H).
		MaxHeight(area.H).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(text)

	c.place(area, strings.Split(block, "\n"))
}

// Progress draws a bar filled to fraction across area.
func (c *Canvas) Progress(area geom.Rect, fraction float64, style paint.StyleID) {
	if area.Empty() {
		return
	}

	bar := progress.New(
		progress.WithSolidFill(colorOf(styles.Resolve(style))),
		progress.WithoutPercentage(),
		progress.WithWidth(area.W),
	)
	bar.EmptyColor = string(styles.CurrentPalette.Dim)

	line := bar.ViewAs(min(max(fraction, 0), 1))
	lines := make([]string, area.H)
	for i := range lines {
		lines[i] = line
	}
	c.place(area, lines)
}

// Body replaces the body text.
func (c *Canvas) Body(text string) {
	var lines []string
	if c.markdown != nil {
		lines = c.markdown.Lines(text)
	} else if text != "" {
		lines = content.Plain(text, c.width)
	}

	c.body = c.body[:0]
	for _, line := range lines {
		c.body = append(c.body, styles.BodyStyle.Render(line))
	}
}

// String renders the canvas. Every row is exactly Width cells wide.
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := range c.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(c.row(y))
	}
	return sb.String()
}

func (c *Canvas) row(y int) string {
	if segs := c.rows[y]; len(segs) > 0 {
		var sb strings.Builder
		x := 0
		for _, s := range segs {
			if s.x > x {
				sb.WriteString(strings.Repeat(" ", s.x-x))
			}
			sb.WriteString(s.text)
			x = s.x + s.w
		}
		return fit(sb.String(), c.width)
	}
	if y < c.bodyRows && y < len(c.body) {
		return fit(c.body[y], c.width)
	}
	return strings.Repeat(" ", c.width)
}

// place writes one rendered line per row of area, replacing any segment the
// area overlaps.
func (c *Canvas) place(area geom.Rect, lines []string) {
	for i := range area.H {
		y := area.Y + i
		if y < 0 || y >= c.height {
			continue
		}
		line := ""
		if i < len(lines) {
			line = lines[i]
		}

		segs := slices.DeleteFunc(c.rows[y], func(s segment) bool {
			return s.x < area.X+area.W && area.X < s.x+s.w
		})
		segs = append(segs, segment{x: area.X, w: area.W, text: fit(line, area.W)})
		slices.SortFunc(segs, func(a, b segment) int { return a.x - b.x })
		c.rows[y] = segs
	}
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if w := ansi.StringWidth(s); w > width {
		return ansi.Truncate(s, width, "")
	} else if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func labelText(label paint.Label) string {
	icon := styles.Icon(label.Icon)
	switch {
	case icon == "":
		return label.Text
	case label.Text == "":
		return icon
	}
	return icon + " " + label.Text
}

func colorOf(s lipgloss.Style) string {
	if c, ok := s.GetForeground().(lipgloss.Color); ok {
		return string(c)
	}
	return string(styles.CurrentPalette.Accent)
}
