package styles

import (
	"slices"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette names the colors a dialog needs by the role they play.
type Palette struct {
	Accent  lipgloss.Color // titles, canvas border, headings
	Link    lipgloss.Color // links and inline code in bodies
	Text    lipgloss.Color // body text
	Dim     lipgloss.Color // help, idle progress, quotes
	Base    lipgloss.Color // text drawn on an active button
	Panel   lipgloss.Color // idle button fill
	Confirm lipgloss.Color
	Caution lipgloss.Color
	Danger  lipgloss.Color // cancel button and errors
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Accent: "#7aa2f7", Link: "#7dcfff", Text: "#c0caf5",
		Dim: "#565f89", Base: "#1a1b26", Panel: "#3b4261",
		Confirm: "#9ece6a", Caution: "#e0af68", Danger: "#f7768e",
	},
	"gruvbox": {
		Accent: "#83a598", Link: "#8ec07c", Text: "#ebdbb2",
		Dim: "#665c54", Base: "#282828", Panel: "#3c3836",
		Confirm: "#b8bb26", Caution: "#fabd2f", Danger: "#fb4934",
	},
	"catppuccin": {
		Accent: "#89b4fa", Link: "#94e2d5", Text: "#cdd6f4",
		Dim: "#6c7086", Base: "#1e1e2e", Panel: "#313244",
		Confirm: "#a6e3a1", Caution: "#f9e2af", Danger: "#f38ba8",
	},
	"kanagawa": {
		Accent: "#7E9CD8", Link: "#7FB4CA", Text: "#DCD7BA",
		Dim: "#727169", Base: "#1F1F28", Panel: "#2A2A37",
		Confirm: "#76946A", Caution: "#DCA561", Danger: "#C34043",
	},
	"onedark": {
		Accent: "#61afef", Link: "#56b6c2", Text: "#abb2bf",
		Dim: "#5c6370", Base: "#282c34", Panel: "#3e4452",
		Confirm: "#98c379", Caution: "#e5c07b", Danger: "#e06c75",
	},
	// Pure colors for small panels viewed at arm's length or in sunlight.
	"high-contrast": {
		Accent: "#ffffff", Link: "#00ffff", Text: "#ffffff",
		Dim: "#a0a0a0", Base: "#000000", Panel: "#303030",
		Confirm: "#00ff00", Caution: "#ffff00", Danger: "#ff0000",
	},
}

// ThemeNames returns the built-in theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetPalette returns the palette for the named theme.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

func hex(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

// GlamourStyle adapts glamour's dark style to the active palette. Dialog
// bodies are drawn inside a fixed canvas, so the document margin and
// indentation are removed.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	var zero uint
	cfg.Document.Margin = &zero
	cfg.Document.Indent = &zero
	cfg.Document.Color = hex(p.Text)
	cfg.Paragraph.Color = hex(p.Text)

	for _, h := range []*glamouransi.StyleBlock{&cfg.Heading, &cfg.H2, &cfg.H3, &cfg.H4} {
		h.Color = hex(p.Accent)
	}
	cfg.H1.Color = hex(p.Base)
	cfg.H1.BackgroundColor = hex(p.Accent)

	cfg.BlockQuote.Color = hex(p.Dim)
	cfg.HorizontalRule.Color = hex(p.Dim)
	cfg.Link.Color = hex(p.Link)
	cfg.LinkText.Color = hex(p.Link)
	cfg.Code.Color = hex(p.Link)
	cfg.CodeBlock.Color = hex(p.Dim)
	cfg.Strong.Color = hex(p.Caution)

	return cfg
}
