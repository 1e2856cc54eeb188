package content

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/core/styles"
)

// MinWidthForMarkdown is the narrowest body that is rendered as markdown.
// Below this, bodies fall back to plain text wrapping.
const MinWidthForMarkdown = 20

// maxCacheEntries bounds the render cache before it is reset.
const maxCacheEntries = 32

// Markdown renders dialog bodies with glamour, caching results per body.
// It is not safe for concurrent use.
type Markdown struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string][]string
}

// NewMarkdown creates a renderer wrapping at width columns.
func NewMarkdown(width int) *Markdown {
	return &Markdown{
		width: width,
		cache: make(map[string][]string),
	}
}

// Lines renders body to styled lines.
func (m *Markdown) Lines(body string) []string {
	if body == "" {
		return nil
	}
	if m.width < MinWidthForMarkdown {
		return Plain(body, m.width)
	}
	if cached, ok := m.cache[body]; ok {
		return cached
	}

	r, err := m.getOrCreateRenderer()
	if err != nil {
		l := logging.Component("content")
		l.Warn().Err(err).Msg("glamour renderer error")
		return Plain(body, m.width)
	}

	rendered, err := r.Render(body)
	if err != nil {
		l := logging.Component("content")
		l.Warn().Err(err).Msg("glamour render error")
		return Plain(body, m.width)
	}

	rendered = strings.Trim(rendered, "\n")
	lines := strings.Split(rendered, "\n")

	if len(m.cache) >= maxCacheEntries {
		m.cache = make(map[string][]string)
	}
	m.cache[body] = lines
	return lines
}

func (m *Markdown) getOrCreateRenderer() (*glamour.TermRenderer, error) {
	if m.renderer != nil {
		return m.renderer, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(m.width),
	)
	if err != nil {
		return nil, err
	}
	m.renderer = r
	return r, nil
}

// Plain wraps body to width without markdown styling.
func Plain(body string, width int) []string {
	if width <= 0 {
		return strings.Split(body, "\n")
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(body)
	return strings.Split(wrapped, "\n")
}
