// Package paint declares the drawing collaborator used by widgets. Widgets
// hand opaque style and icon handles to the Painter; only the Painter
// implementation knows what they look like.
package paint

import "github.com/colonyops/touchgate/internal/core/geom"

// StyleID names a visual style resolved by the Painter.
type StyleID string

// StylePair is the style used while a widget is idle and while it is active.
type StylePair struct {
	Normal StyleID
	Active StyleID
}

// Pick returns the active style when active is true.
func (p StylePair) Pick(active bool) StyleID {
	if active {
		return p.Active
	}
	return p.Normal
}

// Label is the content drawn inside a button: text, an icon handle, or both.
type Label struct {
	Text string
	Icon string
}

// Painter draws widgets onto a surface.
type Painter interface {
	Button(area geom.Rect, label Label, style StyleID)
	Progress(area geom.Rect, fraction float64, style StyleID)
	Body(text string)
}
