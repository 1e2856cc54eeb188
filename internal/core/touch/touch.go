// Package touch models raw touch input as a stream of single-point events.
package touch

import (
	"fmt"
	"strings"

	"github.com/colonyops/touchgate/internal/core/geom"
)

// Kind is the type of a raw touch event.
type Kind int

const (
	Down Kind = iota + 1
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses the lower-case name of an event kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return Down, nil
	case "move":
		return Move, nil
	case "up":
		return Up, nil
	}
	return 0, fmt.Errorf("unknown touch kind %q", s)
}

// Event is one raw touch sample at an absolute position.
type Event struct {
	Kind Kind
	Pos  geom.Point
}

// At builds an event of the given kind at (x, y).
func At(kind Kind, x, y int) Event {
	return Event{Kind: kind, Pos: geom.Point{X: x, Y: y}}
}

func (e Event) String() string {
	return e.Kind.String() + e.Pos.String()
}
