package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 5, H: 3}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"top left corner", Point{10, 20}, true},
		{"inside", Point{12, 21}, true},
		{"last column", Point{14, 22}, true},
		{"right edge exclusive", Point{15, 21}, false},
		{"bottom edge exclusive", Point{12, 23}, false},
		{"left of rect", Point{9, 21}, false},
		{"above rect", Point{12, 19}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRect_SplitH(t *testing.T) {
	left, right := Rect{X: 0, Y: 192, W: 240, H: 48}.SplitH()
	assert.Equal(t, Rect{X: 0, Y: 192, W: 120, H: 48}, left)
	assert.Equal(t, Rect{X: 120, Y: 192, W: 120, H: 48}, right)
	assert.False(t, left.Overlaps(right))

	left, right = Rect{X: 0, Y: 0, W: 7, H: 1}.SplitH()
	assert.Equal(t, 4, left.W)
	assert.Equal(t, 3, right.W)
	assert.Equal(t, 4, right.X)
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, a.Overlaps(Rect{X: 9, Y: 9, W: 2, H: 2}))
	assert.False(t, a.Overlaps(Rect{X: 10, Y: 0, W: 2, H: 2}))
	assert.False(t, a.Overlaps(Rect{}))
}
