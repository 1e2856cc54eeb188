package touch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	q.Push(At(Down, 1, 1))
	q.Push(At(Move, 2, 1))
	q.Push(At(Up, 3, 1))
	assert.Equal(t, 3, q.Len())

	want := []Kind{Down, Move, Up}
	for _, k := range want {
		e, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, k, e.Kind)
	}

	_, ok := q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())

	q.Push(At(Down, 5, 5))
	e, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, At(Down, 5, 5), e)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Down, Move, Up} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind(" DOWN ")
	require.NoError(t, err)
	assert.Equal(t, Down, got)

	_, err = ParseKind("tap")
	assert.Error(t, err)
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "down(3,4)", At(Down, 3, 4).String())
}
