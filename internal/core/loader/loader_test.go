package loader

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/paint/painttest"
)

func newTestLoader(t *testing.T, threshold time.Duration) (*Loader, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	l, err := New(threshold, WithClock(clock), WithTickInterval(100*time.Millisecond))
	require.NoError(t, err)
	return l, clock
}

func TestNew_RejectsNonPositiveThreshold(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		l, err := New(d)
		require.ErrorIs(t, err, ErrInvalidThreshold)
		assert.Nil(t, l)
	}
}

func TestLoader_StopBeforeThreshold(t *testing.T) {
	l, clock := newTestLoader(t, time.Second)

	l.Start()
	assert.True(t, l.IsActive())
	clock.Advance(400 * time.Millisecond)

	assert.False(t, l.Stop(), "400ms hold must not confirm")
	assert.False(t, l.Running())
	assert.False(t, l.IsActive())
}

func TestLoader_StopAfterThreshold(t *testing.T) {
	l, clock := newTestLoader(t, time.Second)

	l.Start()
	clock.Advance(time.Second)
	assert.True(t, l.Stop())
}

func TestLoader_StopWhenIdle(t *testing.T) {
	l, _ := newTestLoader(t, time.Second)
	assert.False(t, l.Stop())
}

func TestLoader_StartIsIdempotent(t *testing.T) {
	l, clock := newTestLoader(t, time.Second)

	l.Start()
	clock.Advance(600 * time.Millisecond)
	l.Start()
	clock.Advance(400 * time.Millisecond)

	assert.True(t, l.Stop(), "second Start must not reset the hold start time")
}

func TestLoader_ActiveTurnsOffAtThreshold(t *testing.T) {
	l, clock := newTestLoader(t, time.Second)

	l.Start()
	clock.Advance(999 * time.Millisecond)
	assert.True(t, l.IsActive())
	assert.False(t, l.Expired())

	clock.Advance(time.Millisecond)
	assert.False(t, l.IsActive())
	assert.True(t, l.Expired())
	assert.True(t, l.Running())
}

func TestLoader_Progress(t *testing.T) {
	l, clock := newTestLoader(t, time.Second)
	assert.Zero(t, l.Progress())

	l.Start()
	clock.Advance(250 * time.Millisecond)
	assert.InDelta(t, 0.25, l.Progress(), 1e-9)
	assert.Equal(t, 250*time.Millisecond, l.Elapsed())

	clock.Advance(5 * time.Second)
	assert.InDelta(t, 1.0, l.Progress(), 1e-9)
}

func TestLoader_PollTicksOncePerInterval(t *testing.T) {
	l, clock := newTestLoader(t, time.Second)

	_, ok := l.Poll()
	assert.False(t, ok, "idle loader never ticks")

	l.Start()
	_, ok = l.Poll()
	assert.False(t, ok, "no tick before the first interval")

	clock.Advance(100 * time.Millisecond)
	p, ok := l.Poll()
	require.True(t, ok)
	assert.InDelta(t, 0.1, p, 1e-9)

	_, ok = l.Poll()
	assert.False(t, ok, "tick already consumed for this interval")

	clock.Advance(900 * time.Millisecond)
	_, ok = l.Poll()
	assert.False(t, ok, "expired loader is not a tick source")
}

func TestLoader_Render(t *testing.T) {
	l, clock := newTestLoader(t, time.Second)
	l.styles = paint.StylePair{Normal: "idle", Active: "holding"}
	rec := &painttest.Recorder{}

	l.Render(rec)
	l.Start()
	clock.Advance(500 * time.Millisecond)
	l.Render(rec)

	require.Len(t, rec.Calls, 2)
	assert.Equal(t, paint.StyleID("idle"), rec.Calls[0].Style)
	assert.Zero(t, rec.Calls[0].Fraction)
	assert.Equal(t, paint.StyleID("holding"), rec.Calls[1].Style)
	assert.InDelta(t, 0.5, rec.Calls[1].Fraction, 1e-9)
}
