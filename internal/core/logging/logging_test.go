package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestComponent(t *testing.T) {
	buf := captureGlobal(t)

	l := Component("replay")
	l.Info().Msg("started")

	entry := decode(t, buf)
	assert.Equal(t, "replay", entry["cmp"])
	assert.Equal(t, "started", entry["message"])
}

func TestDialog(t *testing.T) {
	buf := captureGlobal(t)

	l := Dialog("hold", "dlg-7")
	l.Info().Msg("opened")

	entry := decode(t, buf)
	assert.Equal(t, "dialog", entry["cmp"])
	assert.Equal(t, "hold", entry["flow"])
	assert.Equal(t, "dlg-7", entry["dialog_id"])
}

func TestDialogFrom(t *testing.T) {
	_, ok := DialogFrom(context.Background())
	assert.False(t, ok)

	want := DialogFields{Flow: "confirm", ID: "ab12cd", Source: "terminal"}
	got, ok := DialogFrom(WithDialog(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestContextHook(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   map[string]string
		absent []string
	}{
		{
			name: "all fields",
			ctx:  WithDialog(context.Background(), DialogFields{Flow: "hold", ID: "dlg-1", Source: "replay"}),
			want: map[string]string{"flow": "hold", "dialog_id": "dlg-1", "source": "replay"},
		},
		{
			name:   "empty fields omitted",
			ctx:    WithDialog(context.Background(), DialogFields{ID: "dlg-1"}),
			want:   map[string]string{"dialog_id": "dlg-1"},
			absent: []string{"flow", "source"},
		},
		{
			name:   "untagged context",
			ctx:    context.Background(),
			absent: []string{"flow", "dialog_id", "source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.ctx).Msg("x")

			entry := decode(t, &buf)
			for k, v := range tt.want {
				assert.Equal(t, v, entry[k], k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, entry, k)
			}
		})
	}
}

func TestContextHook_NoContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Msg("x")

	assert.NotContains(t, decode(t, &buf), "dialog_id")
}
