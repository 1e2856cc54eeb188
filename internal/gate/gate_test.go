package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/touchgate/internal/content"
	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/loader"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("hold")
	require.NoError(t, err)
	assert.Equal(t, KindHold, k)

	_, err = ParseKind("swipe")
	assert.Error(t, err)
}

func TestBuild_Confirm(t *testing.T) {
	cfg := config.DefaultConfig()

	f, err := Build(&cfg, content.Static("body"), Spec{Kind: KindConfirm, ID: "abc"})
	require.NoError(t, err)

	d, ok := f.(*dialog.Confirm)
	require.True(t, ok)
	assert.Equal(t, "abc", d.ID())
	require.NotNil(t, d.CancelButton())
	assert.Equal(t, "Cancel", d.CancelButton().Label().Text)
	assert.Equal(t, "Confirm", d.ConfirmButton().Label().Text)
	assert.Equal(t, 24, d.ConfirmButton().Area().X)
}

func TestBuild_ConfirmNoCancel(t *testing.T) {
	cfg := config.DefaultConfig()

	f, err := Build(&cfg, content.Static("body"), Spec{Kind: KindConfirm, NoCancel: true, Label: "Send"})
	require.NoError(t, err)

	d := f.(*dialog.Confirm)
	assert.Nil(t, d.CancelButton())
	assert.Equal(t, "Send", d.ConfirmButton().Label().Text)
	assert.Equal(t, cfg.Display.Width, d.ConfirmButton().Area().W)
}

func TestBuild_Hold(t *testing.T) {
	cfg := config.DefaultConfig()

	f, err := Build(&cfg, content.Static("body"), Spec{Kind: KindHold, Threshold: 2 * time.Second})
	require.NoError(t, err)

	d := f.(*dialog.HoldToConfirm)
	assert.Equal(t, 2*time.Second, d.Loader().Threshold())
	assert.Equal(t, "Hold to confirm", d.Button().Label().Text)
}

func TestBuild_HoldInvalidThreshold(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := Build(&cfg, content.Static("body"), Spec{Kind: KindHold, Threshold: -time.Second})
	assert.ErrorIs(t, err, loader.ErrInvalidThreshold)
}

func TestBuild_UnknownKind(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := Build(&cfg, nil, Spec{Kind: "swipe"})
	assert.Error(t, err)
}
