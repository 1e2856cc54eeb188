package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_Sorted(t *testing.T) {
	names := ThemeNames()
	require.NotEmpty(t, names)
	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)
}

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(DefaultTheme) })

	require.True(t, Apply("gruvbox"))
	p, _ := GetPalette("gruvbox")
	assert.Equal(t, p, CurrentPalette)

	assert.False(t, Apply("does-not-exist"))
	assert.Equal(t, p, CurrentPalette, "unknown theme leaves palette untouched")
}

func TestResolve(t *testing.T) {
	t.Cleanup(func() { Apply(DefaultTheme) })
	Apply(DefaultTheme)

	active := Resolve(ButtonConfirmActive)
	assert.True(t, active.GetBold())
	assert.Equal(t, CurrentPalette.Confirm, active.GetBackground())

	assert.Equal(t, BodyStyle.GetForeground(), Resolve("unknown").GetForeground())
}

func TestIcon(t *testing.T) {
	assert.Equal(t, IconConfirm, Icon(IconHandleConfirm))
	assert.Equal(t, IconClear, Icon(IconHandleClear))
	assert.Equal(t, "X", Icon("X"))
	assert.Empty(t, Icon(""))
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, string(CurrentPalette.Text), *cfg.Document.Color)
	require.NotNil(t, cfg.Document.Margin)
	assert.Zero(t, *cfg.Document.Margin)
}
