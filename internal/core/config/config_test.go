package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Hold.Threshold)
	assert.True(t, cfg.TUI.MarkdownEnabled())
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
display:
  width: 60
hold:
  threshold: 1500ms
labels:
  hold: "Hold to wipe"
tui:
  markdown: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Display.Width)
	assert.Equal(t, 16, cfg.Display.Height, "unset fields keep defaults")
	assert.Equal(t, 1500*time.Millisecond, cfg.Hold.Threshold)
	assert.Equal(t, 30*time.Millisecond, cfg.Hold.TickInterval)
	assert.Equal(t, "Hold to wipe", cfg.Labels.Hold)
	assert.Equal(t, "Confirm", cfg.Labels.Confirm)
	assert.False(t, cfg.TUI.MarkdownEnabled())
}

func TestLoad_History(t *testing.T) {
	path := writeConfig(t, "history:\n  enabled: false\n  retention: 720h\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.History.IsEnabled())
	assert.Equal(t, 720*time.Hour, cfg.History.Retention)
	assert.True(t, DefaultConfig().History.IsEnabled())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "display: [nope")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_NegativeThresholdFails(t *testing.T) {
	path := writeConfig(t, "hold:\n  threshold: -1s\n")
	_, err := Load(path)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "hold.threshold", fieldErrs[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{
			name:      "zero width",
			mutate:    func(c *Config) { c.Display.Width = 0 },
			wantField: "display.width",
		},
		{
			name:      "negative progress height",
			mutate:    func(c *Config) { c.Display.ProgressHeight = -1 },
			wantField: "display.progress_height",
		},
		{
			name:      "bar fills screen",
			mutate:    func(c *Config) { c.Display.BarHeight = 15 },
			wantField: "display",
		},
		{
			name:      "zero tick interval",
			mutate:    func(c *Config) { c.Hold.TickInterval = 0 },
			wantField: "hold.tick_interval",
		},
		{
			name:      "zero frame interval",
			mutate:    func(c *Config) { c.Scheduler.FrameInterval = 0 },
			wantField: "scheduler.frame_interval",
		},
		{
			name:      "blank confirm label",
			mutate:    func(c *Config) { c.Labels.Confirm = "  " },
			wantField: "labels.confirm",
		},
		{
			name:      "negative retention",
			mutate:    func(c *Config) { c.History.Retention = -time.Hour },
			wantField: "history.retention",
		},
		{
			name:      "unknown theme",
			mutate:    func(c *Config) { c.TUI.Theme = "solarized" },
			wantField: "tui.theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Warnings())
}

func TestValidateDeep_ContentPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Path = filepath.Join(t.TempDir(), "missing.md")

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "content.path", fieldErrs[0].Field)

	cfg.Content.Path = writeConfig(t, "# body")
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_ConfigIsDirectory(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hold.TickInterval = 2 * time.Second
	cfg.Display.ProgressHeight = 0
	cfg.Display.Width = 47

	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "tick_interval", warnings[0].Item)
	assert.Equal(t, "progress_height", warnings[1].Item)
	assert.Equal(t, "width", warnings[2].Item)
}

func TestDisplayConfig_Layout(t *testing.T) {
	l := DefaultConfig().Display.Layout()
	assert.Equal(t, 48, l.ActionBar().W)
	assert.Equal(t, 13, l.ActionBar().Y)
	assert.Equal(t, 12, l.ProgressArea().Y)
}
