// Package config handles configuration loading and validation for touchgate.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Hold      HoldConfig      `yaml:"hold"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Labels    LabelsConfig    `yaml:"labels"`
	TUI       TUIConfig       `yaml:"tui"`
	Content   ContentConfig   `yaml:"content"`
	History   HistoryConfig   `yaml:"history"`
}

// DisplayConfig describes the dialog surface in cells.
type DisplayConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	BarHeight      int `yaml:"bar_height"`
	ProgressHeight int `yaml:"progress_height"`
}

// Layout converts the display settings to a dialog layout.
func (d DisplayConfig) Layout() dialog.Layout {
	return dialog.Layout{
		Width:          d.Width,
		Height:         d.Height,
		BarHeight:      d.BarHeight,
		ProgressHeight: d.ProgressHeight,
	}
}

// HoldConfig configures the hold-to-confirm gesture.
type HoldConfig struct {
	Threshold    time.Duration `yaml:"threshold"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// SchedulerConfig configures the cooperative scheduler.
type SchedulerConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// LabelsConfig holds the default button labels and icon handles.
type LabelsConfig struct {
	Confirm     string `yaml:"confirm"`
	ConfirmIcon string `yaml:"confirm_icon"`
	Cancel      string `yaml:"cancel"`
	CancelIcon  string `yaml:"cancel_icon"`
	Hold        string `yaml:"hold"`
}

// TUIConfig holds terminal presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	// Markdown renders content bodies through glamour when true.
	Markdown *bool `yaml:"markdown"` // nil = enabled
}

// MarkdownEnabled reports whether content bodies are rendered as markdown.
func (t TUIConfig) MarkdownEnabled() bool {
	return t.Markdown == nil || *t.Markdown
}

// ContentConfig selects the default content source.
type ContentConfig struct {
	// Path is a file watched for changes; empty uses the message flag.
	Path string `yaml:"path"`
}

// HistoryConfig controls the outcome journal written after each dialog.
type HistoryConfig struct {
	Enabled *bool `yaml:"enabled"` // nil = enabled
	// Dir holds the journal database; empty uses the XDG data directory.
	Dir string `yaml:"dir"`
	// Retention prunes older outcomes whenever one is recorded. Zero keeps
	// everything.
	Retention time.Duration `yaml:"retention"`
}

// IsEnabled reports whether outcomes are recorded.
func (h HistoryConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Width:          48,
			Height:         16,
			BarHeight:      3,
			ProgressHeight: 1,
		},
		Hold: HoldConfig{
			Threshold:    time.Second,
			TickInterval: 30 * time.Millisecond,
		},
		Scheduler: SchedulerConfig{
			FrameInterval: 16 * time.Millisecond,
		},
		Labels: LabelsConfig{
			Confirm:     "Confirm",
			ConfirmIcon: "confirm",
			Cancel:      "Cancel",
			CancelIcon:  "clear",
			Hold:        "Hold to confirm",
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Display.Width == 0 {
		c.Display.Width = defaults.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = defaults.Display.Height
	}
	if c.Display.BarHeight == 0 {
		c.Display.BarHeight = defaults.Display.BarHeight
	}
	if c.Hold.Threshold == 0 {
		c.Hold.Threshold = defaults.Hold.Threshold
	}
	if c.Hold.TickInterval == 0 {
		c.Hold.TickInterval = defaults.Hold.TickInterval
	}
	if c.Scheduler.FrameInterval == 0 {
		c.Scheduler.FrameInterval = defaults.Scheduler.FrameInterval
	}
	if c.Labels.Confirm == "" {
		c.Labels.Confirm = defaults.Labels.Confirm
	}
	if c.Labels.Cancel == "" {
		c.Labels.Cancel = defaults.Labels.Cancel
	}
	if c.Labels.Hold == "" {
		c.Labels.Hold = defaults.Labels.Hold
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}
