package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/touchgate/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("display.width", c.Display.Width, positive),
		criterio.Run("display.height", c.Display.Height, positive),
		criterio.Run("display.bar_height", c.Display.BarHeight, positive),
		criterio.Run("display.progress_height", c.Display.ProgressHeight, nonNegative),
		c.validateDisplayFits(),
		criterio.Run("hold.threshold", c.Hold.Threshold, positiveDuration),
		criterio.Run("hold.tick_interval", c.Hold.TickInterval, positiveDuration),
		criterio.Run("scheduler.frame_interval", c.Scheduler.FrameInterval, positiveDuration),
		criterio.Run("labels.confirm", c.Labels.Confirm, required),
		criterio.Run("labels.cancel", c.Labels.Cancel, required),
		criterio.Run("labels.hold", c.Labels.Hold, required),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("history.retention", c.History.Retention, nonNegativeDuration),
	)
}

// ValidateDeep performs Validate plus file accessibility checks. The
// configPath argument specifies the config file location to validate (empty
// string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("content.path", c.Content.Path, isReadableFileOrEmpty),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Hold.TickInterval >= c.Hold.Threshold {
		warnings = append(warnings, ValidationWarning{
			Category: "Hold",
			Item:     "tick_interval",
			Message:  "tick interval is not shorter than the threshold; progress will not animate",
		})
	}
	if c.Display.ProgressHeight == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Display",
			Item:     "progress_height",
			Message:  "hold progress is hidden",
		})
	}
	if c.Display.Width%2 == 1 {
		warnings = append(warnings, ValidationWarning{
			Category: "Display",
			Item:     "width",
			Message:  "odd width gives the cancel button one more column than confirm",
		})
	}

	return warnings
}

// validateDisplayFits checks the action bar and progress strip fit on screen.
func (c *Config) validateDisplayFits() error {
	d := c.Display
	if d.Height <= 0 || d.BarHeight <= 0 {
		return nil // reported by the per-field checks
	}
	if d.BarHeight+d.ProgressHeight >= d.Height {
		return criterio.NewFieldErrors("display", fmt.Errorf(
			"bar_height (%d) plus progress_height (%d) must leave room for content in height %d",
			d.BarHeight, d.ProgressHeight, d.Height))
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func positive(v int) error {
	if v <= 0 {
		return fmt.Errorf("must be greater than 0, got %d", v)
	}
	return nil
}

func nonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("must not be negative, got %d", v)
	}
	return nil
}

func positiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be a positive duration, got %s", d)
	}
	return nil
}

func nonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative, got %s", d)
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("is required")
	}
	return nil
}

func knownTheme(name string) error {
	names := styles.ThemeNames()
	if !slices.Contains(names, name) {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
	}
	return nil
}

// isReadableFileOrEmpty validates that a path is empty or names a readable file.
func isReadableFileOrEmpty(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory, not a file")
	}
	return nil
}
