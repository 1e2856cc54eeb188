package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/styles"
	"github.com/colonyops/touchgate/internal/printer"
)

// ErrInitCancelled is returned when the user declines to overwrite an
// existing config.
var ErrInitCancelled = errors.New("init cancelled")

type configInit struct {
	yes       bool
	force     bool
	theme     string
	threshold time.Duration
}

func (cmd *ConfigCmd) initCommand() *cli.Command {
	return &cli.Command{
		Name:        "init",
		Usage:       "Write a starter configuration file",
		UsageText:   "touchgate config init [options]",
		Description: "Prompts for a theme, hold threshold and markdown rendering, then writes the config file. An existing file is backed up to <path>.bak.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip prompts and use defaults",
				Destination: &cmd.init.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing config without asking",
				Destination: &cmd.init.force,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "theme to preselect",
				Value:       styles.DefaultTheme,
				Destination: &cmd.init.theme,
			},
			&cli.DurationFlag{
				Name:        "threshold",
				Usage:       "hold threshold to preselect",
				Value:       time.Second,
				Destination: &cmd.init.threshold,
			},
		},
		Action: cmd.runInit,
	}
}

func (cmd *ConfigCmd) runInit(ctx context.Context, c *cli.Command) error {
	p := printer.New(c.Root().Writer)
	opts := cmd.init

	path := cmd.flags.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}

	exists := fileExists(path)
	if exists && !opts.force {
		if opts.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(path + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.TUI.Theme = opts.theme
	cfg.Hold.Threshold = opts.threshold

	if !opts.yes {
		if err := promptConfig(&cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if exists {
		backup, err := backupConfig(path)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		p.Successf("Backed up config to: %s", backup)
	}

	if err := writeConfig(&cfg, path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", path)

	return nil
}

func promptConfig(cfg *config.Config) error {
	threshold := cfg.Hold.Threshold.String()
	markdown := cfg.TUI.MarkdownEnabled()

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(huh.NewOptions(styles.ThemeNames()...)...).
			Value(&cfg.TUI.Theme),
		huh.NewInput().
			Title("Hold threshold").
			Description("How long a hold-to-confirm press must last, e.g. 1s or 1500ms").
			Value(&threshold).
			Validate(func(s string) error {
				d, err := time.ParseDuration(s)
				if err != nil {
					return err
				}
				if d <= 0 {
					return errors.New("must be positive")
				}
				return nil
			}),
		huh.NewConfirm().
			Title("Render content as markdown?").
			Value(&markdown),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrInitCancelled
		}
		return err
	}

	d, err := time.ParseDuration(threshold)
	if err != nil {
		return err
	}
	cfg.Hold.Threshold = d
	cfg.TUI.Markdown = &markdown
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// backupConfig copies the file at path to path.bak, replacing an older backup.
func backupConfig(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read existing config: %w", err)
	}

	backup := path + ".bak"
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	return backup, nil
}

func writeConfig(cfg *config.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
