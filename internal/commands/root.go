package commands

import "github.com/urfave/cli/v3"

// NewRoot builds the touchgate command tree with its global flags bound to
// flags. Callers add the Before and After hooks.
func NewRoot(flags *Flags) *cli.Command {
	root := &cli.Command{
		Name:      "touchgate",
		Usage:     "Touch confirmation dialogs for the terminal",
		UsageText: "touchgate [global options] command [command options]",
		Description: `touchgate shows a confirmation dialog and exits with its result, so scripts
can gate a risky step on an explicit tap or a deliberate hold.

Run 'touchgate confirm -m "Deploy?"' for a confirm/cancel dialog.
Run 'touchgate hold -m "Wipe device?"' for a hold-to-confirm dialog.
Run 'touchgate replay script.yaml' to replay a scripted touch session.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TOUCHGATE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, or - for stderr",
				Sources:     cli.EnvVars("TOUCHGATE_LOG_FILE"),
				Value:       DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TOUCHGATE_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.BoolFlag{
				Name:        "plain-icons",
				Usage:       "use plain glyphs instead of nerd font icons",
				Sources:     cli.EnvVars("TOUCHGATE_PLAIN_ICONS"),
				Destination: &flags.PlainIcons,
			},
			&cli.IntFlag{
				Name:        "profile-port",
				Usage:       "serve pprof on 127.0.0.1 at this port (0 disables)",
				Sources:     cli.EnvVars("TOUCHGATE_PROFILE_PORT"),
				Hidden:      true,
				Destination: &flags.ProfilePort,
			},
		},
	}

	root = NewConfirmCmd(flags).Register(root)
	root = NewHoldCmd(flags).Register(root)
	root = NewReplayCmd(flags).Register(root)
	root = NewConfigCmd(flags).Register(root)
	root = NewDoctorCmd(flags).Register(root)
	root = NewHistoryCmd(flags).Register(root)
	return root
}
