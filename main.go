package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/touchgate/internal/commands"
	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/core/styles"
	"github.com/colonyops/touchgate/pkg/logutils"
	"github.com/colonyops/touchgate/pkg/profiler"
	"github.com/colonyops/touchgate/pkg/utils"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

// build describes the binary. A `go install module@version` build carries no
// ldflags, so the module version and VCS stamps fill the gaps.
func build() string {
	v, c, d := version, commit, date

	if info, ok := debug.ReadBuildInfo(); ok && v == "dev" {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			v = mv
		}
		c = setting(info, "vcs.revision", c)
		d = setting(info, "vcs.time", d)
	}

	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s) %s", v, c, d)
}

func setting(info *debug.BuildInfo, key, fallback string) string {
	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value
		}
	}
	return fallback
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		pprof     *profiler.Server
	)

	flags := &commands.Flags{
		Console: utils.NewDeferredWriter(os.Stderr),
	}

	app := commands.NewRoot(flags)
	app.Version = build()
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, flags.Console)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		// Validation ensures the theme name is known.
		styles.Apply(cfg.TUI.Theme)
		if flags.PlainIcons {
			styles.UsePlainIcons()
		}

		for _, w := range cfg.Warnings() {
			log.Warn().Str("category", w.Category).Str("item", w.Item).Msg(w.Message)
		}

		if flags.ProfilePort > 0 {
			pprof = profiler.New(flags.ProfilePort)
			if err := pprof.Start(ctx); err != nil {
				log.Warn().Err(err).Msg("profiler disabled")
				pprof = nil
			}
		}

		return ctx, nil
	}
	app.After = func(ctx context.Context, c *cli.Command) error {
		if pprof != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = pprof.Shutdown(shutdownCtx)
		}

		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
