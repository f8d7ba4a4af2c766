package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/librarian/internal/client"
	"github.com/colonyops/librarian/internal/commands"
	"github.com/colonyops/librarian/internal/core/config"
	"github.com/colonyops/librarian/internal/core/logging"
	"github.com/colonyops/librarian/internal/core/styles"
	"github.com/colonyops/librarian/internal/librarian"
	tuinotify "github.com/colonyops/librarian/internal/tui/notify"
	"github.com/colonyops/librarian/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &librarian.App{}
		bus       = tuinotify.NewBus()
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "librarian",
		Usage:     "Ask an AI librarian questions about your books",
		UsageText: "librarian [global options] command [command options]",
		Description: `Librarian is a terminal client for an AI librarian service. It answers
questions about registered books, cites the supporting quote, and shows
the reference passages the answer was drawn from.

Run 'librarian' with no arguments to open the interactive chat.
Run 'librarian ask' to ask a single question from the shell.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LIBRARIAN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("LIBRARIAN_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LIBRARIAN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("LIBRARIAN_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "server-url",
				Usage:       "base URL of the librarian service (overrides config)",
				Sources:     cli.EnvVars("LIBRARIAN_SERVER_URL"),
				Destination: &flags.ServerURL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// One-shot commands log human-readable to stderr; the TUI
			// always logs to a file so log lines never corrupt the
			// alternate screen.
			var logger zerolog.Logger
			if c.Args().First() != "" {
				l, err := logutils.NewConsole(flags.LogLevel)
				if err != nil {
					return ctx, fmt.Errorf("setup logger: %w", err)
				}
				logger = l
			} else {
				l, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
				if err != nil {
					return ctx, fmt.Errorf("setup logger: %w", err)
				}
				logger = l
				logCloser = closer
			}
			log.Logger = logger.Hook(logging.ContextHook{})

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.ServerURL != "" {
				cfg.Server.URL = flags.ServerURL
			}

			// Apply configured theme (validation ensures the name is known)
			styles.Apply(cfg.UI.Theme)

			api := client.New(cfg.Server.URL, cfg.Timeout())

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*app = *librarian.NewApp(api, bus, cfg)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app, bus)

	root = commands.NewAskCmd(flags, app).Register(root)
	root = commands.NewBooksCmd(flags, app).Register(root)
	root = commands.NewHistoryCmd(flags, app).Register(root)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'librarian --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
