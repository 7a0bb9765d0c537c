// Package cli wires configuration, logging and the todo session into cobra
// commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// stderr receives logs of non-interactive commands.
var stderr io.Writer = os.Stderr

// usageError marks errors that exit with code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type globalFlags struct {
	configFile string
	theme      string
	color      string
	logLevel   string
	logFile    string
	timezone   string
	noSeed     bool
}

func (g *globalFlags) overrides() config.Overrides {
	return config.Overrides{
		ConfigFile: g.configFile,
		Theme:      g.theme,
		Color:      g.color,
		LogLevel:   g.logLevel,
		LogFile:    g.logFile,
		Timezone:   g.timezone,
		NoSeed:     g.noSeed,
	}
}

// Execute runs the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(args []string) int {
	return execute(newRootCmd(), args)
}

func execute(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		ui.Fail(err.Error())
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(ui.Stderr, "Run `tada --help` for usage.")
			return 2
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}
	root := &cobra.Command{
		Use:   "tada",
		Short: "A tiny todo list for the terminal",
		Long: `tada keeps a todo list in memory for the length of a session.

Run without arguments to open the interactive list. Use "tada run" to
replay a YAML session script and print the resulting list.`,
		Version:       Version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(gf)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&gf.configFile, "config", "", "config file (default: user and project config)")
	pf.StringVar(&gf.theme, "theme", "", "theme: classic, neon or mono")
	pf.StringVar(&gf.color, "color", "", "color output: auto, always or never")
	pf.StringVar(&gf.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&gf.logFile, "log-file", "", "append logs to this file")
	pf.StringVar(&gf.timezone, "tz", "", "IANA time zone for displayed dates (default: local)")
	pf.BoolVar(&gf.noSeed, "no-seed", false, "start without the example todo")

	root.AddCommand(newRunCmd(gf))
	return root
}

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// session is what every command needs: config, logger and a fresh store.
type session struct {
	cfg    *config.Config
	log    *log.Logger
	closer io.Closer
	ctrl   *form.Controller
}

func newSession(gf *globalFlags, logFallback io.Writer, seed func(*config.Config) bool) (*session, error) {
	cfg, err := config.Load(gf.overrides())
	if err != nil {
		return nil, usageError{err}
	}
	ui.SetColorMode(cfg.Color)
	ui.SetTheme(cfg.Theme)

	logger, closer, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		File:     cfg.LogFile,
		Fallback: logFallback,
	})
	if err != nil {
		return nil, err
	}

	s := store.New(store.WithLogger(logger.WithPrefix("store")))
	if seed(cfg) {
		s.Seed(model.Example(cfg.Location))
	}
	ctrl := form.New(s, logger.WithPrefix("form"))
	logger.Debug("session ready", "theme", cfg.Theme, "tz", cfg.Location, "todos", s.Len())
	return &session{cfg: cfg, log: logger, closer: closer, ctrl: ctrl}, nil
}

func (s *session) Close() error { return s.closer.Close() }

func runInteractive(gf *globalFlags) error {
	// The TUI owns the terminal: logs only go to a file when one is configured.
	sess, err := newSession(gf, nil, func(c *config.Config) bool { return c.SeedExample })
	if err != nil {
		return err
	}
	defer sess.Close()

	return tui.Run(sess.ctrl, tui.Options{
		Location: sess.cfg.Location,
		FileDir:  sess.cfg.FileDir,
		Theme:    sess.cfg.Theme,
		Logger:   sess.log.WithPrefix("tui"),
	})
}
