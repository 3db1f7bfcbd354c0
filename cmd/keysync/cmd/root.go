package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	clierrors "keysync/internal/cli/errors"
	"keysync/internal/cli/middleware"
	"keysync/internal/config"
	"keysync/internal/logger"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

// app holds the state shared by one command tree.
type app struct {
	// cfgFile is the path given with --config
	cfgFile string
	// verbose lowers the log level to debug
	verbose bool

	cfg *config.Config
	log *logger.Logger
}

// skipConfig lists commands that run without loading the config file.
var skipConfig = map[string]bool{
	"version":    true,
	"init":       true,
	"help":       true,
	"completion": true,
}

// NewRootCommand builds the keysync command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "keysync",
		Short: "Sync translation keys from source code into a JSON locale file",
		Long: `keysync scans a source tree for translation calls such as t("some.key"),
collects the literal keys, and adds the missing ones to a JSON locale file
with the key itself as the value. Existing entries are never changed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipConfig[cmd.Name()] {
				return nil
			}
			return a.setup(cmd, args)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return a.log.Close()
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default searches ./keysync.yaml, ~/.config/keysync, /etc/keysync)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")

	root.AddCommand(
		newSyncCommand(a, syncPlain),
		newSyncCommand(a, syncHooks),
		newConfigCommand(a),
		newVersionCommand(),
	)

	middleware.ApplyRecursive(root,
		middleware.Logging(middleware.LoggingOptions{SkipCommands: []string{"version"}}),
		middleware.Timing(func() bool { return a.verbose }),
	)

	return root
}

// setup loads the configuration and the logger, and stores both in the
// command context.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	v := config.New()
	for flag, key := range map[string]string{
		"project-dir": "project_dir",
		"locale-file": "locale_file",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.Load(v, a.cfgFile)
	if err != nil {
		path := a.cfgFile
		if path == "" {
			path = v.ConfigFileUsed()
		}
		return clierrors.ConfigInvalid(path, err)
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return clierrors.ConfigInvalid(v.ConfigFileUsed(), err)
	}
	a.cfg = cfg
	a.log = log

	cc := logger.NewCommandContext(cmd, args)
	ctx := logger.WithCommandContext(cmd.Context(), cc)
	ctx = logger.WithLogger(ctx, log)
	cmd.SetContext(ctx)

	log.LogAttrs(ctx, slog.LevelDebug, "configuration loaded",
		append(cc.LogAttrs(),
			slog.String("config_file", v.ConfigFileUsed()),
			slog.String("project_dir", cfg.ProjectDir),
			slog.String("locale_file", cfg.LocaleFile),
		)...,
	)
	return nil
}

// Execute runs the command tree and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if term.IsTerminal(os.Stderr.Fd()) {
			fmt.Fprintln(os.Stderr, clierrors.Display(os.Stderr, err))
		} else {
			fmt.Fprint(os.Stderr, clierrors.DisplaySimple(err))
		}
		stop()
		os.Exit(1)
	}
}
