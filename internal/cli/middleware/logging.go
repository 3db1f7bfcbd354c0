package middleware

import (
	"fmt"
	"slices"
	"time"

	"keysync/internal/logger"

	"github.com/spf13/cobra"
)

// LoggingOptions configures the logging middleware.
type LoggingOptions struct {
	// SkipCommands are command names that run without logging.
	SkipCommands []string
}

// Logging logs the start and end of a command at debug level, and failures
// at error level. The logger and request ID come from the command context
// set up by the root command.
func Logging(opts LoggingOptions) Middleware {
	return func(next RunFunc) RunFunc {
		return func(cmd *cobra.Command, args []string) error {
			if slices.Contains(opts.SkipCommands, cmd.Name()) {
				return next(cmd, args)
			}

			ctx := cmd.Context()
			log := logger.LoggerFrom(ctx)
			if cc := logger.CommandContextFrom(ctx); cc != nil {
				log = log.With("request_id", cc.RequestID)
			}

			log.Debug("command started", "command", cmd.CommandPath(), "args", args)
			start := time.Now()

			err := next(cmd, args)

			duration := time.Since(start)
			if err != nil {
				log.Error("command failed",
					"command", cmd.CommandPath(),
					"duration_ms", duration.Milliseconds(),
					logger.WithError(err),
				)
			} else {
				log.Debug("command completed",
					"command", cmd.CommandPath(),
					"duration_ms", duration.Milliseconds(),
				)
			}
			return err
		}
	}
}

// Timing prints the command duration to stderr when verbose returns true.
// verbose is evaluated after the command ran, so it sees parsed flags.
func Timing(verbose func() bool) Middleware {
	return func(next RunFunc) RunFunc {
		return func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err := next(cmd, args)
			if verbose() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Completed in %s\n", time.Since(start).Round(time.Millisecond))
			}
			return err
		}
	}
}
