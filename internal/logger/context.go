package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	commandContextKey contextKey = "command_context"
	loggerContextKey  contextKey = "logger"
)

// CommandContext holds metadata about a command execution.
type CommandContext struct {
	Command    string    `json:"command"`
	Args       []string  `json:"args"`
	WorkingDir string    `json:"working_dir"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
}

// NewCommandContext creates a new CommandContext from a Cobra command.
func NewCommandContext(cmd *cobra.Command, args []string) *CommandContext {
	cc := &CommandContext{
		Command:   cmd.CommandPath(),
		Args:      args,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	}

	if cwd, err := os.Getwd(); err == nil {
		cc.WorkingDir = cwd
	}

	return cc
}

// WithCommandContext stores a CommandContext in the context.
func WithCommandContext(ctx context.Context, cc *CommandContext) context.Context {
	return context.WithValue(ctx, commandContextKey, cc)
}

// CommandContextFrom retrieves the CommandContext from the context.
func CommandContextFrom(ctx context.Context) *CommandContext {
	if cc, ok := ctx.Value(commandContextKey).(*CommandContext); ok {
		return cc
	}
	return nil
}

// WithLogger stores a Logger in the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, l)
}

// LoggerFrom retrieves the Logger from the context.
func LoggerFrom(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return l
	}
	return Default()
}

// LogAttrs returns the CommandContext as slog attributes.
func (cc *CommandContext) LogAttrs() []slog.Attr {
	if cc == nil {
		return nil
	}

	attrs := []slog.Attr{
		slog.String("request_id", cc.RequestID),
		slog.String("command", cc.Command),
		slog.String("working_dir", cc.WorkingDir),
		slog.Time("timestamp", cc.Timestamp),
	}

	if len(cc.Args) > 0 {
		attrs = append(attrs, slog.Any("args", cc.Args))
	}

	return attrs
}
