package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// PrefixStyle renders the app name in front of every pretty log line.
var PrefixStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("212")) // Pink

// CharmHandler wraps charmbracelet/log to implement slog.Handler.
type CharmHandler struct {
	logger *charmlog.Logger
	writer io.Writer
	opts   CharmHandlerOptions
	attrs  []slog.Attr
	groups []string
}

// CharmHandlerOptions configures the Charm handler.
type CharmHandlerOptions struct {
	// Level is the minimum level to log.
	Level slog.Leveler
	// NoColor disables colored output.
	NoColor bool
	// TimeFormat is the format for timestamps.
	TimeFormat string
	// ShowCaller shows file:line in logs.
	ShowCaller bool
	// Prefix is prepended to all log messages.
	Prefix string
}

// charmStyles returns the level and field styles. With noColor every style
// is plain so redirected output carries no escape sequences.
func charmStyles(noColor bool) *charmlog.Styles {
	styles := charmlog.DefaultStyles()

	level := func(label, color string) lipgloss.Style {
		s := lipgloss.NewStyle().SetString(label)
		if noColor {
			return s
		}
		return s.Bold(true).Foreground(lipgloss.Color(color))
	}

	styles.Levels[charmlog.DebugLevel] = level("DEBUG", "63")  // Purple
	styles.Levels[charmlog.InfoLevel] = level("INFO ", "42")   // Green
	styles.Levels[charmlog.WarnLevel] = level("WARN ", "214")  // Orange
	styles.Levels[charmlog.ErrorLevel] = level("ERROR", "196") // Red
	styles.Levels[charmlog.FatalLevel] = level("FATAL", "196")

	if noColor {
		plain := lipgloss.NewStyle()
		styles.Key = plain
		styles.Value = plain
		styles.Separator = plain
		styles.Timestamp = plain
		styles.Caller = plain
		styles.Message = plain
		styles.Prefix = plain
		return styles
	}

	styles.Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")). // Cyan
		Bold(true)
	styles.Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")) // Light gray
	styles.Separator = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")) // Dark gray
	styles.Timestamp = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")) // Medium gray
	styles.Caller = lipgloss.NewStyle().
		Foreground(lipgloss.Color("139")) // Light purple
	styles.Prefix = PrefixStyle

	return styles
}

// NewCharmHandler creates a new Charm-based slog handler.
func NewCharmHandler(w io.Writer, opts *CharmHandlerOptions) *CharmHandler {
	if opts == nil {
		opts = &CharmHandlerOptions{}
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04:05"
	}

	return &CharmHandler{
		logger: newCharmLogger(w, *opts),
		writer: w,
		opts:   *opts,
	}
}

func newCharmLogger(w io.Writer, opts CharmHandlerOptions) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportCaller:    opts.ShowCaller,
		ReportTimestamp: true,
		TimeFormat:      opts.TimeFormat,
		Prefix:          opts.Prefix,
		Level:           charmLogLevel(opts.Level.Level()),
	})
	l.SetStyles(charmStyles(opts.NoColor))
	return l
}

// Enabled implements slog.Handler.
func (h *CharmHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *CharmHandler) Handle(_ context.Context, r slog.Record) error {
	kvs := make([]interface{}, 0, (len(h.attrs)+r.NumAttrs())*2)

	for _, attr := range h.attrs {
		if k, v := h.formatAttr(attr); k != "" {
			kvs = append(kvs, k, v)
		}
	}

	r.Attrs(func(a slog.Attr) bool {
		if k, v := h.formatAttr(a); k != "" {
			kvs = append(kvs, k, v)
		}
		return true
	})

	switch {
	case r.Level >= slog.LevelError:
		h.logger.Error(r.Message, kvs...)
	case r.Level >= slog.LevelWarn:
		h.logger.Warn(r.Message, kvs...)
	case r.Level >= slog.LevelInfo:
		h.logger.Info(r.Message, kvs...)
	default:
		h.logger.Debug(r.Message, kvs...)
	}

	return nil
}

// formatAttr formats a slog.Attr for charm log.
func (h *CharmHandler) formatAttr(attr slog.Attr) (string, interface{}) {
	if attr.Key == "" {
		return "", nil
	}

	key := attr.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	// Groups are flattened with dot notation
	if attr.Value.Kind() == slog.KindGroup {
		groupAttrs := attr.Value.Group()
		if len(groupAttrs) == 0 {
			return "", nil
		}
		var parts []string
		for _, ga := range groupAttrs {
			if k, v := h.formatAttr(ga); k != "" {
				parts = append(parts, fmt.Sprintf("%s=%v", k, v))
			}
		}
		return key, strings.Join(parts, " ")
	}

	return key, formatSlogValue(attr.Value)
}

// WithAttrs implements slog.Handler.
func (h *CharmHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := h.clone()
	newHandler.attrs = append(newHandler.attrs, attrs...)
	return newHandler
}

// WithGroup implements slog.Handler.
func (h *CharmHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newHandler := h.clone()
	newHandler.groups = append(newHandler.groups, name)
	return newHandler
}

func (h *CharmHandler) clone() *CharmHandler {
	return &CharmHandler{
		logger: newCharmLogger(h.writer, h.opts),
		writer: h.writer,
		opts:   h.opts,
		attrs:  append([]slog.Attr{}, h.attrs...),
		groups: append([]string{}, h.groups...),
	}
}

// formatSlogValue converts slog.Value to a display value.
func formatSlogValue(v slog.Value) interface{} {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		val := v.Any()
		if err, ok := val.(error); ok {
			return err.Error()
		}
		return val
	default:
		return v.Any()
	}
}

// charmLogLevel converts slog.Level to charmlog.Level.
func charmLogLevel(level slog.Level) charmlog.Level {
	switch {
	case level >= slog.LevelError:
		return charmlog.ErrorLevel
	case level >= slog.LevelWarn:
		return charmlog.WarnLevel
	case level >= slog.LevelInfo:
		return charmlog.InfoLevel
	default:
		return charmlog.DebugLevel
	}
}
