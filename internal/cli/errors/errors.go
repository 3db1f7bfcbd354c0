// Package errors provides rich error types and display for the keysync CLI.
//
// Only fatal conditions become Rich errors. Per-file read failures and a
// corrupt locale file are reported as warnings by the sync run and never
// reach this package.
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Code represents an error code for categorization.
type Code string

const (
	CodeUnknown           Code = "UNKNOWN"
	CodeConfigInvalid     Code = "CONFIG_INVALID"
	CodeLocaleInvalid     Code = "LOCALE_INVALID"
	CodeLocaleWriteFailed Code = "LOCALE_WRITE_FAILED"
	CodeInternal          Code = "INTERNAL"
)

// Rich is an enhanced error with additional context for display.
type Rich struct {
	// Code is a unique error code for categorization
	Code Code
	// Message is the user-friendly error message
	Message string
	// Details provides additional technical information
	Details string
	// Suggestions are actionable items the user can try
	Suggestions []string
	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *Rich) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Rich) Unwrap() error {
	return e.Cause
}

// New creates a new Rich error.
func New(code Code, message string) *Rich {
	return &Rich{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, code Code, message string) *Rich {
	return &Rich{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WithDetails adds technical details to the error.
func (e *Rich) WithDetails(details string) *Rich {
	e.Details = details
	return e
}

// WithSuggestions adds actionable suggestions.
func (e *Rich) WithSuggestions(suggestions ...string) *Rich {
	e.Suggestions = suggestions
	return e
}

// WithCause sets the underlying cause.
func (e *Rich) WithCause(cause error) *Rich {
	e.Cause = cause
	return e
}

// AsRich converts an error to a Rich error if possible.
func AsRich(err error) *Rich {
	var rich *Rich
	if errors.As(err, &rich) {
		return rich
	}
	return nil
}

// Palette colors used by Display.
var (
	colorError = lipgloss.Color("196")
	colorMuted = lipgloss.Color("243")
	colorText  = lipgloss.Color("252")
	colorInfo  = lipgloss.Color("39")
)

// Display formats the error as a bordered box, styled for the terminal
// behind w. Plain text is produced when w is not a terminal.
func Display(w io.Writer, err error) string {
	r := lipgloss.NewRenderer(w)

	rich := AsRich(err)
	if rich == nil {
		rich = Wrap(err, CodeUnknown, err.Error())
	}

	var b strings.Builder

	boxStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Padding(0, 1).
		Width(72)

	headerStyle := r.NewStyle().Foreground(colorError).Bold(true)
	codeStyle := r.NewStyle().Foreground(colorMuted).Italic(true)
	mutedStyle := r.NewStyle().Foreground(colorMuted)

	b.WriteString(headerStyle.Render("✗ Error"))
	b.WriteString(" ")
	b.WriteString(codeStyle.Render(fmt.Sprintf("[%s]", rich.Code)))
	b.WriteString("\n\n")

	b.WriteString(r.NewStyle().Foreground(colorText).Render(rich.Message))
	b.WriteString("\n")

	if rich.Details != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(rich.Details))
		b.WriteString("\n")
	}

	if rich.Cause != nil && rich.Cause.Error() != rich.Message {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Caused by: " + rich.Cause.Error()))
		b.WriteString("\n")
	}

	if len(rich.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(r.NewStyle().Foreground(colorInfo).Render("Suggestions:"))
		b.WriteString("\n")

		for _, s := range rich.Suggestions {
			b.WriteString("   • ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	return boxStyle.Render(b.String())
}

// DisplaySimple formats an error for non-TUI output.
func DisplaySimple(err error) string {
	rich := AsRich(err)
	if rich == nil {
		return fmt.Sprintf("Error: %v\n", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error [%s]: %s\n", rich.Code, rich.Message)

	if rich.Details != "" {
		fmt.Fprintf(&b, "  Details: %s\n", rich.Details)
	}

	if rich.Cause != nil {
		fmt.Fprintf(&b, "  Caused by: %v\n", rich.Cause)
	}

	if len(rich.Suggestions) > 0 {
		b.WriteString("  Suggestions:\n")
		for _, s := range rich.Suggestions {
			fmt.Fprintf(&b, "    - %s\n", s)
		}
	}

	return b.String()
}

// ConfigInvalid returns a config loading or validation error.
func ConfigInvalid(path string, cause error) *Rich {
	details := "Using search paths /etc/keysync, ~/.config/keysync and the working directory"
	if path != "" {
		details = fmt.Sprintf("File: %s", path)
	}
	return New(CodeConfigInvalid, "Configuration is invalid").
		WithDetails(details).
		WithCause(cause).
		WithSuggestions(
			"Run 'keysync config show' to see the effective configuration",
			"Run 'keysync config init' to generate a fresh config file",
		)
}

// LocaleInvalid returns the strict-mode refusal to overwrite a corrupt locale file.
func LocaleInvalid(path string, cause error) *Rich {
	return New(CodeLocaleInvalid, fmt.Sprintf("%s is not a valid JSON object; refusing to overwrite it", path)).
		WithCause(cause).
		WithSuggestions(
			"Fix the JSON syntax and run the sync again",
			"Set locale.strict to false to rebuild the file from discovered keys only",
		)
}

// LocaleWriteFailed returns an error for a failed locale save.
func LocaleWriteFailed(path string, cause error) *Rich {
	return New(CodeLocaleWriteFailed, fmt.Sprintf("Failed to write %s", path)).
		WithCause(cause).
		WithSuggestions(
			"Check permissions on the locale file and its directory",
		)
}
