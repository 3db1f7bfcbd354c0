// Package output renders the human-readable sync report.
//
// Every report line is plain text with optional styling. Styling comes from a
// lipgloss renderer bound to the destination writer, so piping the report to
// a file or another program yields the bare lines.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes report lines for one sync run.
type Printer struct {
	out io.Writer

	found   lipgloss.Style
	warn    lipgloss.Style
	errStyl lipgloss.Style
	added   lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinterTo creates a Printer writing to out. noColor disables styling
// even when out is a terminal.
func NewPrinterTo(out io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)
	style := func(color string) lipgloss.Style {
		if noColor {
			return r.NewStyle()
		}
		return r.NewStyle().Foreground(lipgloss.Color(color))
	}

	return &Printer{
		out:     out,
		found:   style("252"),
		warn:    style("214"),
		errStyl: style("196").Bold(!noColor),
		added:   style("42"),
		success: style("42").Bold(!noColor),
		muted:   style("243"),
	}
}

// Writer returns the destination writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}

// FileKeys reports the number of keys found in one file.
func (p *Printer) FileKeys(path string, n int) {
	p.line(p.found, "Found %d keys in %s", n, path)
}

// Skipped reports a file that could not be read as text.
func (p *Printer) Skipped(path string, cause error) {
	p.line(p.warn, "Skipping file %s: %v", path, cause)
}

// ProjectUnreadable reports a project root that could not be scanned.
func (p *Printer) ProjectUnreadable(dir string, cause error) {
	p.line(p.warn, "Warning: cannot scan project directory %s: %v", dir, cause)
}

// Total reports the number of distinct keys across the project.
func (p *Printer) Total(n int) {
	p.line(p.found, "Total unique keys found: %d", n)
}

// InvalidLocale reports a locale file that did not parse.
func (p *Printer) InvalidLocale(path string) {
	p.line(p.errStyl, "Error: %s is not a valid JSON file.", path)
}

// NoNewKeys reports that the locale file is already complete.
func (p *Printer) NoNewKeys() {
	p.line(p.muted, "No new keys to add.")
}

// Adding reports the keys about to be added, one per line.
func (p *Printer) Adding(path string, keys []string) {
	p.line(p.found, "Adding %d new keys to %s", len(keys), path)
	// Keys may hold tabs or newlines; only the marker goes through lipgloss.
	for _, k := range keys {
		fmt.Fprintf(p.out, "%s %s\n", p.added.Render("  +"), k)
	}
}

// Saved reports the final write of the locale file.
func (p *Printer) Saved(path string) {
	p.line(p.success, "Updated locales saved to %s", path)
}
