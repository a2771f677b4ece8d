// Package ui formats terminal output for the weft CLI: colorized progress,
// success, and diagnostic messages. The Reporter here is the diagnostic
// channel scaffolding validation reports through.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter writes colorized diagnostics to a terminal stream.
type Reporter struct {
	out     io.Writer
	noColor bool

	errorCount int
}

// NewReporter writes to stderr with color enabled.
func NewReporter() *Reporter {
	return &Reporter{out: os.Stderr}
}

// NewReporterTo writes diagnostics to w; color is disabled, which keeps
// test output assertable.
func NewReporterTo(w io.Writer) *Reporter {
	return &Reporter{out: w, noColor: true}
}

// Errorf reports one error diagnostic.
func (r *Reporter) Errorf(format string, args ...any) {
	r.errorCount++
	c := color.New(color.FgRed, color.Bold)
	if r.noColor {
		c.DisableColor()
	}
	c.Fprintf(r.out, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Warnf reports one warning diagnostic.
func (r *Reporter) Warnf(format string, args ...any) {
	c := color.New(color.FgYellow)
	if r.noColor {
		c.DisableColor()
	}
	c.Fprintf(r.out, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// Infof reports progress.
func (r *Reporter) Infof(format string, args ...any) {
	c := color.New(color.FgCyan)
	if r.noColor {
		c.DisableColor()
	}
	c.Fprintf(r.out, "%s\n", fmt.Sprintf(format, args...))
}

// Successf reports a completed step.
func (r *Reporter) Successf(format string, args ...any) {
	c := color.New(color.FgGreen, color.Bold)
	if r.noColor {
		c.DisableColor()
	}
	c.Fprintf(r.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

// ErrorCount returns how many error diagnostics have been reported.
func (r *Reporter) ErrorCount() int {
	return r.errorCount
}
