package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message while an indeterminate step runs, such as
// loading a project or walking its sources.
type Spinner struct {
	writer   io.Writer
	message  string
	interval time.Duration
	noColor  bool
	active   bool
	done     chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string, noColor bool) *Spinner {
	return &Spinner{
		writer:   w,
		message:  message,
		interval: 100 * time.Millisecond,
		noColor:  noColor,
		done:     make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.active = true
	go s.animate()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.done <- struct{}{}
	fmt.Fprint(s.writer, "\r\033[K")
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	cyan := color.New(color.FgCyan)
	if s.noColor {
		cyan.DisableColor()
	}

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			fmt.Fprint(s.writer, "\r\033[K")
			cyan.Fprintf(s.writer, "%s %s", spinnerFrames[frame], s.message)
			frame = (frame + 1) % len(spinnerFrames)
		}
	}
}

// WithSpinner runs fn under a spinner and reports the outcome on the
// same line the spinner occupied.
func WithSpinner(w io.Writer, message string, noColor bool, fn func() error) error {
	s := NewSpinner(w, message, noColor)
	s.Start()
	err := fn()
	s.Stop()

	status := color.New(color.FgGreen, color.Bold)
	mark := "✓"
	if err != nil {
		status = color.New(color.FgRed, color.Bold)
		mark = "✗"
	}
	if noColor {
		status.DisableColor()
	}
	status.Fprintf(w, "%s %s\n", mark, message)

	return err
}
