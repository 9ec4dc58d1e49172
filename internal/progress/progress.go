package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Display shows a spinner while a blocking step runs.
type Display struct {
	enabled bool
	writer  io.Writer
	spinner *spinner.Spinner
}

// New returns a Display writing to stderr. The spinner only animates when
// show is set and stderr is a terminal.
func New(show bool) *Display {
	return &Display{
		enabled: show && term.IsTerminal(int(os.Stderr.Fd())),
		writer:  os.Stderr,
	}
}

// Enabled reports whether Start will animate anything.
func (d *Display) Enabled() bool {
	return d != nil && d.enabled
}

// Start begins the spinner with msg as its suffix. A running spinner is
// replaced.
func (d *Display) Start(msg string) {
	if !d.Enabled() {
		return
	}
	d.Stop()
	d.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(d.writer))
	d.spinner.Suffix = " " + msg
	d.spinner.Start()
}

// Stop halts the spinner if one is running.
func (d *Display) Stop() {
	if d == nil || d.spinner == nil {
		return
	}
	d.spinner.Stop()
	d.spinner = nil
}

// Track runs fn with the spinner shown for its duration.
func (d *Display) Track(msg string, fn func() error) error {
	d.Start(msg)
	defer d.Stop()
	return fn()
}
