package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Display shows the state of one watch session. On a TTY it animates a
// spinner with the elapsed time; otherwise it prints one line per state
// change. Safe for concurrent use.
type Display struct {
	mu           sync.Mutex
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	spinner      *spinner.Spinner
	info         SessionInfo
	status       SessionStatus
}

// NewDisplay creates a display writing to out with the given terminal
// capabilities. A nil out writes to stderr.
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	if out == nil {
		out = os.Stderr
	}
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// Start begins displaying the session
func (d *Display) Start(info SessionInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopSpinnerLocked()
	d.info = info
	d.status = SessionWatching
	msg := buildWatchMessage(info, 0, d.capabilities.Width)

	if d.capabilities.IsTTY {
		// TTY mode: Start spinner animation
		d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, d.writerOption())
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
	} else {
		// Non-interactive mode: Just print the message
		fmt.Fprintln(d.out, msg)
	}
	return nil
}

// Refresh updates the elapsed time shown by the spinner. It prints nothing
// in non-interactive mode.
func (d *Display) Refresh(elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner == nil || d.status != SessionWatching {
		return
	}
	msg := buildWatchMessage(d.info, elapsed, d.capabilities.Width)
	d.spinner.Lock()
	d.spinner.Suffix = " " + msg
	d.spinner.Unlock()
}

// Finish stops the spinner and reports that the process exited
func (d *Display) Finish(elapsed time.Duration, notified bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopSpinnerLocked()
	d.status = SessionFinished

	mark := checkmark(d.symbols, d.capabilities.SupportsColor)
	line := fmt.Sprintf("%s %s finished after %s", mark, subject(d.info), formatElapsed(elapsed))
	if !notified {
		line += " (notification not sent)"
	}
	fmt.Fprintln(d.out, line)
}

// Interrupt stops the spinner and reports that the watch was cancelled
func (d *Display) Interrupt(elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopSpinnerLocked()
	d.status = SessionInterrupted

	mark := failureMark(d.symbols, d.capabilities.SupportsColor)
	fmt.Fprintf(d.out, "%s watch of %s interrupted after %s\n", mark, subject(d.info), formatElapsed(elapsed))
}

// Stop stops the spinner without printing a final line
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopSpinnerLocked()
}

// Status returns the current session status
func (d *Display) Status() SessionStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Display) stopSpinnerLocked() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// writerOption makes the spinner check the terminal it actually draws on.
func (d *Display) writerOption() spinner.Option {
	if f, ok := d.out.(*os.File); ok {
		return spinner.WithWriterFile(f)
	}
	return spinner.WithWriter(d.out)
}
