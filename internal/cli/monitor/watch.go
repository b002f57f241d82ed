package monitor

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/cli/shared"
	apperrors "github.com/tellydone/tellydone/internal/errors"
	"github.com/tellydone/tellydone/internal/proc"
	"github.com/tellydone/tellydone/internal/progress"
	"github.com/tellydone/tellydone/internal/watch"
)

// errInterrupted is the cancel cause for a signal without --quiet-cancel.
var errInterrupted = errors.New("interrupted by signal")

const refreshEvery = time.Second

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <pid>",
		Short: "Notify when a running process exits",
		Long: `Watch an existing process and send a notification when it exits.

With --continuous, progress notifications are also sent while the process is
running, at most once per interval. Ctrl-C stops watching; the completion
notification is still sent unless --quiet-cancel is given.`,
		Example: `  # Notify when process 4242 exits
  tellydone watch 4242

  # Also report progress every 10 minutes
  tellydone watch 4242 --continuous --interval 10m`,
		Args:    cobra.ExactArgs(1),
		GroupID: shared.GroupMonitoring,
		RunE:    runWatch,
	}

	cmd.Flags().Bool("continuous", false, "Send progress notifications while the process runs")
	cmd.Flags().Bool("no-continuous", false, "Only notify when the process exits")
	cmd.MarkFlagsMutuallyExclusive("continuous", "no-continuous")
	cmd.Flags().String("interval", "", "Time between progress notifications (e.g. 30m, or seconds)")
	cmd.Flags().Bool("no-label", false, "Name the process by pid instead of its command line")
	cmd.Flags().Bool("quiet-cancel", false, "Do not notify when watching is interrupted")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	pid, err := parsePID(args[0])
	if err != nil {
		return apperrors.InvalidPID(args[0])
	}

	log := shared.Logger(cmd)
	cfg, err := shared.LoadConfig(cmd, log)
	if err != nil {
		return err
	}
	settings, err := applyWatchFlags(cmd, cfg.WatchSettings())
	if err != nil {
		return err
	}

	w, err := watch.New(pid, settings, shared.NewDispatcher(cfg, log), watch.WithLogger(log))
	if err != nil {
		return apperrors.NewArgumentError(err.Error())
	}

	cause := errInterrupted
	if quiet, _ := cmd.Flags().GetBool("quiet-cancel"); quiet {
		cause = watch.ErrSuppressNotification
	}
	ctx, stop := shared.SignalContext(cmd.Context(), cause)
	defer stop()

	display := progress.NewDisplay(displayCapabilities(cmd.ErrOrStderr()), cmd.ErrOrStderr())
	info := progress.SessionInfo{
		PID:        pid,
		Label:      w.Handle().Label,
		Continuous: settings.Continuous,
		Interval:   settings.Interval,
	}
	if err := display.Start(info); err != nil {
		log.Debug().Err(err).Msg("progress display unavailable")
	}
	defer display.Stop()

	done := make(chan struct{})
	go refreshDisplay(display, time.Now(), done)
	res := w.Run(ctx)
	close(done)

	if res.Interrupted {
		display.Interrupt(res.Elapsed)
		return shared.NewExitError(shared.ExitInterrupted)
	}
	display.Finish(res.Elapsed, res.Notified)
	return nil
}

func refreshDisplay(display *progress.Display, start time.Time, done <-chan struct{}) {
	ticker := time.NewTicker(refreshEvery)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			display.Refresh(now.Sub(start))
		}
	}
}

// applyWatchFlags overrides configured watch settings with explicit flags.
func applyWatchFlags(cmd *cobra.Command, settings watch.Config) (watch.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("continuous") {
		settings.Continuous, _ = flags.GetBool("continuous")
	}
	if flags.Changed("no-continuous") {
		off, _ := flags.GetBool("no-continuous")
		settings.Continuous = !off
	}
	if flags.Changed("interval") {
		raw, _ := flags.GetString("interval")
		interval, err := parseInterval(raw)
		if err != nil {
			return settings, apperrors.InvalidInterval(raw)
		}
		settings.Interval = interval
	}
	if noLabel, _ := flags.GetBool("no-label"); noLabel {
		settings.IncludeLabel = false
	}
	return settings, nil
}

// parsePID accepts a positive decimal process id.
func parsePID(s string) (int, error) {
	pid, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if pid <= 0 {
		return 0, proc.ErrInvalidPID
	}
	return pid, nil
}

// parseInterval accepts a Go duration ("90s", "30m") or a bare number of
// seconds.
func parseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, err
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return 0, watch.ErrInvalidInterval
	}
	return d, nil
}

// displayCapabilities detects the terminal only when drawing on the real
// stderr.
func displayCapabilities(w io.Writer) progress.TerminalCapabilities {
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		return progress.TerminalCapabilities{}
	}
	return progress.DetectTerminalCapabilities()
}
