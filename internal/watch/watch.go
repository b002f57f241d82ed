// Package watch follows an already running process until it exits and
// reports on it through a notifier.
//
// The watcher polls for liveness rather than waiting on the process: the
// process is usually not our child, so no wait relationship exists. Between
// polls it sleeps a fixed quantum. In continuous mode a progress
// notification goes out whenever the interval throttle says one is due, and
// exactly one completion notification goes out when the process is gone.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tellydone/tellydone/internal/notify"
	"github.com/tellydone/tellydone/internal/proc"
	"github.com/tellydone/tellydone/internal/throttle"
)

// pollQuantum is the sleep between liveness probes. Sub-second precision on
// an interval measured in minutes has no value, so it is not configurable.
const pollQuantum = 100 * time.Millisecond

// DefaultInterval is the default time between progress notifications.
const DefaultInterval = 1800 * time.Second

var (
	// ErrSuppressNotification, used as the cancel cause of the context passed
	// to Run, stops the watch without sending the completion notification.
	ErrSuppressNotification = errors.New("completion notification suppressed")

	// ErrInvalidInterval is returned by New for a non-positive interval.
	ErrInvalidInterval = errors.New("watch interval must be positive")
)

// Config controls one watch session. It is immutable once the session starts.
type Config struct {
	// Continuous enables progress notifications while the process runs.
	Continuous bool
	// Interval is the minimum time between progress notifications.
	Interval time.Duration
	// IncludeLabel puts the process command line in titles instead of the pid.
	IncludeLabel bool
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Continuous:   false,
		Interval:     DefaultInterval,
		IncludeLabel: true,
	}
}

// Notifier dispatches a notification to every configured endpoint.
// *notify.Dispatcher satisfies it.
type Notifier interface {
	Dispatch(ctx context.Context, n notify.Notification) notify.Report
}

// Result summarizes a finished session.
type Result struct {
	Handle      proc.Handle
	Elapsed     time.Duration
	Progress    int  // progress notifications sent
	Interrupted bool // the context ended the session before the process exited
	Notified    bool // the completion notification was dispatched
}

// Watcher runs a single watch session.
type Watcher struct {
	pid      int
	cfg      Config
	notifier Notifier
	prober   proc.Prober
	log      zerolog.Logger
	handle   *proc.Handle

	quantum time.Duration
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for probe warnings and session events.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// WithProber replaces the operating-system prober.
func WithProber(p proc.Prober) Option {
	return func(w *Watcher) { w.prober = p }
}

// New validates the session parameters and returns a Watcher for pid.
func New(pid int, cfg Config, notifier Notifier, opts ...Option) (*Watcher, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("%w: %d", proc.ErrInvalidPID, pid)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, cfg.Interval)
	}
	if notifier == nil {
		return nil, errors.New("watch: nil notifier")
	}
	w := &Watcher{
		pid:      pid,
		cfg:      cfg,
		notifier: notifier,
		prober:   proc.System{},
		log:      zerolog.Nop(),
		quantum:  pollQuantum,
		now:      time.Now,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Handle returns the watched process with its label. The label is resolved
// on the first call only; Run uses the same handle.
func (w *Watcher) Handle() proc.Handle {
	if w.handle == nil {
		h := proc.Handle{PID: w.pid}
		if w.cfg.IncludeLabel {
			h.Label = w.prober.ResolveLabel(w.pid)
		}
		w.handle = &h
	}
	return *w.handle
}

// Run blocks until the process exits or ctx ends, then sends the completion
// notification. Cancellation still sends it, marked as interrupted, unless
// the cancel cause is ErrSuppressNotification.
func (w *Watcher) Run(ctx context.Context) Result {
	handle := w.Handle()
	res := Result{Handle: handle}

	log := w.log.With().Int("pid", w.pid).Logger()
	log.Debug().Str("label", handle.Display()).Bool("continuous", w.cfg.Continuous).Dur("interval", w.cfg.Interval).Msg("watch started")

	th := throttle.New(w.cfg.Interval)
	start := w.now()
	last := proc.StatusAlive

	for {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}

		st, err := w.prober.Check(w.pid)
		if st != last {
			logProbe(log, st, err)
			last = st
		}
		if !st.Alive() {
			break
		}

		if err := w.sleep(ctx, w.quantum); err != nil {
			res.Interrupted = true
			break
		}

		now := w.now()
		if th.Due(now) {
			if w.cfg.Continuous {
				w.notifier.Dispatch(ctx, progressNotification(handle, w.cfg.IncludeLabel, now.Sub(start)))
				res.Progress++
			}
			// Advance even without a notification so that enabling
			// continuous mode later never triggers a burst.
			th.Advance(now)
		}
	}

	res.Elapsed = w.now().Sub(start)

	if res.Interrupted && errors.Is(context.Cause(ctx), ErrSuppressNotification) {
		log.Info().Dur("elapsed", res.Elapsed).Msg("watch cancelled, completion notification suppressed")
		return res
	}

	n := completionNotification(handle, w.cfg.IncludeLabel, res.Elapsed, res.Interrupted)
	w.notifier.Dispatch(context.WithoutCancel(ctx), n)
	res.Notified = true
	log.Info().Dur("elapsed", res.Elapsed).Int("progress", res.Progress).Bool("interrupted", res.Interrupted).Msg("watch finished")
	return res
}

func logProbe(log zerolog.Logger, st proc.Status, err error) {
	switch st {
	case proc.StatusUnauthorized:
		log.Warn().Err(err).Msg("no permission to signal process, assuming it is still running")
	case proc.StatusUnknown:
		log.Warn().Err(err).Msg("liveness check failed, assuming process is still running")
	case proc.StatusGone:
		log.Debug().Msg("process exited")
	default:
		log.Debug().Msg("process is running")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
