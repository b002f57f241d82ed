package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Outcome is the result of delivering one notification to one endpoint.
type Outcome struct {
	Endpoint string
	Attempts int
	Err      error
}

// Report collects the per-endpoint outcomes of a dispatch, in endpoint order.
// Callers are free to ignore it.
type Report struct {
	Outcomes []Outcome
}

// Delivered returns the number of endpoints that accepted the notification.
func (r Report) Delivered() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of endpoints that did not accept the notification.
func (r Report) Failed() int {
	return len(r.Outcomes) - r.Delivered()
}

// Err joins the endpoint failures, or returns nil when every endpoint succeeded.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Endpoint, o.Err))
		}
	}
	return errors.Join(errs...)
}

// Dispatcher fans notifications out to a fixed set of endpoints.
// It is safe for concurrent use.
type Dispatcher struct {
	endpoints []Endpoint
	log       zerolog.Logger
	timeout   time.Duration
	retryMax  int
	retryBase time.Duration
	limiter   *rate.Limiter
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithOptions applies timeout, retry and pacing settings from configuration.
func WithOptions(o Options) Option {
	return func(d *Dispatcher) {
		if o.Timeout > 0 {
			d.timeout = o.Timeout
		}
		if o.RetryMax > 0 {
			d.retryMax = o.RetryMax
		}
		if o.RatePerSec > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(o.RatePerSec), o.RatePerSec)
		}
	}
}

// WithRetryBackoff sets the base delay between retries; attempt i waits base*i.
func WithRetryBackoff(base time.Duration) Option {
	return func(d *Dispatcher) { d.retryBase = base }
}

// NewDispatcher creates a dispatcher for endpoints.
func NewDispatcher(endpoints []Endpoint, opts ...Option) *Dispatcher {
	def := DefaultOptions()
	d := &Dispatcher{
		endpoints: append([]Endpoint(nil), endpoints...),
		log:       zerolog.Nop(),
		timeout:   def.Timeout,
		retryMax:  def.RetryMax,
		retryBase: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Len returns the number of endpoints.
func (d *Dispatcher) Len() int {
	if d == nil {
		return 0
	}
	return len(d.endpoints)
}

// Dispatch delivers n to every endpoint and waits for all attempts to finish.
// Endpoint failures, timeouts and panics are recorded in the report and
// logged; they never abort delivery to the other endpoints.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) Report {
	if d.Len() == 0 {
		return Report{}
	}

	outcomes := make([]Outcome, len(d.endpoints))
	var g errgroup.Group
	for i, ep := range d.endpoints {
		g.Go(func() error {
			outcomes[i] = d.deliver(ctx, ep, n)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Outcomes: outcomes}
	d.log.Debug().
		Str("title", n.Title).
		Int("delivered", report.Delivered()).
		Int("failed", report.Failed()).
		Msg("notification dispatched")
	return report
}

func (d *Dispatcher) deliver(ctx context.Context, ep Endpoint, n Notification) Outcome {
	out := Outcome{Endpoint: ep.Name()}
	for attempt := 0; attempt <= d.retryMax; attempt++ {
		if attempt > 0 {
			delay := d.retryBase * time.Duration(attempt)
			d.log.Debug().Str("endpoint", out.Endpoint).Int("attempt", attempt+1).Dur("delay", delay).Msg("notification retry scheduled")
			if err := sleepCtx(ctx, delay); err != nil {
				out.Err = err
				break
			}
		}
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				out.Err = err
				break
			}
		}
		out.Attempts++
		out.Err = d.attempt(ctx, ep, n)
		if out.Err == nil {
			return out
		}
	}
	d.log.Warn().Str("endpoint", out.Endpoint).Int("attempts", out.Attempts).Err(out.Err).Msg("notification delivery failed")
	return out
}

// attempt runs one bounded send and converts a panicking endpoint into an error.
func (d *Dispatcher) attempt(ctx context.Context, ep Endpoint, n Notification) (err error) {
	actx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("endpoint panicked: %v", r)
		}
	}()
	return ep.Send(actx, n)
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
