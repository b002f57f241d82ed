package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/config"
	apperrors "github.com/tellydone/tellydone/internal/errors"
	"github.com/tellydone/tellydone/internal/logging"
	"github.com/tellydone/tellydone/internal/notify"
)

// Global flag names defined on the root command.
const (
	ConfigFlagName = "config"
	DebugFlagName  = "debug"
)

// Logger builds the console logger for cmd, honouring --debug.
func Logger(cmd *cobra.Command) zerolog.Logger {
	debug, _ := cmd.Flags().GetBool(DebugFlagName)
	return logging.New(cmd.ErrOrStderr(), debug)
}

// ConfigPaths returns the default config file candidates for the invoking
// user.
func ConfigPaths(log zerolog.Logger) config.Paths {
	home, err := config.HomeDir()
	if err != nil {
		log.Debug().Err(err).Msg("no home directory, using system config only")
	}
	return config.DefaultPaths(home)
}

// LoadConfig resolves the configuration from --config or the default
// paths, then the environment.
func LoadConfig(cmd *cobra.Command, log zerolog.Logger) (*config.Configuration, error) {
	explicit, _ := cmd.Flags().GetString(ConfigFlagName)
	cfg, err := config.Load(ConfigPaths(log), explicit, log)
	if err != nil {
		return nil, apperrors.InvalidConfig(err)
	}
	return cfg, nil
}

// NewDispatcher builds a dispatcher over the configured endpoints. Invalid
// addresses are logged and skipped; an empty set is allowed and sends nothing.
func NewDispatcher(cfg *config.Configuration, log zerolog.Logger) *notify.Dispatcher {
	endpoints := notify.BuildEndpoints(cfg.AppriseURL, log)
	if len(endpoints) == 0 {
		log.Warn().Str("source", cfg.Source).Msg("no notification endpoints configured")
	}
	return notify.NewDispatcher(endpoints,
		notify.WithLogger(log),
		notify.WithOptions(cfg.NotifyOptions()),
	)
}

// SignalContext returns a context cancelled with cause when SIGINT or
// SIGTERM arrives. The returned stop function releases the signal handler.
func SignalContext(parent context.Context, cause error) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancel(cause)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigs)
		close(done)
		cancel(context.Canceled)
	}
}

// IgnoreInterrupts swallows SIGINT and SIGTERM until the returned function
// is called. The terminal still delivers them to child processes.
func IgnoreInterrupts() func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
