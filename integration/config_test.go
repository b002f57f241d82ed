// Package integration tests the full notification pipeline: configuration
// loading with environment overrides, endpoint construction, dispatch, and the
// watch and exec sessions built on top of it.
// Related: internal/config/config.go, internal/notify/dispatcher.go, internal/watch/watch.go, internal/lifecycle/lifecycle.go
// Tags: integration, config, env-vars, yaml, notify, watch, exec

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellydone/tellydone/internal/config"
	"github.com/tellydone/tellydone/internal/lifecycle"
	"github.com/tellydone/tellydone/internal/notify"
	"github.com/tellydone/tellydone/internal/watch"
)

type received struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type hook struct {
	srv  *httptest.Server
	mu   sync.Mutex
	msgs []received
}

func startHook(t *testing.T) *hook {
	t.Helper()
	h := &hook{}
	h.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg received
		_ = json.Unmarshal(body, &msg)
		h.mu.Lock()
		h.msgs = append(h.msgs, msg)
		h.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(h.srv.Close)
	return h
}

func (h *hook) address() string {
	return "json://" + strings.TrimPrefix(h.srv.URL, "http://") + "/hook"
}

func (h *hook) received() []received {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]received(nil), h.msgs...)
}

// pipeline loads configuration from path and builds the dispatcher the CLI
// would build from it.
func pipeline(t *testing.T, path string) (*config.Configuration, *notify.Dispatcher) {
	t.Helper()
	cfg, err := config.Load(config.Paths{}, path, zerolog.Nop())
	require.NoError(t, err)
	endpoints := notify.BuildEndpoints(cfg.AppriseURL, zerolog.Nop())
	return cfg, notify.NewDispatcher(endpoints, notify.WithOptions(cfg.NotifyOptions()))
}

// TestConfigLoading tests file and environment layering on all platforms.
// Not parallel: environment variables are process-wide.
func TestConfigLoading(t *testing.T) {
	tests := map[string]struct {
		configContent  string
		envVars        map[string]string
		wantInterval   int
		wantContinuous bool
		wantAddresses  int
	}{
		"defaults only": {
			configContent: "apprise_url: []\n",
			wantInterval:  1800,
		},
		"file values": {
			configContent: "apprise_url:\n  - json://localhost/a\nwatch:\n  continuous: true\n  interval: 60\n",
			wantInterval:   60,
			wantContinuous: true,
			wantAddresses:  1,
		},
		"single address string": {
			configContent: "apprise_url: json://localhost/a, json://localhost/b\n",
			wantInterval:  1800,
			wantAddresses: 2,
		},
		"env var override": {
			configContent: "watch:\n  interval: 60\n",
			envVars: map[string]string{
				"TELLYDONE_WATCH__INTERVAL":   "15",
				"TELLYDONE_WATCH__CONTINUOUS": "true",
				"TELLYDONE_APPRISE_URL":       "json://localhost/a json://localhost/b",
			},
			wantInterval:   15,
			wantContinuous: true,
			wantAddresses:  2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "telly_done")
			require.NoError(t, os.WriteFile(path, []byte(tt.configContent), 0o600))

			cfg, err := config.Load(config.Paths{}, path, zerolog.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.wantInterval, cfg.Watch.Interval)
			assert.Equal(t, tt.wantContinuous, cfg.Watch.Continuous)
			assert.Len(t, cfg.AppriseURL, tt.wantAddresses)
			assert.Equal(t, path, cfg.Source)
		})
	}
}

// TestConfigDiscovery tests that a broken discovered file is skipped in
// favour of the next candidate.
func TestConfigDiscovery(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "user")
	system := filepath.Join(dir, "system")
	require.NoError(t, os.WriteFile(broken, []byte("watch: [unclosed\n"), 0o600))
	require.NoError(t, os.WriteFile(system, []byte("watch:\n  interval: 42\n"), 0o600))

	cfg, err := config.Load(config.Paths{Candidates: []string{broken, system}}, "", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, system, cfg.Source)
	assert.Equal(t, 42, cfg.Watch.Interval)

	_, err = config.Load(config.Paths{}, broken, zerolog.Nop())
	assert.Error(t, err)
}

// TestDispatchThroughConfig sends one message through every configured
// endpoint, one of which is unreachable.
func TestDispatchThroughConfig(t *testing.T) {
	t.Parallel()

	h := startHook(t)
	dead := httptest.NewServer(http.NotFoundHandler())
	deadAddr := "json://" + strings.TrimPrefix(dead.URL, "http://") + "/gone"
	dead.Close()

	path := filepath.Join(t.TempDir(), "telly_done")
	content := "apprise_url:\n  - " + h.address() + "\n  - " + deadAddr + "\n  - notaurl\nnotify:\n  timeout: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, d := pipeline(t, path)
	require.Equal(t, 2, d.Len())

	report := d.Dispatch(context.Background(), notify.NewNotification("hello", "world", notify.TypeInfo))
	assert.Equal(t, 1, report.Delivered())
	assert.Equal(t, 1, report.Failed())

	msgs := h.received()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Title)
	assert.Equal(t, "world", msgs[0].Message)
}

// TestWatchSession watches a real child process until it exits.
func TestWatchSession(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sleep")
	}
	t.Parallel()

	h := startHook(t)
	path := filepath.Join(t.TempDir(), "telly_done")
	content := "apprise_url:\n  - " + h.address() + "\nwatch:\n  include_full_process_name: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg, d := pipeline(t, path)

	cmd := exec.Command("sleep", "0.3")
	require.NoError(t, cmd.Start())
	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	w, err := watch.New(cmd.Process.Pid, cfg.WatchSettings(), d)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res := w.Run(ctx)
	<-done

	assert.False(t, res.Interrupted)
	assert.True(t, res.Notified)
	msgs := h.received()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Process "+strconv.Itoa(cmd.Process.Pid)+" finished", msgs[0].Title)
	assert.Contains(t, msgs[0].Message, "Runned for")
	assert.Equal(t, "success", msgs[0].Type)
}

// TestExecSession runs a command and checks the reported outcome.
func TestExecSession(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	t.Parallel()

	tests := map[string]struct {
		script    string
		wantCode  int
		wantTitle string
		wantType  string
	}{
		"success": {script: "exit 0", wantCode: 0, wantTitle: lifecycle.TitleSucceeded, wantType: "success"},
		"failure": {script: "exit 3", wantCode: 3, wantTitle: lifecycle.TitleFailed, wantType: "failure"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h := startHook(t)
			path := filepath.Join(t.TempDir(), "telly_done")
			require.NoError(t, os.WriteFile(path, []byte("apprise_url: "+h.address()+"\n"), 0o600))
			_, d := pipeline(t, path)

			spawner := &lifecycle.ExecSpawner{Stdout: io.Discard, Stderr: io.Discard}
			res, err := lifecycle.Execute(context.Background(), d, spawner, []string{"sh", "-c", tt.script})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.ExitCode)

			msgs := h.received()
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.wantTitle, msgs[0].Title)
			assert.Equal(t, tt.wantType, msgs[0].Type)
			assert.Contains(t, msgs[0].Message, "Command: sh -c "+tt.script)
		})
	}
}
