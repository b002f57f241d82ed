// Package monitor tests the watch, exec and notify commands end to end
// against a local JSON webhook.
// Related: internal/cli/monitor/watch.go, internal/cli/monitor/exec.go, internal/cli/monitor/notify.go
// Tags: cli, monitor, watch, exec, notify
package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/tellydone/tellydone/internal/cli/shared"
)

// hookMessage is the body the json:// endpoint posts.
type hookMessage struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// webhook records JSON notifications posted to it.
type webhook struct {
	srv  *httptest.Server
	mu   sync.Mutex
	msgs []hookMessage
}

func newWebhook(t *testing.T, status int) *webhook {
	t.Helper()
	h := &webhook{}
	h.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg hookMessage
		_ = json.Unmarshal(body, &msg)
		h.mu.Lock()
		h.msgs = append(h.msgs, msg)
		h.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(h.srv.Close)
	return h
}

// address returns the json:// endpoint address of the webhook.
func (h *webhook) address() string {
	return "json://" + strings.TrimPrefix(h.srv.URL, "http://") + "/hook"
}

func (h *webhook) messages() []hookMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]hookMessage(nil), h.msgs...)
}

// writeTestConfig writes a config file with the given endpoints.
func writeTestConfig(t *testing.T, addresses ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("apprise_url:\n")
	for _, a := range addresses {
		fmt.Fprintf(&b, "  - %q\n", a)
	}
	b.WriteString("notify:\n  timeout: 5\n")
	path := filepath.Join(t.TempDir(), "telly.yml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

// runCommand executes the monitor commands under a minimal root.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	root := &cobra.Command{Use: "tellydone", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: shared.GroupGettingStarted, Title: "Getting Started:"})
	root.AddGroup(&cobra.Group{ID: shared.GroupMonitoring, Title: "Monitoring:"})
	root.PersistentFlags().StringP(shared.ConfigFlagName, "c", "", "")
	root.PersistentFlags().BoolP(shared.DebugFlagName, "d", false, "")
	Register(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}
