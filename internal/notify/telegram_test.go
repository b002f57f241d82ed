// Package notify_test tests Telegram delivery against a fake Bot API server.
// Related: internal/notify/telegram.go
// Tags: notify, telegram, telebot
package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramEndpoint_Send(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var paths, bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, string(data))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": map[string]any{
				"message_id": 1,
				"date":       0,
				"chat":       map[string]any{"id": 42, "type": "private"},
				"text":       "ok",
			},
		})
	}))
	t.Cleanup(srv.Close)

	ep, err := newTelegramEndpoint("123456:ABC/42/43")
	require.NoError(t, err)
	ep.apiURL = srv.URL

	err = ep.Send(context.Background(), NewNotification("Process finished: sleep 3", "Runned for  3.00 seconds.", TypeSuccess))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 2, "one request per chat")
	for _, p := range paths {
		assert.True(t, strings.HasSuffix(p, "/sendMessage"), p)
		assert.Contains(t, p, "123456:ABC")
	}
	assert.Contains(t, bodies[0], "42")
	assert.Contains(t, bodies[1], "43")
	assert.Contains(t, bodies[0], "Process finished: sleep 3")
}

func TestTelegramEndpoint_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	}))
	t.Cleanup(srv.Close)

	ep, err := newTelegramEndpoint("123456:ABC/42")
	require.NoError(t, err)
	ep.apiURL = srv.URL

	err = ep.Send(context.Background(), NewNotification("t", "b", TypeInfo))
	assert.Error(t, err)
}

func TestTelegramEndpoint_CancelledContext(t *testing.T) {
	t.Parallel()

	ep, err := newTelegramEndpoint("123456:ABC/42")
	require.NoError(t, err)
	ep.apiURL = "http://127.0.0.1:1"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ep.Send(ctx, NewNotification("t", "b", TypeInfo)), context.Canceled)
}
