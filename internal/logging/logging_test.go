// Package logging_test tests console logger construction and levels.
// Related: internal/logging/logging.go
// Tags: logging, zerolog
package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		debug     bool
		wantDebug bool
	}{
		"info by default":  {debug: false, wantDebug: false},
		"debug when asked": {debug: true, wantDebug: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := New(&buf, tt.debug)
			log.Debug().Msg("liveness check detail")
			log.Warn().Str("endpoint", "discord://1/…oken").Msg("delivery failed")

			out := buf.String()
			assert.Contains(t, out, "delivery failed")
			assert.Contains(t, out, "endpoint=")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("liveness check detail")))
		})
	}
}

func TestNew_NoColorForBuffers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, false)
	log.Info().Msg("plain")
	assert.Contains(t, buf.String(), "plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}
