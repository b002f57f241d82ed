package monitor

import (
	"net/http"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellydone/tellydone/internal/cli/shared"
	"github.com/tellydone/tellydone/internal/watch"
)

func TestParsePID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    int
		wantErr bool
	}{
		"valid":        {input: "4242", want: 4242},
		"padded":       {input: " 17 ", want: 17},
		"zero":         {input: "0", wantErr: true},
		"negative":     {input: "-5", wantErr: true},
		"not a number": {input: "abc", wantErr: true},
		"empty":        {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parsePID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInterval(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		"duration":        {input: "90s", want: 90 * time.Second},
		"minutes":         {input: "30m", want: 30 * time.Minute},
		"bare seconds":    {input: "60", want: time.Minute},
		"zero duration":   {input: "0s", wantErr: true},
		"zero seconds":    {input: "0", wantErr: true},
		"negative":        {input: "-1m", wantErr: true},
		"garbage":         {input: "soon", wantErr: true},
		"negative number": {input: "-10", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parseInterval(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyWatchFlags(t *testing.T) {
	t.Parallel()

	base := watch.Config{Continuous: false, Interval: 30 * time.Minute, IncludeLabel: true}

	tests := map[string]struct {
		args    []string
		base    watch.Config
		want    watch.Config
		wantErr bool
	}{
		"no flags keep config": {
			base: base,
			want: base,
		},
		"continuous on": {
			args: []string{"--continuous"},
			base: base,
			want: watch.Config{Continuous: true, Interval: 30 * time.Minute, IncludeLabel: true},
		},
		"continuous off": {
			args: []string{"--no-continuous"},
			base: watch.Config{Continuous: true, Interval: time.Minute, IncludeLabel: true},
			want: watch.Config{Continuous: false, Interval: time.Minute, IncludeLabel: true},
		},
		"interval and no label": {
			args: []string{"--interval", "45s", "--no-label"},
			base: base,
			want: watch.Config{Continuous: false, Interval: 45 * time.Second, IncludeLabel: false},
		},
		"bad interval": {
			args:    []string{"--interval", "0"},
			base:    base,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := newWatchCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			got, err := applyWatchFlags(cmd, tt.base)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatch_InvalidPID(t *testing.T) {
	t.Parallel()

	_, _, err := runCommand(t, "watch", "abc")

	require.Error(t, err)
	assert.Equal(t, shared.ExitInvalidArguments, shared.ExitCode(err))
}

func TestWatch_ContinuousFlagsExclusive(t *testing.T) {
	t.Parallel()

	_, _, err := runCommand(t, "watch", "1", "--continuous", "--no-continuous")
	require.Error(t, err)
}

func TestWatch_NotifiesWhenProcessExits(t *testing.T) {
	t.Parallel()
	requireShell(t)

	hook := newWebhook(t, http.StatusOK)
	cfg := writeTestConfig(t, hook.address())

	child := exec.Command("sleep", "0.3")
	require.NoError(t, child.Start())
	// Reap the child so it stops answering the liveness probe
	go func() { _ = child.Wait() }()

	_, stderr, err := runCommand(t, "--config", cfg, "watch", strconv.Itoa(child.Process.Pid), "--no-label")
	require.NoError(t, err)

	msgs := hook.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Process "+strconv.Itoa(child.Process.Pid)+" finished", msgs[0].Title)
	assert.Contains(t, msgs[0].Message, "Runned for ")
	assert.Contains(t, stderr, "finished after")
}

func TestWatchCmd_Flags(t *testing.T) {
	t.Parallel()

	cmd := newWatchCmd()
	for _, name := range []string{"continuous", "no-continuous", "interval", "no-label", "quiet-cancel"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, shared.GroupMonitoring, cmd.GroupID)
}
