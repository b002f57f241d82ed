package progress_test

import (
	"testing"
	"time"

	"github.com/tellydone/tellydone/internal/progress"
)

// TestSessionStatus_String tests the String() method of SessionStatus enum
func TestSessionStatus_String(t *testing.T) {
	tests := []struct {
		name   string
		status progress.SessionStatus
		want   string
	}{
		{name: "pending status", status: progress.SessionPending, want: "pending"},
		{name: "watching status", status: progress.SessionWatching, want: "watching"},
		{name: "finished status", status: progress.SessionFinished, want: "finished"},
		{name: "interrupted status", status: progress.SessionInterrupted, want: "interrupted"},
		{name: "unknown status", status: progress.SessionStatus(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("SessionStatus.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSessionInfo_Validate tests SessionInfo validation
func TestSessionInfo_Validate(t *testing.T) {
	tests := map[string]struct {
		info    progress.SessionInfo
		wantErr bool
	}{
		"valid one-shot": {
			info: progress.SessionInfo{PID: 10},
		},
		"valid continuous": {
			info: progress.SessionInfo{PID: 10, Continuous: true, Interval: time.Minute},
		},
		"zero pid": {
			info:    progress.SessionInfo{PID: 0},
			wantErr: true,
		},
		"continuous without interval": {
			info:    progress.SessionInfo{PID: 10, Continuous: true},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
