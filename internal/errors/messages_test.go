// Package errors_test tests structured CLI error message generation and remediation steps.
// Related: internal/errors/messages.go
// Tags: errors, cli-errors, messages, remediation, error-categories
package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestInvalidPID(t *testing.T) {
	err := InvalidPID("abc")

	if err.Category != Argument {
		t.Errorf("Expected Argument category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, `"abc"`) {
		t.Errorf("Expected message to contain argument, got %q", err.Message)
	}
	if err.Usage == "" {
		t.Error("Expected non-empty usage")
	}
}

func TestMissingCommand(t *testing.T) {
	err := MissingCommand()

	if err.Category != Argument {
		t.Errorf("Expected Argument category, got %v", err.Category)
	}
	if !strings.Contains(err.Usage, "--") {
		t.Errorf("Expected usage to show the -- separator, got %q", err.Usage)
	}
	if len(err.Remediation) == 0 {
		t.Error("Expected remediation steps")
	}
}

func TestInvalidInterval(t *testing.T) {
	err := InvalidInterval("0s")

	if err.Category != Argument {
		t.Errorf("Expected Argument category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, "0s") {
		t.Error("Expected message to contain the value")
	}
}

func TestInvalidConfig(t *testing.T) {
	cause := stderrors.New("cfg.yml: field 'watch.interval': must be greater than 0")
	err := InvalidConfig(cause)

	if err.Category != Configuration {
		t.Errorf("Expected Configuration category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, "watch.interval") {
		t.Errorf("Expected message to contain cause, got %q", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected error to wrap its cause")
	}
}

func TestConfigExists(t *testing.T) {
	err := ConfigExists("/home/u/.telly_done")

	if err.Category != Configuration {
		t.Errorf("Expected Configuration category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, "/home/u/.telly_done") {
		t.Error("Expected message to contain path")
	}
}

func TestNonInteractive(t *testing.T) {
	err := NonInteractive("config init")

	if err.Category != Prerequisite {
		t.Errorf("Expected Prerequisite category, got %v", err.Category)
	}
}

func TestSpawnFailed(t *testing.T) {
	cause := stderrors.New("executable file not found in $PATH")
	err := SpawnFailed([]string{"nope", "--flag"}, cause)

	if err.Category != Runtime {
		t.Errorf("Expected Runtime category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, `"nope --flag"`) {
		t.Errorf("Expected message to contain the command, got %q", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected error to wrap its cause")
	}
}

func TestNoEndpoints(t *testing.T) {
	tests := map[string]struct {
		source string
		want   string
	}{
		"with source":    {source: "/etc/telly_done", want: "/etc/telly_done"},
		"without source": {source: "", want: "the configuration"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := NoEndpoints(tt.source)
			if err.Category != Prerequisite {
				t.Errorf("Expected Prerequisite category, got %v", err.Category)
			}
			if !strings.Contains(err.Message, tt.want) {
				t.Errorf("Expected message to contain %q, got %q", tt.want, err.Message)
			}
		})
	}
}

func TestDeliveryFailed(t *testing.T) {
	err := DeliveryFailed(stderrors.New("discord: unexpected status 404"))

	if err.Category != Runtime {
		t.Errorf("Expected Runtime category, got %v", err.Category)
	}
	if !strings.HasPrefix(err.Message, "notification was not delivered: ") {
		t.Errorf("unexpected message %q", err.Message)
	}
}
