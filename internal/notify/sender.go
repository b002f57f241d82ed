package notify

import (
	"context"
	"os/exec"
	"runtime"
)

// Sender defines the interface for platform-specific desktop notification senders
type Sender interface {
	// SendVisual sends a visual notification to the OS notification system.
	// The helper process is killed when ctx ends.
	SendVisual(ctx context.Context, n Notification) error

	// VisualAvailable returns true if visual notifications are supported
	VisualAvailable() bool
}

// NewSender creates a platform-specific notification sender based on the current OS.
// It returns a sender appropriate for darwin (macOS), linux, or windows.
// For unsupported platforms, it returns a no-op sender.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinSender()
	case "linux":
		return newLinuxSender()
	case "windows":
		return newWindowsSender()
	default:
		return &noopSender{}
	}
}

// Platform returns the current operating system name
func Platform() string {
	return runtime.GOOS
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// noopSender is a sender that does nothing (for unsupported platforms)
type noopSender struct{}

func (s *noopSender) SendVisual(context.Context, Notification) error { return nil }
func (s *noopSender) VisualAvailable() bool                          { return false }
