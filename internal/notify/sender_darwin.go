//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"
)

// darwinSender implements Sender for macOS using osascript
type darwinSender struct {
	visualAvailable bool
}

// newDarwinSender creates a new macOS notification sender
func newDarwinSender() Sender {
	return &darwinSender{
		visualAvailable: toolAvailable("osascript"),
	}
}

// newLinuxSender returns a no-op sender on darwin
func newLinuxSender() Sender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on darwin
func newWindowsSender() Sender {
	return &noopSender{}
}

// SendVisual sends a visual notification using osascript
func (s *darwinSender) SendVisual(ctx context.Context, n Notification) error {
	if !s.visualAvailable {
		return ErrDesktopUnavailable
	}

	script := fmt.Sprintf(`display notification %q with title %q`, n.Body, n.Title)
	if n.NotificationType == TypeFailure {
		script += ` sound name "Basso"`
	}

	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	return cmd.Run()
}

// VisualAvailable returns true if osascript is available
func (s *darwinSender) VisualAvailable() bool {
	return s.visualAvailable
}
