//go:build linux

package notify

import (
	"context"
	"os"
	"os/exec"
)

// linuxSender implements Sender for Linux using notify-send
type linuxSender struct {
	visualAvailable bool
}

// newLinuxSender creates a new Linux notification sender
func newLinuxSender() Sender {
	return &linuxSender{
		visualAvailable: toolAvailable("notify-send") && hasDisplay(),
	}
}

// newDarwinSender returns a no-op sender on linux
func newDarwinSender() Sender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on linux
func newWindowsSender() Sender {
	return &noopSender{}
}

// hasDisplay checks if a display environment is available
func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// SendVisual sends a visual notification using notify-send
func (s *linuxSender) SendVisual(ctx context.Context, n Notification) error {
	if !s.visualAvailable {
		return ErrDesktopUnavailable
	}

	urgency := "normal"
	if n.NotificationType == TypeFailure {
		urgency = "critical"
	}

	cmd := exec.CommandContext(ctx, "notify-send", "-a", "tellydone", "-u", urgency, n.Title, n.Body)
	return cmd.Run()
}

// VisualAvailable returns true if notify-send is available and display is present
func (s *linuxSender) VisualAvailable() bool {
	return s.visualAvailable
}
