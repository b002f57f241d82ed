package notify

import "context"

// desktopEndpoint shows a native OS notification through a Sender.
type desktopEndpoint struct {
	sender Sender
}

func newDesktopEndpoint(sender Sender) *desktopEndpoint {
	return &desktopEndpoint{sender: sender}
}

func (e *desktopEndpoint) Name() string { return "desktop://" }

func (e *desktopEndpoint) Send(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !e.sender.VisualAvailable() {
		return ErrDesktopUnavailable
	}
	return e.sender.SendVisual(ctx, n)
}
