package notify

import "time"

// NotificationType represents the severity of a notification event
type NotificationType string

const (
	// TypeSuccess indicates a successful operation
	TypeSuccess NotificationType = "success"
	// TypeFailure indicates a failed operation
	TypeFailure NotificationType = "failure"
	// TypeInfo indicates an informational notification
	TypeInfo NotificationType = "info"
)

// Notification is a single message to dispatch. It is built fresh for every
// dispatch and never modified afterwards.
type Notification struct {
	// Title is the notification title (e.g., "Process finished: sleep 30")
	Title string

	// Body is the notification body text
	Body string

	// NotificationType indicates the event type: success, failure, or info
	NotificationType NotificationType
}

// NewNotification creates a new Notification with the given parameters
func NewNotification(title, body string, notificationType NotificationType) Notification {
	return Notification{
		Title:            title,
		Body:             body,
		NotificationType: notificationType,
	}
}

// Text renders the notification as plain text: the title on the first line
// followed by the body.
func (n Notification) Text() string {
	if n.Body == "" {
		return n.Title
	}
	if n.Title == "" {
		return n.Body
	}
	return n.Title + "\n" + n.Body
}

// Options holds dispatcher tuning loaded from the notify section of the config.
type Options struct {
	// Timeout bounds a single delivery attempt to one endpoint (default: 10s)
	Timeout time.Duration

	// RetryMax is the number of extra attempts after a failed delivery (default: 0)
	RetryMax int

	// RatePerSec caps delivery attempts per second across endpoints; 0 disables pacing
	RatePerSec int
}

// DefaultOptions returns the dispatcher defaults: one attempt per endpoint,
// a 10 second timeout and no pacing.
func DefaultOptions() Options {
	return Options{
		Timeout:    10 * time.Second,
		RetryMax:   0,
		RatePerSec: 0,
	}
}
