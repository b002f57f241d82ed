// Package notify_test provides mock endpoints and senders for dispatch testing.
// Related: internal/notify/endpoint.go, internal/notify/sender.go
// Tags: notify, mocks, testing

package notify

import (
	"context"
	"errors"
	"sync"
)

// MockEndpoint records deliveries and returns a configured error.
type MockEndpoint struct {
	mu sync.Mutex

	name     string
	Err      error
	SendFunc func(context.Context, Notification) error

	Calls []Notification
}

// NewMockEndpoint creates a mock endpoint that accepts every notification.
func NewMockEndpoint(name string) *MockEndpoint {
	return &MockEndpoint{name: name}
}

// WithError configures the mock to fail every delivery with err.
func (m *MockEndpoint) WithError(err error) *MockEndpoint {
	m.Err = err
	return m
}

// WithSendFunc configures a custom send function.
func (m *MockEndpoint) WithSendFunc(fn func(context.Context, Notification) error) *MockEndpoint {
	m.SendFunc = fn
	return m
}

func (m *MockEndpoint) Name() string { return m.name }

func (m *MockEndpoint) Send(ctx context.Context, n Notification) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, n)
	fn, err := m.SendFunc, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, n)
	}
	return err
}

// CallCount returns the number of delivery attempts.
func (m *MockEndpoint) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSender is a mock desktop Sender.
type MockSender struct {
	mu sync.Mutex

	VisualError     error
	visualAvailable bool

	VisualCalls      []Notification
	LastNotification Notification
	LastContext      context.Context
}

// NewMockSender creates a new mock sender that is available and never fails.
func NewMockSender() *MockSender {
	return &MockSender{visualAvailable: true}
}

// WithVisualError configures the mock to return an error on SendVisual
func (m *MockSender) WithVisualError(err error) *MockSender {
	m.VisualError = err
	return m
}

// WithVisualAvailable configures whether visual notifications are available
func (m *MockSender) WithVisualAvailable(available bool) *MockSender {
	m.visualAvailable = available
	return m
}

// SendVisual records the call and returns configured error
func (m *MockSender) SendVisual(ctx context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VisualCalls = append(m.VisualCalls, n)
	m.LastNotification = n
	m.LastContext = ctx
	return m.VisualError
}

// VisualAvailable returns whether visual notifications are available
func (m *MockSender) VisualAvailable() bool {
	return m.visualAvailable
}

// Common test errors
var (
	ErrMockDelivery = errors.New("mock delivery error")
	ErrMockVisual   = errors.New("mock visual notification error")
)
