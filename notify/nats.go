package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/taskwell/autoassign/types"
)

// ErrConnectionRequired is returned when the NATS connection is nil.
var ErrConnectionRequired = errors.New("NATS connection is required")

// DefaultSubjectPrefix is the subject prefix alerts publish under.
const DefaultSubjectPrefix = "workload.alerts"

// Alert is the JSON payload published for a workload notification.
type Alert struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Message   string         `json:"message"`
	Severity  types.Severity `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
}

// NATSNotifier implements types.NotificationSink on top of NATS.
//
// Alerts publish to "<prefix>.<severity>" so consumers can subscribe by
// severity. With a JetStream context configured the publish is durable and
// acknowledged; otherwise it is plain core NATS fire-and-forget, which
// matches the engine's delivery guarantees.
type NATSNotifier struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	prefix string
}

var _ types.NotificationSink = (*NATSNotifier)(nil)

// NotifierOption configures a NATSNotifier.
type NotifierOption func(*NATSNotifier)

// WithSubjectPrefix overrides the default "workload.alerts" subject prefix.
//
// Parameters:
//   - prefix: Subject prefix without a trailing dot
//
// Returns:
//   - NotifierOption: Configuration option
func WithSubjectPrefix(prefix string) NotifierOption {
	return func(n *NATSNotifier) {
		n.prefix = prefix
	}
}

// WithJetStream publishes alerts through JetStream for durable delivery.
// The alert subjects must be bound to an existing stream.
//
// Parameters:
//   - js: JetStream context created from the notifier's connection
//
// Returns:
//   - NotifierOption: Configuration option
func WithJetStream(js jetstream.JetStream) NotifierOption {
	return func(n *NATSNotifier) {
		n.js = js
	}
}

// NewNATSNotifier creates a NATS-backed notification sink.
//
// Parameters:
//   - nc: Connected NATS client
//   - opts: Optional configuration (WithSubjectPrefix, WithJetStream)
//
// Returns:
//   - *NATSNotifier: Initialized notifier
//   - error: ErrConnectionRequired when nc is nil
//
// Example:
//
//	nc, _ := nats.Connect(nats.DefaultURL)
//	sink, err := notify.NewNATSNotifier(nc)
//	engine, err := autoassign.NewEngine(&cfg, tasks, users, autoassign.WithNotifier(sink))
func NewNATSNotifier(nc *nats.Conn, opts ...NotifierOption) (*NATSNotifier, error) {
	if nc == nil {
		return nil, ErrConnectionRequired
	}

	n := &NATSNotifier{nc: nc, prefix: DefaultSubjectPrefix}
	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// Notify publishes a workload alert for the user.
//
// Parameters:
//   - ctx: Context for cancellation (honored by JetStream publishes)
//   - userID: Alerted user
//   - message: Human-readable alert text
//   - severity: Alert severity, also the subject suffix
//
// Returns:
//   - error: Marshal or publish failure
func (n *NATSNotifier) Notify(ctx context.Context, userID, message string, severity types.Severity) error {
	alert := Alert{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", n.prefix, severity)
	if n.js != nil {
		if _, err := n.js.Publish(ctx, subject, data); err != nil {
			return fmt.Errorf("publish alert to %s: %w", subject, err)
		}

		return nil
	}

	if err := n.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish alert to %s: %w", subject, err)
	}

	return nil
}

// Nop is a NotificationSink that discards all alerts.
type Nop struct{}

var _ types.NotificationSink = (*Nop)(nil)

// NewNop creates a sink that discards all alerts.
func NewNop() *Nop {
	return &Nop{}
}

// Notify discards the alert.
func (*Nop) Notify(_ context.Context, _, _ string, _ types.Severity) error {
	return nil
}
