// Package notify provides NotificationSink implementations for workload
// alerts.
//
// NATSNotifier publishes JSON alerts to severity-suffixed NATS subjects,
// optionally through JetStream when durable delivery is wanted. Nop
// discards alerts and exists so call sites can stay unconditional.
package notify
