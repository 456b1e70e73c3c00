// Package testing provides helpers for testing code that embeds the
// autoassign engine: a types.Logger that writes through testing.T and an
// embedded NATS server for notifier tests.
package testing
