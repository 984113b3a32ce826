// Package store defines the record store port: durable key-value
// persistence for the serialized catalog snapshot. The catalog depends on
// this interface, never on a concrete client, so tests can inject a
// double.
package store

import "context"

// RecordStore holds one serialized collection under one key.
type RecordStore interface {
	// Read returns the stored snapshot. The second return value is false
	// when no snapshot exists.
	Read(ctx context.Context) ([]byte, bool, error)

	// Write overwrites the stored snapshot.
	Write(ctx context.Context, data []byte) error

	// Clear discards the stored snapshot. Clearing an absent snapshot is
	// not an error.
	Clear(ctx context.Context) error
}

// HealthChecker is implemented by stores backed by an external service.
type HealthChecker interface {
	IsHealthy(ctx context.Context) (bool, error)
}
