// Package workers runs the background jobs of the marketplace server.
//
// It defines the Worker interface and a Workers aggregate that starts
// every configured worker in a unified way.
package workers

import "context"

// Worker is a background job. Run must return promptly; long running work
// happens in goroutines that stop when ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Pinger checks that a dependency is reachable. *store.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthReporter receives the result of every health probe.
type HealthReporter interface {
	SetServing(serving bool)
}
