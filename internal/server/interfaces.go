package server

import "context"

// Server defines the lifecycle contract of the transports managed by this
// package.
type Server interface {
	// RunServer serves requests until ctx is cancelled, a stop signal
	// arrives or a transport fails. It returns after every transport
	// has been shut down.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context)
}

// transport is a single listener run by [server].
type transport interface {
	name() string
	serve() error
	shutdown(ctx context.Context)
}
