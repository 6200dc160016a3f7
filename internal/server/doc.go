// Package server runs the marketplace transports: the HTTP API and the
// optional gRPC health listener. It owns their lifecycle from startup to
// graceful shutdown on SIGTERM, SIGINT or SIGQUIT.
package server
