// Package grpc exposes the operational gRPC surface of the marketplace: the
// standard grpc.health.v1.Health service and server reflection.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/MKhiriev/go-vinted/internal/logger"
)

// ServiceName is the health service name reported next to the overall ("")
// server status.
const ServiceName = "vinted.Marketplace"

// Handler is the root gRPC transport handler.
//
// It owns the health server whose status is flipped by [Handler.SetServing].
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The reported status starts as
// NOT_SERVING until the first successful database probe.
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health and reflection services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	reflection.Register(s)
}

// SetServing updates the reported health status.
func (h *Handler) SetServing(serving bool) {
	if serving {
		h.setStatus(healthpb.HealthCheckResponse_SERVING)
		return
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
}

// Shutdown sets every status to NOT_SERVING and ignores later updates, so
// watchers see the server going away before connections are drained.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
