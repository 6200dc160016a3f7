package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-vinted/internal/utils"
)

const traceIDKey = "x-trace-id"

// UnaryLogging attaches a trace-scoped logger to the call context and writes
// one log line per unary call.
func (h *Handler) UnaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	l, ctx := h.logger.WithTraceID(ctx, traceIDFromMetadata(ctx))

	start := time.Now()
	resp, err := next(ctx, req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

func traceIDFromMetadata(ctx context.Context) string {
	var candidate string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 {
			candidate = values[0]
		}
	}
	return utils.TraceIDOrNew(candidate)
}
