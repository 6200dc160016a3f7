// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/handler"
	"github.com/MKhiriev/go-vinted/internal/logger"
)

// shutdownTimeout bounds the graceful shutdown of all transports.
const shutdownTimeout = 15 * time.Second

type server struct {
	transports []transport
	logger     *logger.Logger
}

// NewServer creates one transport per configured address. The gRPC listener
// is bound here so that a busy port fails startup.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.transports = append(servers.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.transports = append(servers.transports, grpcSrv)
	}

	if len(servers.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	if len(s.transports) == 0 {
		return errNoServersToRun
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	errs := make(chan error, len(s.transports))
	for _, t := range s.transports {
		s.logger.Info().Msgf("Launching %s server", t.name())
		go func() {
			if err := t.serve(); err != nil {
				errs <- fmt.Errorf("%s server: %w", t.name(), err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
		s.logger.Err(runErr).Msg("transport failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.Shutdown(shutdownCtx)

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) Shutdown(ctx context.Context) {
	for _, t := range s.transports {
		t.shutdown(ctx)
	}
}
