package http

import (
	"time"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout     time.Duration
	hideInternalErrors bool
	allowedOrigins     []string

	// mediaDir is served under /media/ when images are stored locally.
	mediaDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:           services,
		requestTimeout:     cfg.Server.RequestTimeout,
		hideInternalErrors: cfg.Server.HideInternalErrors,
		allowedOrigins:     cfg.Server.AllowedOrigins,
		logger:             logger,
	}
	if cfg.Media.Driver == config.MediaDriverLocal {
		h.mediaDir = cfg.Media.Local.Dir
	}

	logger.Info().Msg("http handler created")
	return h
}
