package media

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/models"
)

// NewUploader builds the backend selected by cfg.Driver. Every call on the
// returned Uploader is bounded by cfg.RequestTimeout.
func NewUploader(ctx context.Context, cfg config.Media, log *logger.Logger) (Uploader, error) {
	var (
		uploader Uploader
		err      error
	)

	switch cfg.Driver {
	case config.MediaDriverCloudinary:
		uploader, err = NewCloudinaryUploader(cfg.Cloudinary, cfg.RequestTimeout, log)
	case config.MediaDriverS3:
		uploader, err = NewS3Uploader(ctx, cfg.S3, log)
	case config.MediaDriverLocal:
		uploader, err = NewLocalUploader(cfg.Local, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s media backend: %w", cfg.Driver, err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("media backend initialized")
	return WithTimeout(uploader, cfg.RequestTimeout), nil
}

type timeoutUploader struct {
	next    Uploader
	timeout time.Duration
}

// WithTimeout wraps next so that each call gets its own deadline.
// A non-positive timeout returns next unchanged.
func WithTimeout(next Uploader, timeout time.Duration) Uploader {
	if timeout <= 0 {
		return next
	}
	return &timeoutUploader{next: next, timeout: timeout}
}

func (t *timeoutUploader) Upload(ctx context.Context, folder string, file models.ImageFile) (models.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Upload(ctx, folder, file)
}

func (t *timeoutUploader) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Delete(ctx, publicID)
}

func (t *timeoutUploader) DeleteFolder(ctx context.Context, folder string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.DeleteFolder(ctx, folder)
}
