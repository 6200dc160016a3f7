package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/models"
)

type localUploader struct {
	dir       string
	publicURL string
	logger    *logger.Logger
}

// NewLocalUploader returns an [Uploader] writing images below cfg.Dir.
// The HTTP server exposes that directory under /media/.
func NewLocalUploader(cfg config.Local, log *logger.Logger) (Uploader, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &localUploader{
		dir:       cfg.Dir,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    log,
	}, nil
}

func (l *localUploader) Upload(ctx context.Context, folder string, file models.ImageFile) (models.Image, error) {
	prepared, err := prepare(file)
	if err != nil {
		return models.Image{}, err
	}
	if err = ctx.Err(); err != nil {
		return models.Image{}, err
	}

	publicID := path.Join(folder, prepared.name+prepared.ext)
	target, err := l.resolve(publicID)
	if err != nil {
		return models.Image{}, err
	}

	if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return models.Image{}, fmt.Errorf("create folder %s: %w", folder, err)
	}
	if err = os.WriteFile(target, prepared.data, 0o644); err != nil {
		return models.Image{}, fmt.Errorf("write %s: %w", publicID, err)
	}

	l.logger.Debug().Str("public_id", publicID).Msg("image stored on disk")
	return models.Image{URL: l.publicURL + "/" + escapeKey(publicID), PublicID: publicID}, nil
}

func (l *localUploader) Delete(ctx context.Context, publicID string) error {
	target, err := l.resolve(publicID)
	if err != nil {
		return err
	}
	if err = os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", publicID, err)
	}
	return nil
}

func (l *localUploader) DeleteFolder(ctx context.Context, folder string) error {
	target, err := l.resolve(folder)
	if err != nil {
		return err
	}
	if err = os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove folder %s: %w", folder, err)
	}
	return nil
}

// resolve maps a public id onto a path inside the media directory.
func (l *localUploader) resolve(publicID string) (string, error) {
	rel := filepath.FromSlash(strings.Trim(publicID, "/"))
	if rel == "" || rel == "." || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPublicID, publicID)
	}
	return filepath.Join(l.dir, rel), nil
}
