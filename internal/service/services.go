package service

import (
	"fmt"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/crypto"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/media"
	"github.com/MKhiriev/go-vinted/internal/store"
)

type Services struct {
	AuthService    AuthService
	OfferService   OfferService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, uploader media.Uploader, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	keyChain, err := crypto.NewKeyChainService(cfg.App.PasswordHashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("init key chain: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(storages.UserRepository, keyChain, uploader, cfg.Media.Namespace, logger)
	offerService := NewOfferService(storages.OfferRepository, uploader, cfg.Media.Namespace, logger)

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(authService),
		OfferService:   NewOfferValidationService().Wrap(offerService),
		AppInfoService: appInfo,
	}, nil
}
