package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vinted/internal/validators"
	"github.com/MKhiriev/go-vinted/models"
)

// AuthValidationService validates signup requests before they reach the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	err := v.validator.Validate(ctx, req)
	switch {
	case err == nil:
		return v.inner.Signup(ctx, req)
	case errors.Is(err, validators.ErrEmptyUsername):
		return models.User{}, ErrUsernameRequired
	default:
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, ErrUnauthorized
	}
	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, token string) (models.User, error) {
	return v.inner.Authenticate(ctx, token)
}

func (v *AuthValidationService) ChangeAvatar(ctx context.Context, user models.User, file *models.ImageFile) (models.User, error) {
	return v.inner.ChangeAvatar(ctx, user, file)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

// OfferValidationService checks offer forms and search filters before they
// reach the wrapped OfferService.
type OfferValidationService struct {
	inner     OfferService
	validator validators.Validator
}

func NewOfferValidationService() OfferServiceWrapper {
	return &OfferValidationService{
		validator: validators.NewOfferValidator(),
	}
}

func (v *OfferValidationService) Publish(ctx context.Context, owner models.User, req models.OfferRequest) (models.Offer, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Offer{}, fmt.Errorf("%w: %w", ErrInvalidOfferDetails, err)
	}
	return v.inner.Publish(ctx, owner, req)
}

func (v *OfferValidationService) Modify(ctx context.Context, user models.User, id string, req models.OfferRequest) (models.Offer, error) {
	if id == "" {
		return models.Offer{}, ErrBadRequest
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Offer{}, fmt.Errorf("%w: %w", ErrInvalidOfferDetails, err)
	}
	return v.inner.Modify(ctx, user, id, req)
}

func (v *OfferValidationService) Delete(ctx context.Context, user models.User, id string) error {
	if id == "" {
		return ErrBadRequest
	}
	return v.inner.Delete(ctx, user, id)
}

func (v *OfferValidationService) Get(ctx context.Context, id string) (models.Offer, error) {
	if id == "" {
		return models.Offer{}, ErrBadRequest
	}
	return v.inner.Get(ctx, id)
}

// Search normalises filter: unknown sort orders are ignored, a negative
// minimum price becomes 0 and non-positive pages become 1.
func (v *OfferValidationService) Search(ctx context.Context, filter models.OfferFilter) (models.OffersPage, error) {
	switch filter.Sort {
	case models.SortPriceAsc, models.SortPriceDesc:
	default:
		filter.Sort = models.SortNone
	}
	if filter.PriceMin < 0 {
		filter.PriceMin = 0
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	return v.inner.Search(ctx, filter)
}

func (v *OfferValidationService) Wrap(wrapped OfferService) OfferService {
	v.inner = wrapped
	return v
}
