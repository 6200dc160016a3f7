package service

import (
	"context"

	"github.com/MKhiriev/go-vinted/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages accounts: signup, login, bearer token resolution and
// avatar replacement.
type AuthService interface {
	// Signup creates an account, uploading the optional avatar, and returns
	// the stored user including its bearer token.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)

	// Login returns the user matching the credentials. Unknown email and
	// wrong password both yield ErrUnauthorized.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (models.User, error)

	// ChangeAvatar replaces the avatar of user with file.
	ChangeAvatar(ctx context.Context, user models.User, file *models.ImageFile) (models.User, error)
}

// OfferService manages product listings.
type OfferService interface {
	Publish(ctx context.Context, owner models.User, req models.OfferRequest) (models.Offer, error)

	// Modify replaces the fields of offer id with req. Only the owner may
	// modify an offer.
	Modify(ctx context.Context, user models.User, id string, req models.OfferRequest) (models.Offer, error)

	// Delete removes offer id together with every stored image of it.
	Delete(ctx context.Context, user models.User, id string) error

	Get(ctx context.Context, id string) (models.Offer, error)

	// Search returns one page of offers matching filter. Out-of-range pages
	// are clamped.
	Search(ctx context.Context, filter models.OfferFilter) (models.OffersPage, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
