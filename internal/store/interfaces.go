package store

import (
	"context"

	"github.com/MKhiriev/go-vinted/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: accounts with their salt, password
// hash, bearer token and avatar.
type UserRepository interface {
	// CreateUser inserts user. A duplicate email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// ExistsByEmail reports whether an account with email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByToken(ctx context.Context, token string) (models.User, error)

	// UpdateAvatar replaces the avatar of userID with avatar (nil clears it),
	// provided the stored avatar still is previous. Otherwise it returns
	// ErrConcurrentModification.
	UpdateAvatar(ctx context.Context, userID string, previous, avatar *models.Image) error
}

// OfferRepository is the listing store.
type OfferRepository interface {
	// CreateOffer inserts offer with version 1.
	CreateOffer(ctx context.Context, offer models.Offer) (models.Offer, error)

	// FindOfferByID returns the offer with its owner's public fields.
	FindOfferByID(ctx context.Context, id string) (models.Offer, error)

	// UpdateOffer overwrites the mutable fields of offer if its stored
	// version still equals offer.Version, and returns the offer with the
	// incremented version. A stale version yields ErrConcurrentModification.
	UpdateOffer(ctx context.Context, offer models.Offer) (models.Offer, error)

	DeleteOffer(ctx context.Context, id string) error

	// CountOffers returns the number of offers matching filter.
	CountOffers(ctx context.Context, filter models.OfferFilter) (int, error)

	// FindOffers returns one page of offers matching query, owners joined.
	FindOffers(ctx context.Context, query models.OfferQuery) ([]models.Offer, error)
}
