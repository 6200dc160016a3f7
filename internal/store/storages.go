package store

import "github.com/MKhiriev/go-vinted/internal/logger"

// Storages groups every repository the services depend on.
type Storages struct {
	UserRepository  UserRepository
	OfferRepository OfferRepository
}

// NewStorages builds all repositories on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		OfferRepository: NewOfferRepository(db, log),
	}
}
