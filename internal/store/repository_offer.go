// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/models"
	"github.com/jackc/pgerrcode"
)

// offerRepository is the SQL implementation of [OfferRepository] over the
// "offers" table. Reads join "users" to resolve the owner's public fields.
type offerRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOfferRepository constructs an [OfferRepository] backed by db.
func NewOfferRepository(db *DB, logger *logger.Logger) OfferRepository {
	logger.Debug().Msg("creating offer repository")
	return &offerRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *offerRepository) CreateOffer(ctx context.Context, offer models.Offer) (models.Offer, error) {
	log := logger.FromContext(ctx)

	details, err := encodeDetails(offer.Details)
	if err != nil {
		return models.Offer{}, err
	}

	if offer.Version == 0 {
		offer.Version = 1
	}

	query, args, err := r.db.insertOfferQuery(offer, details).ToSql()
	if err != nil {
		return models.Offer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*offerRepository.CreateOffer").Msg("error inserting offer")
		return models.Offer{}, r.db.translate(err, ErrExecutingStatement)
	}

	return offer, nil
}

func (r *offerRepository) FindOfferByID(ctx context.Context, id string) (models.Offer, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectOfferByIDQuery(id).ToSql()
	if err != nil {
		return models.Offer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	offer, err := scanOffer(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Offer{}, ErrOfferNotFound
	case postgresError(err) == pgerrcode.InvalidTextRepresentation:
		// malformed uuid
		return models.Offer{}, ErrOfferNotFound
	case errors.Is(err, ErrEncodingDetails):
		return models.Offer{}, err
	case err != nil:
		log.Err(err).Str("func", "*offerRepository.FindOfferByID").Msg("error selecting offer")
		return models.Offer{}, r.db.translate(err, ErrScanningRow)
	}

	return offer, nil
}

func (r *offerRepository) UpdateOffer(ctx context.Context, offer models.Offer) (models.Offer, error) {
	log := logger.FromContext(ctx)

	details, err := encodeDetails(offer.Details)
	if err != nil {
		return models.Offer{}, err
	}

	query, args, err := r.db.updateOfferQuery(offer, details).ToSql()
	if err != nil {
		return models.Offer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*offerRepository.UpdateOffer").Msg("error updating offer")
		return models.Offer{}, r.db.translate(err, ErrExecutingStatement)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Offer{}, r.db.translate(err, ErrExecutingStatement)
	}
	if affected == 0 {
		log.Warn().Str("func", "*offerRepository.UpdateOffer").Str("offer_id", offer.ID).
			Int64("version", offer.Version).Msg("offer changed or removed concurrently")
		return models.Offer{}, ErrConcurrentModification
	}

	offer.Version++
	return offer, nil
}

func (r *offerRepository) DeleteOffer(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.deleteOfferQuery(id).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*offerRepository.DeleteOffer").Msg("error deleting offer")
		return r.db.translate(err, ErrExecutingStatement)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.db.translate(err, ErrExecutingStatement)
	}
	if affected == 0 {
		return ErrOfferNotFound
	}

	return nil
}

func (r *offerRepository) CountOffers(ctx context.Context, filter models.OfferFilter) (int, error) {
	query, args, err := r.db.countOffersQuery(filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*offerRepository.CountOffers").Msg("error counting offers")
		return 0, r.db.translate(err, ErrExecutingQuery)
	}

	return count, nil
}

func (r *offerRepository) FindOffers(ctx context.Context, q models.OfferQuery) ([]models.Offer, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.searchOffersQuery(q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*offerRepository.FindOffers").Msg("error searching offers")
		return nil, r.db.translate(err, ErrExecutingQuery)
	}
	defer rows.Close()

	offers := make([]models.Offer, 0, q.Limit)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			log.Err(err).Str("func", "*offerRepository.FindOffers").Msg("error scanning offer")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		offers = append(offers, offer)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.translate(err, ErrScanningRows)
	}

	return offers, nil
}

func scanOffer(row rowScanner) (models.Offer, error) {
	var (
		offer                     models.Offer
		details                   []byte
		imageURL, imagePublicID   string
		owner                     models.Owner
		avatarURL, avatarPublicID string
	)

	err := row.Scan(
		&offer.ID, &offer.OwnerID, &offer.Title, &offer.Description, &offer.Price,
		&details, &imageURL, &imagePublicID, &offer.Version,
		&offer.CreatedAt, &offer.UpdatedAt,
		&owner.Account.Username, &avatarURL, &avatarPublicID,
	)
	if err != nil {
		return models.Offer{}, err
	}

	if offer.Details, err = decodeDetails(details); err != nil {
		return models.Offer{}, err
	}

	offer.Image = imageOrNil(imageURL, imagePublicID)
	owner.ID = offer.OwnerID
	owner.Account.Avatar = imageOrNil(avatarURL, avatarPublicID)
	offer.Owner = &owner

	return offer, nil
}

func encodeDetails(details models.OfferDetails) (string, error) {
	if details == nil {
		details = models.OfferDetails{}
	}
	b, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingDetails, err)
	}
	return string(b), nil
}

func decodeDetails(b []byte) (models.OfferDetails, error) {
	details := models.OfferDetails{}
	if len(b) == 0 {
		return details, nil
	}
	if err := json.Unmarshal(b, &details); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDetails, err)
	}
	return details, nil
}
