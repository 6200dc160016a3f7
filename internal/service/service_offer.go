// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/media"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/internal/utils"
	"github.com/MKhiriev/go-vinted/models"
)

type offerService struct {
	offerRepository store.OfferRepository
	uploader        media.Uploader
	namespace       string

	ids utils.IDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewOfferService constructs an OfferService storing listings through
// offerRepository and their pictures through uploader, under
// <namespace>/offers/<offerID>.
func NewOfferService(offerRepository store.OfferRepository, uploader media.Uploader, namespace string, logger *logger.Logger) OfferService {
	return &offerService{
		offerRepository: offerRepository,
		uploader:        uploader,
		namespace:       namespace,
		ids:             utils.NewUUIDGenerator(),
		now:             time.Now,
		logger:          logger,
	}
}

func (s *offerService) Publish(ctx context.Context, owner models.User, req models.OfferRequest) (models.Offer, error) {
	log := logger.FromContext(ctx)

	now := s.now().UTC()
	offer := models.Offer{
		ID:          s.ids.Generate(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Details:     req.Details(),
		OwnerID:     owner.ID,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	folder := media.OfferFolder(s.namespace, offer.ID)
	if !req.Picture.IsEmpty() {
		image, err := s.uploader.Upload(ctx, folder, *req.Picture)
		if err != nil {
			log.Err(err).Str("offer_id", offer.ID).Msg("offer picture upload failed")
			return models.Offer{}, fmt.Errorf("offer picture upload failed: %w", err)
		}
		offer.Image = &image
	}

	created, err := s.offerRepository.CreateOffer(ctx, offer)
	if err != nil {
		log.Err(err).Str("offer_id", offer.ID).Msg("offer creation failed")
		if offer.Image != nil {
			s.cleanupFolder(ctx, folder)
		}
		return models.Offer{}, fmt.Errorf("offer creation failed: %w", err)
	}

	created.Owner = &models.Owner{ID: owner.ID, Account: owner.Account()}
	log.Info().Str("offer_id", created.ID).Msg("offer published")
	return created, nil
}

// Modify replaces title, description, price and details of the offer with
// the values of req; omitted values become empty. A new picture replaces the
// previous one, which is deleted from the media host first.
func (s *offerService) Modify(ctx context.Context, user models.User, id string, req models.OfferRequest) (models.Offer, error) {
	log := logger.FromContext(ctx).With().Str("offer_id", id).Logger()

	offer, err := s.ownedOffer(ctx, user, id)
	if err != nil {
		return models.Offer{}, err
	}

	offer.Title = req.Title
	offer.Description = req.Description
	offer.Price = req.Price
	offer.Details = req.Details()
	offer.UpdatedAt = s.now().UTC()

	var uploaded *models.Image
	if !req.Picture.IsEmpty() {
		if !offer.Image.IsZero() {
			if err = s.uploader.Delete(ctx, offer.Image.PublicID); err != nil {
				log.Err(err).Msg("old offer picture deletion failed")
				return models.Offer{}, fmt.Errorf("old offer picture deletion failed: %w", err)
			}
			offer.Image = nil
		}

		image, err := s.uploader.Upload(ctx, media.OfferFolder(s.namespace, offer.ID), *req.Picture)
		if err != nil {
			log.Err(err).Msg("offer picture upload failed")
			return models.Offer{}, fmt.Errorf("offer picture upload failed: %w", err)
		}
		uploaded = &image
		offer.Image = uploaded
	}

	updated, err := s.offerRepository.UpdateOffer(ctx, offer)
	if err != nil {
		log.Err(err).Msg("offer update failed")
		if uploaded != nil {
			if delErr := s.uploader.Delete(context.WithoutCancel(ctx), uploaded.PublicID); delErr != nil {
				log.Err(delErr).Str("public_id", uploaded.PublicID).Msg("orphaned offer picture cleanup failed")
			}
		}
		return models.Offer{}, fmt.Errorf("offer update failed: %w", err)
	}

	return updated, nil
}

// Delete removes every stored picture of the offer, then the offer itself.
func (s *offerService) Delete(ctx context.Context, user models.User, id string) error {
	log := logger.FromContext(ctx).With().Str("offer_id", id).Logger()

	offer, err := s.ownedOffer(ctx, user, id)
	if err != nil {
		return err
	}

	if err = s.uploader.DeleteFolder(ctx, media.OfferFolder(s.namespace, offer.ID)); err != nil {
		log.Err(err).Msg("offer media deletion failed")
		return fmt.Errorf("offer media deletion failed: %w", err)
	}

	if err = s.offerRepository.DeleteOffer(ctx, offer.ID); err != nil {
		log.Err(err).Msg("offer deletion failed")
		return fmt.Errorf("offer deletion failed: %w", err)
	}

	log.Info().Msg("offer deleted")
	return nil
}

func (s *offerService) Get(ctx context.Context, id string) (models.Offer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Offer{}, ErrBadRequest
	}

	offer, err := s.offerRepository.FindOfferByID(ctx, id)
	if err != nil {
		return models.Offer{}, fmt.Errorf("offer lookup failed: %w", err)
	}
	return offer, nil
}

// Search counts the matching offers first so that the requested page can be
// clamped to the last existing one before fetching it.
func (s *offerService) Search(ctx context.Context, filter models.OfferFilter) (models.OffersPage, error) {
	log := logger.FromContext(ctx)

	total, err := s.offerRepository.CountOffers(ctx, filter)
	if err != nil {
		log.Err(err).Msg("offer count failed")
		return models.OffersPage{}, fmt.Errorf("offer count failed: %w", err)
	}

	pages := models.TotalPages(total, models.OffersPerPage)
	page := models.ClampPage(filter.Page, pages)
	filter.Page = page

	offers := []models.Offer{}
	if total > 0 {
		offers, err = s.offerRepository.FindOffers(ctx, models.OfferQuery{
			OfferFilter: filter,
			Limit:       models.OffersPerPage,
			Offset:      uint64((page - 1) * models.OffersPerPage),
		})
		if err != nil {
			log.Err(err).Msg("offer search failed")
			return models.OffersPage{}, fmt.Errorf("offer search failed: %w", err)
		}
		if offers == nil {
			offers = []models.Offer{}
		}
	}

	return models.OffersPage{
		Count:  len(offers),
		Offers: offers,
		Total:  total,
		Page:   page,
		Pages:  pages,
	}, nil
}

func (s *offerService) ownedOffer(ctx context.Context, user models.User, id string) (models.Offer, error) {
	if strings.TrimSpace(id) == "" {
		return models.Offer{}, ErrBadRequest
	}

	offer, err := s.offerRepository.FindOfferByID(ctx, id)
	if err != nil {
		return models.Offer{}, fmt.Errorf("offer lookup failed: %w", err)
	}

	if offer.OwnerID != user.ID {
		logger.FromContext(ctx).Warn().
			Str("offer_id", id).
			Str("user_id", user.ID).
			Msg("offer belongs to another user")
		return models.Offer{}, ErrForbidden
	}
	return offer, nil
}

func (s *offerService) cleanupFolder(ctx context.Context, folder string) {
	if err := s.uploader.DeleteFolder(context.WithoutCancel(ctx), folder); err != nil {
		logger.FromContext(ctx).Err(err).Str("folder", folder).Msg("orphaned media cleanup failed")
	}
}
