// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/utils"
	"github.com/MKhiriev/go-vinted/models"
)

func (h *Handler) publishOffer(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	req, err := readOfferRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	offer, err := h.services.OfferService.Publish(r.Context(), user, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	offersPublishedTotal.Inc()
	utils.WriteJSON(w, offer, http.StatusOK)
}

func (h *Handler) modifyOffer(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	req, err := readOfferRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	offer, err := h.services.OfferService.Modify(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ModifyOfferResponse{
		Message:    "Offer modifications saves",
		FoundOffer: offer,
	}, http.StatusAccepted)
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err = h.services.OfferService.Delete(r.Context(), user, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("offer_id", id).Msg("offer deleted")
	utils.WriteMessage(w, "Offer deleted", http.StatusAccepted)
}

func (h *Handler) getOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.services.OfferService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, offer, http.StatusOK)
}

// searchOffers answers GET /offers?title=&priceMin=&priceMax=&sort=&page=.
func (h *Handler) searchOffers(w http.ResponseWriter, r *http.Request) {
	page, err := h.services.OfferService.Search(r.Context(), readOfferFilter(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}
