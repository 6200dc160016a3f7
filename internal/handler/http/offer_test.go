// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vinted/internal/service"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/models"
)

func sampleOffer() models.Offer {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.Offer{
		ID:          "o-1",
		Title:       "Blue jacket",
		Description: "Barely worn",
		Price:       35,
		Details: models.OfferDetails{
			{Label: models.DetailBrand, Value: "Zara"},
			{Label: models.DetailSize, Value: "M"},
		},
		OwnerID:   alice.ID,
		Owner:     &models.Owner{ID: alice.ID, Account: alice.Account()},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

var offerFields = map[string]string{
	"title":       "Blue jacket",
	"description": "Barely worn",
	"price":       "35",
	"brand":       "Zara",
	"size":        "M",
	"condition":   "Good",
	"color":       "Blue",
	"city":        "Paris",
}

func TestPublishOffer(t *testing.T) {
	t.Run("published", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.expectAuthenticated()
		deps.offers.EXPECT().Publish(gomock.Any(), alice, gomock.Any()).DoAndReturn(
			func(_ any, _ models.User, req models.OfferRequest) (models.Offer, error) {
				assert.Equal(t, "Blue jacket", req.Title)
				assert.InDelta(t, 35.0, req.Price, 0)
				assert.Equal(t, "Paris", req.City)
				require.NotNil(t, req.Picture)
				assert.Equal(t, "jacket.png", req.Picture.Filename)
				return sampleOffer(), nil
			})

		req := newMultipartRequest(t, http.MethodPost, "/offer/publish", offerFields,
			&formFilePart{field: "picture", filename: "jacket.png", data: pngBytes})
		rr := deps.do(withBearer(req))

		require.Equal(t, http.StatusOK, rr.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "o-1", got["_id"])
		assert.Equal(t, "Blue jacket", got["product_name"])
		assert.Equal(t, []any{map[string]any{"MARQUE": "Zara"}, map[string]any{"TAILLE": "M"}}, got["product_details"])
		assert.Equal(t, map[string]any{"_id": "u-alice", "account": map[string]any{"username": "alice"}}, got["owner"])
	})

	t.Run("price is not a number", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.expectAuthenticated()

		fields := map[string]string{"title": "Jacket", "price": "cheap"}
		rr := deps.do(withBearer(newMultipartRequest(t, http.MethodPost, "/offer/publish", fields, nil)))

		assert.Equal(t, http.StatusRequestHeaderFieldsTooLarge, rr.Code)
		assert.JSONEq(t, `{"message":"Offer details are not valid"}`, rr.Body.String())
	})

	t.Run("invalid details", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.expectAuthenticated()
		deps.offers.EXPECT().Publish(gomock.Any(), alice, gomock.Any()).Return(models.Offer{}, service.ErrInvalidOfferDetails)

		fields := map[string]string{"title": "Jacket", "price": "100001"}
		rr := deps.do(withBearer(newMultipartRequest(t, http.MethodPost, "/offer/publish", fields, nil)))

		assert.Equal(t, http.StatusRequestHeaderFieldsTooLarge, rr.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.auth.EXPECT().Authenticate(gomock.Any(), "stale").Return(models.User{}, service.ErrUnauthorized)

		req := newMultipartRequest(t, http.MethodPost, "/offer/publish", offerFields, nil)
		req.Header.Set("Authorization", "Bearer stale")
		rr := deps.do(req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, rr.Body.String())
	})
}

func TestModifyOffer(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.expectAuthenticated()

		modified := sampleOffer()
		modified.Price = 30
		deps.offers.EXPECT().Modify(gomock.Any(), alice, "o-1", gomock.Any()).Return(modified, nil)

		fields := map[string]string{"title": "Blue jacket", "price": "30"}
		rr := deps.do(withBearer(newMultipartRequest(t, http.MethodPut, "/offer/modify/o-1", fields, nil)))

		require.Equal(t, http.StatusAccepted, rr.Code)

		var got struct {
			Message    string `json:"message"`
			FoundOffer struct {
				ID    string  `json:"_id"`
				Price float64 `json:"product_price"`
			} `json:"foundOffer"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Offer modifications saves", got.Message)
		assert.Equal(t, "o-1", got.FoundOffer.ID)
		assert.InDelta(t, 30.0, got.FoundOffer.Price, 0)
	})

	t.Run("not the owner", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.expectAuthenticated()
		deps.offers.EXPECT().Modify(gomock.Any(), alice, "o-2", gomock.Any()).Return(models.Offer{}, service.ErrForbidden)

		rr := deps.do(withBearer(newMultipartRequest(t, http.MethodPut, "/offer/modify/o-2", offerFields, nil)))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("concurrent update", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.expectAuthenticated()
		deps.offers.EXPECT().Modify(gomock.Any(), alice, "o-1", gomock.Any()).Return(models.Offer{}, store.ErrConcurrentModification)

		rr := deps.do(withBearer(newMultipartRequest(t, http.MethodPut, "/offer/modify/o-1", offerFields, nil)))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestDeleteOffer(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"deleted", nil, http.StatusAccepted, `{"message":"Offer deleted"}`},
		{"missing", store.ErrOfferNotFound, http.StatusNotFound, `{"message":"Offer not found"}`},
		{"not the owner", service.ErrForbidden, http.StatusForbidden, `{"message":"Forbidden"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t)
			deps.expectAuthenticated()
			deps.offers.EXPECT().Delete(gomock.Any(), alice, "o-1").Return(tt.err)

			rr := deps.do(withBearer(httptest.NewRequest(http.MethodDelete, "/offer/delete/o-1", nil)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestGetOffer(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.offers.EXPECT().Get(gomock.Any(), "o-1").Return(sampleOffer(), nil)

		rr := deps.do(httptest.NewRequest(http.MethodGet, "/offer/o-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"product_name":"Blue jacket"`)
	})

	t.Run("not found", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.offers.EXPECT().Get(gomock.Any(), "nope").Return(models.Offer{}, store.ErrOfferNotFound)

		rr := deps.do(httptest.NewRequest(http.MethodGet, "/offer/nope", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"message":"Offer not found"}`, rr.Body.String())
	})
}

func TestSearchOffers(t *testing.T) {
	t.Run("filters are parsed from the query", func(t *testing.T) {
		deps := newTestDeps(t)

		priceMax := 200.0
		deps.offers.EXPECT().Search(gomock.Any(), models.OfferFilter{
			Title:    "jacket",
			PriceMin: 10,
			PriceMax: &priceMax,
			Sort:     models.SortPriceDesc,
			Page:     2,
		}).Return(models.OffersPage{
			Count:  1,
			Offers: []models.Offer{sampleOffer()},
			Total:  3,
			Page:   2,
			Pages:  2,
		}, nil)

		rr := deps.do(httptest.NewRequest(http.MethodGet,
			"/offers?title=jacket&priceMin=10&priceMax=200&sort=price-desc&page=2", nil))

		require.Equal(t, http.StatusOK, rr.Code)

		var got models.OffersPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Count)
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 2, got.Pages)
		require.Len(t, got.Offers, 1)
	})

	t.Run("empty result", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.offers.EXPECT().Search(gomock.Any(), models.OfferFilter{Page: 1}).
			Return(models.OffersPage{Offers: []models.Offer{}, Page: 1, Pages: 1}, nil)

		rr := deps.do(httptest.NewRequest(http.MethodGet, "/offers", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"count":0,"offers":[],"total":0,"page":1,"pages":1}`, rr.Body.String())
	})
}
