package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/media"
	"github.com/MKhiriev/go-vinted/internal/service"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/internal/validators"
)

func TestResponseFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"wrapped unauthorized wins over not found",
			fmt.Errorf("%w: %w", service.ErrUnauthorized, store.ErrUserNotFound), http.StatusUnauthorized, "Unauthorized"},
		{"username", service.ErrUsernameRequired, http.StatusBadRequest, "User name not specified"},
		{"missing parameters", fmt.Errorf("%w: email", service.ErrInvalidDataProvided), http.StatusBadRequest, "Missing parameters"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"offer not found", store.ErrOfferNotFound, http.StatusNotFound, "Offer not found"},
		{"duplicate email", store.ErrEmailAlreadyExists, http.StatusConflict, "This e-mail is already used"},
		{"too large", errRequestTooLarge, http.StatusRequestEntityTooLarge, "File too large"},
		{"not an image", media.ErrNotAnImage, http.StatusUnprocessableEntity, "File is not an image"},
		{"invalid offer", fmt.Errorf("%w: %w", validators.ErrInvalidOffer, validators.ErrInvalidPrice),
			http.StatusRequestHeaderFieldsTooLarge, "Offer details are not valid"},
		{"unavailable", store.ErrUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := responseFromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestWriteError_InternalErrors(t *testing.T) {
	tests := []struct {
		name     string
		hide     bool
		wantBody string
	}{
		{"echoed", false, `{"message":"disk on fire"}`},
		{"hidden", true, `{"message":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{hideInternalErrors: tt.hide, logger: logger.Nop()}

			rr := httptest.NewRecorder()
			h.writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("disk on fire"))

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
