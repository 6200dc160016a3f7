package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/media"
	"github.com/MKhiriev/go-vinted/internal/service"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/internal/utils"
	"github.com/MKhiriev/go-vinted/internal/validators"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is ordered: the first matching target wins, so wrapped
// errors carrying several sentinels resolve deterministically.
var errorResponses = []errorResponse{
	{service.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{errNoUserInContext, http.StatusUnauthorized, "Unauthorized"},

	{service.ErrUsernameRequired, http.StatusBadRequest, "User name not specified"},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, "Missing parameters"},
	{service.ErrBadRequest, http.StatusBadRequest, "Bad request"},
	{errMalformedBody, http.StatusBadRequest, "Bad request"},

	{service.ErrForbidden, http.StatusForbidden, "Forbidden"},

	{store.ErrOfferNotFound, http.StatusNotFound, "Offer not found"},

	{store.ErrEmailAlreadyExists, http.StatusConflict, "This e-mail is already used"},
	{store.ErrConcurrentModification, http.StatusConflict, "Resource was modified concurrently, please retry"},

	{errRequestTooLarge, http.StatusRequestEntityTooLarge, "File too large"},

	{service.ErrNoImageSupplied, http.StatusUnprocessableEntity, "No image supplied"},
	{media.ErrEmptyFile, http.StatusUnprocessableEntity, "No image supplied"},
	{media.ErrNotAnImage, http.StatusUnprocessableEntity, "File is not an image"},

	{service.ErrInvalidOfferDetails, http.StatusRequestHeaderFieldsTooLarge, "Offer details are not valid"},
	{validators.ErrInvalidOffer, http.StatusRequestHeaderFieldsTooLarge, "Offer details are not valid"},

	{store.ErrUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
}

func statusFromError(err error) int {
	status, _ := responseFromError(err)
	return status
}

// responseFromError returns the status code and public message for err.
// Unknown errors map to 500 with an empty message.
func responseFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, ""
}

// writeError answers with the JSON message matching err. Unknown failures
// echo err itself unless internal errors are hidden.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := responseFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if message == "" {
		message = err.Error()
		if h.hideInternalErrors {
			message = http.StatusText(status)
		}
	}
	utils.WriteMessage(w, message, status)
}
