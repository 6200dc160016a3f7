package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/utils"
	"github.com/MKhiriev/go-vinted/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, resolves it to a
// user via [service.AuthService.Authenticate] and, on success, stores the
// user in the request context under [utils.UserCtxKey] before delegating to
// the next handler. Each call performs exactly one read of the credential
// store.
//
// Every authentication failure is answered with 401 and the same body,
// {"message":"Unauthorized"}. Store failures are answered like any other
// error (500, or 503 when the database is unavailable).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := h.services.AuthService.Authenticate(r.Context(), token)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the form "Bearer <token>". The scheme
// is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	return strings.TrimSpace(token), nil
}

// currentUser returns the user stored by [Handler.auth].
func currentUser(r *http.Request) (models.User, error) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return models.User{}, errNoUserInContext
	}
	return user, nil
}
