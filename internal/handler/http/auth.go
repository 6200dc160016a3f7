package http

import (
	"net/http"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/service"
	"github.com/MKhiriev/go-vinted/internal/utils"
	"github.com/MKhiriev/go-vinted/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	req, err := readSignupRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	signupsTotal.Inc()
	log.Debug().Str("user_id", user.ID).Msg("user signed up")
	utils.WriteJSON(w, models.SignupResponse{
		Message: "Account successfully created",
		NewUser: models.NewSession(user),
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	req, err := readLoginRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", user.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, models.NewSession(user), http.StatusAccepted)
}

func (h *Handler) changeAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = parseForm(w, r); err != nil {
		h.writeError(w, r, err)
		return
	}

	avatar, err := formFile(r, "avatar")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if avatar.IsEmpty() {
		h.writeError(w, r, service.ErrNoImageSupplied)
		return
	}

	if _, err = h.services.AuthService.ChangeAvatar(r.Context(), user, avatar); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteMessage(w, "Avatar changed", http.StatusAccepted)
}
