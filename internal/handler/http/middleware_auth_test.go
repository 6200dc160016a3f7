package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/mock"
	"github.com/MKhiriev/go-vinted/internal/service"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/models"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "bearer token", header: "Bearer abc", wantToken: "abc"},
		{name: "scheme is case insensitive", header: "bearer abc", wantToken: "abc"},
		{name: "surrounding spaces", header: "  Bearer   abc  ", wantToken: "abc"},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "scheme and space", header: "Bearer ", wantErr: ErrInvalidAuthorizationHeader},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "raw token", header: "abc", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(m *mock.MockAuthService)
		wantStatus int
		wantBody   string
		wantNext   bool
	}{
		{
			name:       "no header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:       "not a bearer header",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:   "unknown token",
			header: "Bearer abc",
			setup: func(m *mock.MockAuthService) {
				m.EXPECT().Authenticate(gomock.Any(), "abc").
					Return(models.User{}, errors.Join(service.ErrUnauthorized, store.ErrUserNotFound))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:   "database unavailable",
			header: "Bearer abc",
			setup: func(m *mock.MockAuthService) {
				m.EXPECT().Authenticate(gomock.Any(), "abc").Return(models.User{}, store.ErrUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"message":"Service temporarily unavailable"}`,
		},
		{
			name:   "authenticated",
			header: "Bearer abc",
			setup: func(m *mock.MockAuthService) {
				m.EXPECT().Authenticate(gomock.Any(), "abc").Return(alice, nil)
			},
			wantStatus: http.StatusNoContent,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			authSvc := mock.NewMockAuthService(ctrl)
			if tt.setup != nil {
				tt.setup(authSvc)
			}
			h := &Handler{logger: logger.Nop(), services: &service.Services{AuthService: authSvc}}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				user, err := currentUser(r)
				require.NoError(t, err)
				assert.Equal(t, alice, user)
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodPost, "/offer/publish", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantNext, nextCalled)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	_, err := currentUser(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, err, errNoUserInContext)
	assert.Equal(t, http.StatusUnauthorized, statusFromError(err))
}
