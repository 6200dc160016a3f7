// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vinted/internal/crypto"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/mock"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/models"
)

type authMocks struct {
	users    *mock.MockUserRepository
	keyChain *mock.MockKeyChainService
	uploader *mock.MockUploader
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller, ids ...string) (*authService, authMocks) {
	t.Helper()
	m := authMocks{
		users:    mock.NewMockUserRepository(ctrl),
		keyChain: mock.NewMockKeyChainService(ctrl),
		uploader: mock.NewMockUploader(ctrl),
	}

	svc := NewAuthService(m.users, m.keyChain, m.uploader, "vinted", logger.Nop()).(*authService)
	generated := fixedIDs(ids)
	svc.ids = &generated
	svc.now = fixedClock
	return svc, m
}

func signupRequest() models.SignupRequest {
	return models.SignupRequest{
		Email:      "alice@example.com",
		Password:   "secret",
		Username:   "alice",
		Newsletter: true,
	}
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestAuthService_Signup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl, "u1")
	ctx := context.Background()

	gomock.InOrder(
		m.users.EXPECT().ExistsByEmail(ctx, "alice@example.com").Return(false, nil),
		m.keyChain.EXPECT().GenerateSalt().Return("salt", nil),
		m.keyChain.EXPECT().HashPassword("secret", "salt").Return("hash", nil),
		m.keyChain.EXPECT().GenerateToken().Return("token", nil),
		m.users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "u1", u.ID)
				assert.Equal(t, "salt", u.PasswordSalt)
				assert.Equal(t, "hash", u.PasswordHash)
				assert.Equal(t, "token", u.Token)
				assert.True(t, u.Newsletter)
				assert.Equal(t, testNow, u.CreatedAt)
				assert.Nil(t, u.Avatar)
				return u, nil
			},
		),
	)

	user, err := svc.Signup(ctx, signupRequest())

	require.NoError(t, err)
	assert.Equal(t, "token", user.Token)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_Signup_WithAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl, "u1")
	ctx := context.Background()

	req := signupRequest()
	req.Avatar = &models.ImageFile{Filename: "me.png", Data: pngBytes}
	avatar := models.Image{URL: "https://cdn/u1/a.png", PublicID: "vinted/users/u1/a"}

	m.users.EXPECT().ExistsByEmail(ctx, gomock.Any()).Return(false, nil)
	m.keyChain.EXPECT().GenerateSalt().Return("salt", nil)
	m.keyChain.EXPECT().HashPassword(gomock.Any(), gomock.Any()).Return("hash", nil)
	m.keyChain.EXPECT().GenerateToken().Return("token", nil)
	m.uploader.EXPECT().Upload(ctx, "vinted/users/u1", *req.Avatar).Return(avatar, nil)
	m.users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) { return u, nil },
	)

	user, err := svc.Signup(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, avatar, *user.Avatar)
}

func TestAuthService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.SignupRequest)
		wantErr error
	}{
		{name: "no username", mutate: func(r *models.SignupRequest) { r.Username = "  " }, wantErr: ErrUsernameRequired},
		{name: "no email", mutate: func(r *models.SignupRequest) { r.Email = "" }, wantErr: ErrInvalidDataProvided},
		{name: "no password", mutate: func(r *models.SignupRequest) { r.Password = "" }, wantErr: ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _ := newTestAuthSvc(t, ctrl)

			req := signupRequest()
			tt.mutate(&req)

			_, err := svc.Signup(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Signup_DuplicateEmail_NoUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)

	req := signupRequest()
	req.Avatar = &models.ImageFile{Data: pngBytes}

	m.users.EXPECT().ExistsByEmail(gomock.Any(), req.Email).Return(true, nil)

	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Signup_InsertRace_CleansAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl, "u1")

	req := signupRequest()
	req.Avatar = &models.ImageFile{Data: pngBytes}

	m.users.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
	m.keyChain.EXPECT().GenerateSalt().Return("salt", nil)
	m.keyChain.EXPECT().HashPassword(gomock.Any(), gomock.Any()).Return("hash", nil)
	m.keyChain.EXPECT().GenerateToken().Return("token", nil)
	m.uploader.EXPECT().Upload(gomock.Any(), "vinted/users/u1", gomock.Any()).
		Return(models.Image{PublicID: "vinted/users/u1/a"}, nil)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)
	m.uploader.EXPECT().DeleteFolder(gomock.Any(), "vinted/users/u1").Return(nil)

	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Signup_SaltError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)

	m.users.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
	m.keyChain.EXPECT().GenerateSalt().Return("", errors.New("entropy exhausted"))

	_, err := svc.Signup(context.Background(), signupRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salt generation failed")
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	stored := models.User{ID: "u1", Email: "alice@example.com", PasswordSalt: "salt", PasswordHash: "hash", Token: "token"}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestAuthSvc(t, ctrl)

		m.users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
		m.keyChain.EXPECT().VerifyPassword("secret", "salt", "hash").Return(true)

		user, err := svc.Login(context.Background(), models.LoginRequest{Email: " alice@example.com ", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "token", user.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestAuthSvc(t, ctrl)

		m.users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
		m.keyChain.EXPECT().VerifyPassword("wrong", "salt", "hash").Return(false)
		m.users.EXPECT().FindUserByEmail(gomock.Any(), "bob@example.com").Return(models.User{}, store.ErrUserNotFound)

		_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{Email: "bob@example.com", Password: "secret"})

		assert.Equal(t, ErrUnauthorized, wrongPassword)
		assert.Equal(t, ErrUnauthorized, unknownEmail)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestAuthSvc(t, ctrl)

		m.users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUnavailable)

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "x"})
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})
}

// Signup followed by login with the right and a wrong password, using the
// real key chain so the stored hash is exercised end to end.
func TestAuthService_SignupThenLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	keyChain, err := crypto.NewKeyChainService(crypto.AlgorithmSHA256)
	require.NoError(t, err)

	svc := NewAuthService(users, keyChain, mock.NewMockUploader(ctrl), "vinted", logger.Nop())

	var saved models.User
	users.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			saved = u
			return u, nil
		},
	)
	users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").DoAndReturn(
		func(context.Context, string) (models.User, error) { return saved, nil },
	).Times(2)

	created, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	assert.Len(t, created.Token, crypto.TokenLength)
	assert.Len(t, created.PasswordSalt, crypto.SaltLength)

	loggedIn, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, loggedIn.ID)
	assert.Equal(t, created.Token, loggedIn.Token)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "Secret"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	m.users.EXPECT().FindUserByToken(ctx, "good").Return(models.User{ID: "u1"}, nil)
	user, err := svc.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	m.users.EXPECT().FindUserByToken(ctx, "bad").Return(models.User{}, store.ErrUserNotFound)
	_, err = svc.Authenticate(ctx, "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	m.users.EXPECT().FindUserByToken(ctx, "down").Return(models.User{}, store.ErrUnavailable)
	_, err = svc.Authenticate(ctx, "down")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

// ── ChangeAvatar ─────────────────────────────────────────────────────────────

func TestAuthService_ChangeAvatar_ReplacesOldFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	old := &models.Image{URL: "https://cdn/old.png", PublicID: "vinted/users/u1/old"}
	fresh := models.Image{URL: "https://cdn/new.png", PublicID: "vinted/users/u1/new"}
	file := &models.ImageFile{Data: pngBytes}

	gomock.InOrder(
		m.uploader.EXPECT().Delete(ctx, "vinted/users/u1/old").Return(nil),
		m.uploader.EXPECT().Upload(ctx, "vinted/users/u1", *file).Return(fresh, nil),
		m.users.EXPECT().UpdateAvatar(ctx, "u1", old, &fresh).Return(nil),
	)

	user, err := svc.ChangeAvatar(ctx, models.User{ID: "u1", Avatar: old}, file)

	require.NoError(t, err)
	assert.Equal(t, fresh, *user.Avatar)
}

func TestAuthService_ChangeAvatar_NoImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ChangeAvatar(context.Background(), models.User{ID: "u1"}, nil)
	assert.ErrorIs(t, err, ErrNoImageSupplied)

	_, err = svc.ChangeAvatar(context.Background(), models.User{ID: "u1"}, &models.ImageFile{})
	assert.ErrorIs(t, err, ErrNoImageSupplied)
}

func TestAuthService_ChangeAvatar_LostRace_RemovesUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)

	fresh := models.Image{PublicID: "vinted/users/u1/new"}
	m.uploader.EXPECT().Upload(gomock.Any(), "vinted/users/u1", gomock.Any()).Return(fresh, nil)
	m.users.EXPECT().UpdateAvatar(gomock.Any(), "u1", gomock.Nil(), gomock.Any()).Return(store.ErrConcurrentModification)
	m.uploader.EXPECT().Delete(gomock.Any(), "vinted/users/u1/new").Return(nil)

	_, err := svc.ChangeAvatar(context.Background(), models.User{ID: "u1"}, &models.ImageFile{Data: pngBytes})
	assert.ErrorIs(t, err, store.ErrConcurrentModification)
}

func TestAuthService_ChangeAvatar_UploadFailsAfterDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	uploadErr := errors.New("media host down")

	m.uploader.EXPECT().Delete(gomock.Any(), "old").Return(nil)
	m.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Image{}, uploadErr)

	_, err := svc.ChangeAvatar(context.Background(),
		models.User{ID: "u1", Avatar: &models.Image{PublicID: "old"}},
		&models.ImageFile{Data: pngBytes})
	assert.ErrorIs(t, err, uploadErr)
}
