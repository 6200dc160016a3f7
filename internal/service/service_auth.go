package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-vinted/internal/crypto"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/media"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/internal/utils"
	"github.com/MKhiriev/go-vinted/models"
)

// authService is the concrete implementation of AuthService.
// It owns the account lifecycle: credentials are produced by the key chain,
// avatars are stored through the media uploader and everything else is
// persisted through the UserRepository.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// keyChain generates salts and tokens and hashes passwords.
	keyChain crypto.KeyChainService

	// uploader stores avatars on the media host.
	uploader media.Uploader

	// namespace is the root media folder.
	namespace string

	ids utils.IDGenerator
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	keyChain crypto.KeyChainService,
	uploader media.Uploader,
	namespace string,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		keyChain:       keyChain,
		uploader:       uploader,
		namespace:      namespace,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

// Signup creates a new account.
//
// The email is checked before anything is uploaded so that a doomed signup
// never leaves an avatar behind; the unique constraint still guards the
// insert. If the insert fails after an avatar upload, the avatar folder is
// removed.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrUsernameRequired if username is empty.
//   - store.ErrEmailAlreadyExists if the email is taken.
//   - A wrapped storage, key chain or media error otherwise.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user := models.User{
		Email:      strings.TrimSpace(req.Email),
		Username:   strings.TrimSpace(req.Username),
		Newsletter: req.Newsletter,
	}
	if user.Username == "" {
		return models.User{}, ErrUsernameRequired
	}
	if user.Email == "" || req.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	exists, err := a.userRepository.ExistsByEmail(ctx, user.Email)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("email lookup failed")
		return models.User{}, fmt.Errorf("email lookup failed: %w", err)
	}
	if exists {
		return models.User{}, store.ErrEmailAlreadyExists
	}

	if err = a.fillCredentials(&user, req.Password); err != nil {
		log.Err(err).Msg("credential generation failed")
		return models.User{}, err
	}
	user.ID = a.ids.Generate()
	user.CreatedAt = a.now().UTC()

	if !req.Avatar.IsEmpty() {
		avatar, err := a.uploader.Upload(ctx, media.UserFolder(a.namespace, user.ID), *req.Avatar)
		if err != nil {
			log.Err(err).Str("user_id", user.ID).Msg("avatar upload failed")
			return models.User{}, fmt.Errorf("avatar upload failed: %w", err)
		}
		user.Avatar = &avatar
	}

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		if user.Avatar != nil {
			a.cleanup(ctx, media.UserFolder(a.namespace, user.ID))
		}
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", created.ID).Msg("account created")
	return created, nil
}

// Login authenticates an existing user.
//
// An unknown email and a wrong password produce the same ErrUnauthorized so
// that callers cannot probe which emails are registered.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return models.User{}, ErrUnauthorized
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Msg("login with unknown email")
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.keyChain.VerifyPassword(req.Password, foundUser.PasswordSalt, foundUser.PasswordHash) {
		log.Debug().Str("user_id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrUnauthorized
	}

	return foundUser, nil
}

// Authenticate resolves token to the user it was issued to.
func (a *authService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrUnauthorized
	}

	user, err := a.userRepository.FindUserByToken(ctx, token)
	if errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Debug().Msg("no user with token")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by token failed: %w", err)
	}

	return user, nil
}

// ChangeAvatar deletes the current avatar of user, uploads file and stores
// the new descriptor. The store write only succeeds if the avatar was not
// changed concurrently; otherwise the fresh upload is removed and
// store.ErrConcurrentModification is returned.
func (a *authService) ChangeAvatar(ctx context.Context, user models.User, file *models.ImageFile) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("user_id", user.ID).Logger()

	if file.IsEmpty() {
		return models.User{}, ErrNoImageSupplied
	}

	previous := user.Avatar
	if !previous.IsZero() {
		if err := a.uploader.Delete(ctx, previous.PublicID); err != nil {
			log.Err(err).Str("public_id", previous.PublicID).Msg("old avatar deletion failed")
			return models.User{}, fmt.Errorf("old avatar deletion failed: %w", err)
		}
	}

	avatar, err := a.uploader.Upload(ctx, media.UserFolder(a.namespace, user.ID), *file)
	if err != nil {
		log.Err(err).Msg("avatar upload failed")
		return models.User{}, fmt.Errorf("avatar upload failed: %w", err)
	}

	if err = a.userRepository.UpdateAvatar(ctx, user.ID, previous, &avatar); err != nil {
		log.Err(err).Msg("avatar update failed")
		if delErr := a.uploader.Delete(ctx, avatar.PublicID); delErr != nil {
			log.Err(delErr).Str("public_id", avatar.PublicID).Msg("orphaned avatar cleanup failed")
		}
		return models.User{}, fmt.Errorf("avatar update failed: %w", err)
	}

	user.Avatar = &avatar
	return user, nil
}

func (a *authService) fillCredentials(user *models.User, password string) error {
	salt, err := a.keyChain.GenerateSalt()
	if err != nil {
		return fmt.Errorf("salt generation failed: %w", err)
	}
	hash, err := a.keyChain.HashPassword(password, salt)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}
	token, err := a.keyChain.GenerateToken()
	if err != nil {
		return fmt.Errorf("token generation failed: %w", err)
	}

	user.PasswordSalt, user.PasswordHash, user.Token = salt, hash, token
	return nil
}

func (a *authService) cleanup(ctx context.Context, folder string) {
	if err := a.uploader.DeleteFolder(context.WithoutCancel(ctx), folder); err != nil {
		logger.FromContext(ctx).Err(err).Str("folder", folder).Msg("orphaned media cleanup failed")
	}
}
