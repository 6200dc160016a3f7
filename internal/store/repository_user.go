package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles account creation, lookup and avatar updates against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - transient driver error → [ErrUnavailable].
//   - any other driver error → [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.insertUserQuery(user).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if constraint, ok := r.db.uniqueViolation(err); ok && !strings.Contains(constraint, "token") {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, r.db.translate(err, ErrExecutingStatement)
	}

	return user, nil
}

// ExistsByEmail reports whether an account with email is registered.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := r.db.existsUserQuery(email).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.ExistsByEmail").Msg("error counting users")
		return false, r.db.translate(err, ErrExecutingQuery)
	}

	return count > 0, nil
}

// FindUserByEmail returns the account registered with email, or
// [ErrUserNotFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

// FindUserByToken returns the account owning the bearer token, or
// [ErrUserNotFound].
func (r *userRepository) FindUserByToken(ctx context.Context, token string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"token": token})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectUserQuery(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		user                      models.User
		avatarURL, avatarPublicID string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordSalt, &user.PasswordHash, &user.Token,
		&avatarURL, &avatarPublicID, &user.Newsletter, &user.CreatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error selecting user")
		return models.User{}, r.db.translate(err, ErrScanningRow)
	}

	user.Avatar = imageOrNil(avatarURL, avatarPublicID)
	return user, nil
}

// UpdateAvatar sets the avatar of userID to avatar as long as the stored one
// is still previous.
func (r *userRepository) UpdateAvatar(ctx context.Context, userID string, previous, avatar *models.Image) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.updateAvatarQuery(userID, previous, avatar).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateAvatar").Msg("error updating avatar")
		return r.db.translate(err, ErrExecutingStatement)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.db.translate(err, ErrExecutingStatement)
	}
	if affected == 0 {
		log.Warn().Str("func", "*userRepository.UpdateAvatar").Str("user_id", userID).Msg("avatar changed concurrently")
		return ErrConcurrentModification
	}

	return nil
}
