package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock, _ := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func testUser() models.User {
	return models.User{
		ID:           "0190b2a4-7d6e-7c3a-9f00-000000000001",
		Email:        "a@x.com",
		Username:     "bob",
		PasswordSalt: "saltsaltsaltsalt",
		PasswordHash: "hash",
		Token:        "token",
		Newsletter:   true,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func userRow(u models.User) *sqlmock.Rows {
	avatar := imageOrEmpty(u.Avatar)
	return sqlmock.NewRows(userColumns).AddRow(
		u.ID, u.Email, u.Username, u.PasswordSalt, u.PasswordHash, u.Token,
		avatar.URL, avatar.PublicID, u.Newsletter, u.CreatedAt,
	)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()
	user.Avatar = &models.Image{URL: "https://img/a.png", PublicID: "vinted/users/1/a"}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.Username, user.PasswordSalt, user.PasswordHash, user.Token,
			user.Avatar.URL, user.Avatar.PublicID, user.Newsletter, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgConstraintError(pgerrcode.UniqueViolation, "users_email_key"))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_TokenCollisionIsNotEmailConflict(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgConstraintError(pgerrcode.UniqueViolation, "users_token_key"))

	_, err := repo.CreateUser(context.Background(), testUser())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestCreateUser_TransientError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestExistsByEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("b@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFindUserByToken_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()

	mock.ExpectQuery(`SELECT .* FROM users WHERE token = \$1 LIMIT 1`).
		WithArgs(user.Token).
		WillReturnRows(userRow(user))

	found, err := repo.FindUserByToken(context.Background(), user.Token)
	require.NoError(t, err)
	assert.Equal(t, user, found)
	assert.Nil(t, found.Avatar)
}

func TestFindUserByEmail_WithAvatar(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()
	user.Avatar = &models.Image{URL: "https://img/a.png", PublicID: "vinted/users/1/a"}

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs(user.Email).
		WillReturnRows(userRow(user))

	found, err := repo.FindUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotNil(t, found.Avatar)
	assert.Equal(t, *user.Avatar, *found.Avatar)
}

func TestFindUserByToken_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`FROM users WHERE token = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindUser_DBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").WillReturnError(errors.New("boom"))

	_, err := repo.FindUserByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateAvatar_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	prev := &models.Image{URL: "old-url", PublicID: "old-id"}
	next := &models.Image{URL: "new-url", PublicID: "new-id"}

	mock.ExpectExec(`UPDATE users SET avatar_url = \$1, avatar_public_id = \$2 WHERE avatar_public_id = \$3 AND id = \$4`).
		WithArgs("new-url", "new-id", "old-id", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateAvatar(context.Background(), "user-1", prev, next))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAvatar_FromNoAvatar(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WithArgs("new-url", "new-id", "", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateAvatar(context.Background(), "user-1", nil, &models.Image{URL: "new-url", PublicID: "new-id"}))
}

func TestUpdateAvatar_ConcurrentModification(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAvatar(context.Background(), "user-1", nil, &models.Image{PublicID: "x"})
	assert.ErrorIs(t, err, ErrConcurrentModification)
}
