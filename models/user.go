package models

import "time"

// User represents a marketplace account.
//
// Credential fields (PasswordSalt, PasswordHash) are never serialised. The
// session Token is serialised only inside the dedicated signup/login
// responses, never as part of a public projection.
type User struct {
	// ID is the opaque unique identifier (UUIDv7) generated on creation.
	ID string `json:"_id"`

	// Email is unique across all users and is used to log in.
	Email string `json:"email"`

	// Username is the public display name. Required, not unique.
	Username string `json:"username"`

	// PasswordSalt is the random per-user salt mixed into the password hash.
	PasswordSalt string `json:"-"`

	// PasswordHash is the digest of password+salt.
	PasswordHash string `json:"-"`

	// Token is the long random bearer token generated once at signup.
	Token string `json:"-"`

	// Avatar is the optional stored avatar image.
	Avatar *Image `json:"avatar,omitempty"`

	// Newsletter is the user-supplied newsletter opt-in flag.
	Newsletter bool `json:"newsletter"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Account returns the public projection of the user.
func (u User) Account() Account {
	return Account{Username: u.Username, Avatar: u.Avatar}
}

// Account is the public part of a user exposed by the API.
type Account struct {
	Username string `json:"username"`
	Avatar   *Image `json:"avatar,omitempty"`
}

// Owner is the public projection of an offer's owner.
type Owner struct {
	ID      string  `json:"_id"`
	Account Account `json:"account"`
}

// SignupRequest carries the signup form.
type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Username   string `json:"username"`
	Newsletter bool   `json:"newsletter"`

	// Avatar is the optional avatar image.
	Avatar *ImageFile `json:"-"`
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by successful signup and login: the user's id, its
// bearer token and its public account.
type Session struct {
	ID      string  `json:"_id"`
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// NewSession builds the [Session] of u.
func NewSession(u User) Session {
	return Session{ID: u.ID, Token: u.Token, Account: u.Account()}
}
