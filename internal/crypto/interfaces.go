package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every piece of credential material the server
// produces: per-user password salts, opaque bearer tokens and password
// hashes. It knows nothing about HTTP, the database or users.
//
// Signup flow:
//
//	salt  = GenerateSalt()               (16 alphanumeric chars)
//	hash  = HashPassword(password, salt)
//	token = GenerateToken()              (64 alphanumeric chars)
//
// Login flow:
//
//	VerifyPassword(password, user.salt, user.hash)
type KeyChainService interface {
	// GenerateSalt returns a fresh random alphanumeric salt of SaltLength
	// characters. Salts are stored next to the hash and are not secret.
	GenerateSalt() (string, error)

	// GenerateToken returns a fresh random alphanumeric bearer token of
	// TokenLength characters.
	GenerateToken() (string, error)

	// HashPassword hashes password with salt using the configured
	// algorithm and returns the encoded hash to be stored.
	HashPassword(password, salt string) (string, error)

	// VerifyPassword reports whether password and salt reproduce hash.
	// Hashes of every supported algorithm are accepted regardless of the
	// algorithm configured for new passwords.
	VerifyPassword(password, salt, hash string) bool
}
