package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrInvalidOffer    = errors.New("offer details are not valid")
	ErrInvalidTitle    = errors.New("title must be at most 50 characters")
	ErrInvalidDesc     = errors.New("description must be at most 500 characters")
	ErrInvalidPrice    = errors.New("price must be between 0 and 100000")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrEmptyPassword   = errors.New("password is required")
	ErrEmptyUsername   = errors.New("user name not specified")
	ErrInvalidUsername = errors.New("user name is too long")
)
