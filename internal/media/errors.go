package media

import "errors"

var (
	// ErrEmptyFile is returned when an upload carries no bytes.
	ErrEmptyFile = errors.New("no image supplied")

	// ErrNotAnImage is returned when the uploaded bytes are not an image.
	ErrNotAnImage = errors.New("file is not an image")

	// ErrInvalidPublicID is returned for identifiers that escape the media
	// root or are empty.
	ErrInvalidPublicID = errors.New("invalid public id")

	// ErrUnsupportedDriver is returned by [NewUploader] for an unknown backend.
	ErrUnsupportedDriver = errors.New("unsupported media driver")

	ErrUnauthorized        = errors.New("media host rejected credentials")
	ErrBadRequest          = errors.New("media host rejected request")
	ErrNotFound            = errors.New("media resource not found")
	ErrRateLimited         = errors.New("media host rate limit exceeded")
	ErrInternalServerError = errors.New("media host internal error")
)
