package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrUsernameRequired    = errors.New("user name not specified")
	ErrBadRequest          = errors.New("bad request")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrNoImageSupplied     = errors.New("no image supplied")
	ErrInvalidOfferDetails = errors.New("offer details are not valid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
