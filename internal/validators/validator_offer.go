package validators

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vinted/models"
	"github.com/go-playground/validator/v10"
)

// Offer request fields with a dedicated error sentinel.
const (
	FieldTitle       = "Title"
	FieldDescription = "Description"
	FieldPrice       = "Price"
)

var offerFieldErrors = map[string]error{
	FieldTitle:       ErrInvalidTitle,
	FieldDescription: ErrInvalidDesc,
	FieldPrice:       ErrInvalidPrice,
}

// OfferValidator validates [models.OfferRequest] values against their
// `validate` struct tags.
type OfferValidator struct {
	validate *validator.Validate
}

// NewOfferValidator constructs an OfferValidator and returns it as the
// Validator interface.
func NewOfferValidator() Validator {
	return &OfferValidator{validate: newTagValidator()}
}

// Validate checks an offer request. Every returned error wraps
// [ErrInvalidOffer] together with the field-specific sentinel.
func (v *OfferValidator) Validate(ctx context.Context, obj any) error {
	var req models.OfferRequest
	switch value := obj.(type) {
	case models.OfferRequest:
		req = value
	case *models.OfferRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		req = *value
	default:
		return ErrUnsupportedType
	}

	return offerError(v.validate.StructCtx(ctx, req))
}

func offerError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOffer, err)
	}

	fieldErr, ok := offerFieldErrors[validationErrs[0].StructField()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidOffer, validationErrs[0].Error())
	}
	return fmt.Errorf("%w: %w", ErrInvalidOffer, fieldErr)
}
