package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-vinted/models"
	"github.com/go-playground/validator/v10"
)

// signupRules are the tag rules applied to [models.SignupRequest]. They are
// registered as struct-level rules so the model stays free of validation
// tags that only the server cares about.
var signupRules = map[string]string{
	"Email":    "required,email,max=254",
	"Password": "required",
	"Username": "required,max=64",
}

// UserValidator validates signup and login requests.
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator constructs a UserValidator and returns it as the
// Validator interface.
func NewUserValidator() Validator {
	v := newTagValidator()
	v.RegisterStructValidationMapRules(signupRules, models.SignupRequest{})
	return &UserValidator{validate: v}
}

// Validate checks signup and login requests. A missing username is always
// reported as [ErrEmptyUsername] so callers can answer with the dedicated
// message.
func (v *UserValidator) Validate(ctx context.Context, obj any) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(ctx, value)
	case *models.SignupRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateSignup(ctx, *value)
	case models.LoginRequest:
		return validateLogin(value)
	case *models.LoginRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return validateLogin(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignup(ctx context.Context, req models.SignupRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	err := v.validate.StructCtx(ctx, req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, fe := range validationErrs {
		if fe.StructField() == "Username" && fe.Tag() == "required" {
			return ErrEmptyUsername
		}
	}

	switch fe := validationErrs[0]; fe.StructField() {
	case "Email":
		return ErrInvalidEmail
	case "Password":
		return ErrEmptyPassword
	default:
		return ErrInvalidUsername
	}
}

func validateLogin(req models.LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return ErrInvalidEmail
	}
	if req.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func newTagValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
