package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "buildmart/internal/errors"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks struct tags and maps field failures onto the error
// details the controllers render.
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternalError("validating request", err)
	}

	details := make([]apperrors.ValidationDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperrors.ValidationDetail{
			Field:   fieldName(fe),
			Message: failureMessage(fe),
		})
	}

	return apperrors.NewValidationError("validation failed", details...)
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "CreateOrderRequest.Items[0].Quantity";
	// strip the root struct segment.
	ns := fe.StructNamespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return ns
}

func failureMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
