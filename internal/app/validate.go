package app

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"hotel_store/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON field names so messages match what callers sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if errors.As(err, &fes) && len(fes) > 0 {
		return domain.Invalid(fes[0].Field(), message(fes[0]))
	}
	return domain.Invalid("", err.Error())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}

func validateDraft(d domain.HotelDraft) error {
	if err := validateStruct(d); err != nil {
		return err
	}
	if strings.TrimSpace(d.Title) == "" {
		return domain.Invalid("title", "is required")
	}
	return nil
}

func validatePatch(p domain.HotelPatch) error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return domain.Invalid("title", "is required")
	}
	return nil
}
