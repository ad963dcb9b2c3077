package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"bearinmind/backend/apperrors"

	"github.com/go-playground/validator/v10"
)

var localePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		return IsLocale(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return v
}

// IsLocale accepts language tags such as "en" or "en-US".
func IsLocale(s string) bool {
	return localePattern.MatchString(s)
}

// Validate checks a request body and reports offending fields as arguments
// of a REQUEST_ARGUMENT_INVALID error.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Invalid("request", apperrors.REQUEST_ARGUMENT_INVALID).Wrap(err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		fields = append(fields, ns)
	}
	return apperrors.Invalid("request", apperrors.REQUEST_ARGUMENT_INVALID).
		WithArguments(fields...).
		Wrap(err)
}
