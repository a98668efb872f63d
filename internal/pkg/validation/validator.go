package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"interview-prep-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their json name
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// text columns reject NUL and invalid UTF-8
		_ = validate.RegisterValidation("cleantext", func(fl validator.FieldLevel) bool {
			return isCleanText(fl.Field().String())
		})
	})
	return validate
}

func isCleanText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperror.Validation(err.Error(), nil)
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return apperror.Validation("invalid request", fields)
}

// fieldPath drops the top level struct name: "CreateSessionRequest.questions[0].answer" -> "questions[0].answer"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "dive":
		return "is invalid"
	case "cleantext":
		return "contains invalid characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
