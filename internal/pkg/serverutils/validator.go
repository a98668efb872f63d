package serverutils

import (
	"interview-prep-be/internal/pkg/validation"
)

func ValidateRequest(req interface{}) error {
	return validation.Struct(req)
}
