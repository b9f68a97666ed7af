package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateNotBlank rejects strings made only of whitespace.
func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
