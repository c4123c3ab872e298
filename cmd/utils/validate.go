package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks the payload against its validate tags.
func ValidateStruct(payload interface{}) error {
	return validate.Struct(payload)
}
