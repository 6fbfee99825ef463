// Package validation renders go-playground/validator errors from gin binding
// into per-field messages suitable for a 400 response body.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMessage maps a validator tag to a human readable message.
func DefaultMessage(field, tag, param string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a valid hex color", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// FormatBindingError converts a gin binding error into a field→message map.
// Non-validator errors (malformed JSON and the like) fall back to a single
// "body" entry.
func FormatBindingError(err error) map[string]string {
	messages := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			messages[strings.ToLower(fieldErr.Field())] = DefaultMessage(
				fieldErr.Field(), fieldErr.Tag(), fieldErr.Param())
		}
		return messages
	}

	messages["body"] = "invalid request body"
	return messages
}
