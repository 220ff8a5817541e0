package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct проверяет теги validate и возвращает VALIDATION_ERROR с читаемым сообщением.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domain.NewValidationError("%v", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		param := fieldErr.Param()

		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "min":
			messages = append(messages, field+" must be at least "+param+" characters")
		case "max":
			messages = append(messages, field+" must be at most "+param+" characters")
		case "email":
			messages = append(messages, field+" must be a valid email")
		case "url":
			messages = append(messages, field+" must be a valid url")
		case "oneof":
			messages = append(messages, field+" must be one of: "+param)
		case "gt":
			messages = append(messages, field+" must be greater than "+param)
		default:
			messages = append(messages, field+" is invalid")
		}
	}

	return domain.NewValidationError("%s", strings.Join(messages, ", "))
}
