package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/systech-labs/deskflow/internal/shared/errors"
)

// Binding errors name fields the way clients send them.
func init() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		engine.RegisterTagNameFunc(jsonTagName)
	}
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validationErrorFrom(validationErrors validator.ValidationErrors) error {
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
}

// boundPhrases words the comparison tags. String fields compare lengths.
var boundPhrases = map[string]string{
	"min": "at least",
	"max": "at most",
	"gt":  "greater than",
	"gte": "greater than or equal to",
	"lt":  "less than",
	"lte": "less than or equal to",
}

func fieldErrorMessage(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	if phrase, ok := boundPhrases[fe.Tag()]; ok {
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters long", field, phrase, param)
		}
		return fmt.Sprintf("%s must be %s %s", field, phrase, param)
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "datetime":
		return fmt.Sprintf("%s must match the layout %s", field, param)
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
