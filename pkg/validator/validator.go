package validator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Phone numbers must be in international format: a leading plus followed by
// digits only, no separators or brackets.
var intlPhonePattern = regexp.MustCompile(`^\+\d+$`)

// Client names may contain only Cyrillic or Latin letters and spaces.
var cyrLatNamePattern = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z ]+$`)

func init() {
	// Registration errors only occur for invalid tag names, which would be a
	// programming error caught by any test exercising these rules.
	_ = validate.RegisterValidation("intl_phone", func(fl validator.FieldLevel) bool {
		return intlPhonePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("cyr_lat_name", func(fl validator.FieldLevel) bool {
		return cyrLatNamePattern.MatchString(fl.Field().String())
	})
}

// Validate validates a struct using go-playground/validator tags.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return &ValidationError{Errors: validationErrors}
		}
		return err
	}
	return nil
}

// ValidationError wraps validator.ValidationErrors with a user-friendly message.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", err.Field(), msgForTag(err)))
	}
	return strings.Join(msgs, "; ")
}

// Fields returns a map of field names to error messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, err := range e.Errors {
		fields[err.Field()] = msgForTag(err)
	}
	return fields
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "Некорректный email адрес"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "intl_phone":
		return "Телефон должен быть в международном формате без дефисов и скобок, например +123456789."
	case "cyr_lat_name":
		return "Имя может содержать только русские и английские буквы и пробелы."
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// DecodeAndValidate reads JSON from the request body, decodes it into dst,
// and validates it.
func DecodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return Validate(dst)
}
