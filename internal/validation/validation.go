// Package validation wraps go-playground/validator with the field names and messages
// shared by the query service and the search form.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/lookup/internal/domain"
)

// Messages reported for violated rules.
const (
	MsgInvalidEmail  = "Invalid email format"
	MsgInvalidNumber = "Invalid number format"
	MsgInvalidValue  = "Invalid value"
	msgRequiredFmt   = "%s is required"
)

// TagDashedNumber is the struct tag for two digits, dash, two digits, dash, two digits.
const TagDashedNumber = "dashed_number"

var dashedNumberPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`)

// Validator validates tagged structs and reports failures as domain field errors.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation(TagDashedNumber, validateDashedNumber)
	return &Validator{validate: v}
}

var defaultValidator = sync.OnceValue(New)

// Default returns the process-wide Validator. It is safe for concurrent use.
func Default() *Validator {
	return defaultValidator()
}

// Struct validates s. A rule violation is returned as *domain.ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return domain.NewValidationError(fields...)
}

// DashedNumber reports whether s has the 99-99-99 shape.
func DashedNumber(s string) bool {
	return dashedNumberPattern.MatchString(s)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(msgRequiredFmt, capitalize(fe.Field()))
	case "email":
		return MsgInvalidEmail
	case TagDashedNumber:
		return MsgInvalidNumber
	default:
		return MsgInvalidValue
	}
}

func validateDashedNumber(fl validator.FieldLevel) bool {
	return DashedNumber(fl.Field().String())
}

// jsonFieldName reports fields by their JSON name so messages match the wire format.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
