package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// Validator checks structs tagged with `validate:"..."` and reports fields by their JSON names.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct returns nil when s is valid.
func (val *Validator) Struct(s interface{}) []FieldError {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	fields := FromError(err)
	if len(fields) == 0 {
		// InvalidValidationError: programming error, still report something useful
		return []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	return fields
}

// FromError converts validator and encoding/json errors into field errors.
// Unknown errors produce nil.
func FromError(err error) []FieldError {
	var validatorErrors validator.ValidationErrors

	if errors.As(err, &validatorErrors) {
		fields := make([]FieldError, 0, len(validatorErrors))

		for _, fe := range validatorErrors {
			fields = append(fields, FieldError{
				Field:   fieldPath(fe),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: Message(fe.Tag(), fe.Param(), fe.Kind()),
			})
		}
		return fields
	}

	// in the event of a type mismatch
	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		return []FieldError{{
			Field:   strings.TrimSpace(typeError.Field),
			Rule:    "type",
			Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
		}}
	}

	return nil
}

// fieldPath drops the root struct name from the namespace, e.g. "Credentials.email" -> "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok && rest != "" {
		return rest
	}
	return fe.Field()
}

func Message(rule, param string, kind reflect.Kind) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if kind == reflect.String {
			return "must have at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if kind == reflect.String {
			return "must have at most " + param + " characters"
		}
		return "must be at most " + param
	case "len":
		return "must be exactly " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
