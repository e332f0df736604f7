// Package validation checks request payloads against their struct tags and
// reports failures with the JSON names clients know.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rule violated by a payload field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result is the outcome of a validation: either valid, or the list of
// violations.
type Result struct {
	errs []FieldError
}

// Valid reports whether the payload passed every rule.
func (r Result) Valid() bool {
	return len(r.errs) == 0
}

// Errors returns the violations, nil when valid.
func (r Result) Errors() []FieldError {
	return r.errs
}

// Validator wraps a go-playground validator configured to name fields after
// their json tag.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate checks payload, which must be a struct or a pointer to one.
// A nil payload is reported as a single required violation.
func (v *Validator) Validate(payload any) Result {
	err := v.v.Struct(payload)
	if err == nil {
		return Result{}
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return Result{errs: []FieldError{{Rule: "required", Message: "payload requis"}}}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{errs: []FieldError{{Rule: "unknown", Message: err.Error()}}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return Result{errs: out}
}

// fieldPath drops the root struct name: "VinyleDTO.chansons[0].nom" -> "chansons[0].nom".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ requis"
	case "gte":
		return fmt.Sprintf("doit être supérieur ou égal à %s", fe.Param())
	case "email":
		return "courriel invalide"
	default:
		return fmt.Sprintf("règle %q non respectée", fe.Tag())
	}
}
