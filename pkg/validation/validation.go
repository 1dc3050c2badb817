// Package validation checks invite form values against the invite schema and
// reports failures per form field.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mediaconnect/doctor-invites/pkg/models"
)

// FieldErrors maps a form field name to a message key describing the first
// rule it broke. An empty map means the values are valid.
type FieldErrors map[string]string

// Has reports whether the field has an error.
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their form tag name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks already-normalized invite values.
func (v *Validator) Validate(req models.InviteRequest) FieldErrors {
	errs := FieldErrors{}
	err := v.validate.Struct(req)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "validation.form.invalid"
		return errs
	}
	for _, fe := range verrs {
		field := fe.Field()
		if errs.Has(field) {
			continue
		}
		errs[field] = messageKey(field, fe.Tag())
	}
	return errs
}

func messageKey(field, tag string) string {
	switch tag {
	case "required", "email":
		return "validation." + field + "." + tag
	case "min":
		return "validation." + field + ".too_short"
	case "max":
		return "validation." + field + ".too_long"
	default:
		return "validation." + field + ".invalid"
	}
}
