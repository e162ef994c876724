// Package validation wraps go-playground/validator with the rules used by the
// users service. Failures are reported as domain.ErrValidation.
package validation

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

var numericText = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// Validator satisfies echo.Validator and is shared by the service layer.
type Validator struct {
	v *validator.Validate
}

// entityRules is the stricter rule set for stored records: name of at least
// three characters and a positive numeric password.
type entityRules struct {
	Name     string          `validate:"min=3"`
	Password domain.Password `validate:"positivenumber"`
}

// New returns a Validator with the password rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterCustomTypeFunc(passwordValue, domain.Password{})
	_ = v.RegisterValidation("password", isPassword)
	_ = v.RegisterValidation("positivenumber", isPositiveNumber)
	return &Validator{v: v}
}

// Validate checks i against its struct tags.
func (val *Validator) Validate(i any) error {
	return val.translate(val.v.Struct(i))
}

// Entity applies the entity rule set to a name/password pair.
func (val *Validator) Entity(name string, password domain.Password) error {
	return val.translate(val.v.Struct(entityRules{Name: name, Password: password}))
}

func (val *Validator) translate(err error) error {
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if fe.Kind() == reflect.Invalid {
		return field + " is required"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "password":
		return field + " must be a number, an integer or numeric text"
	case "positivenumber":
		return field + " must be a positive number"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// passwordValue unwraps a domain.Password so tags run against its variant.
// A missing password yields nil.
func passwordValue(field reflect.Value) any {
	if p, ok := field.Interface().(domain.Password); ok {
		return p.Value()
	}
	return nil
}

func isPassword(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		x := f.Float()
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	case reflect.String:
		return numericText.MatchString(f.String())
	default:
		return false
	}
}

func isPositiveNumber(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		x := f.Float()
		return x > 0 && !math.IsInf(x, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return f.Int() > 0
	default:
		return false
	}
}
