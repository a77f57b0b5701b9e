package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// formSpace is the whitespace set browsers trim from form input. IsFormSpace
// must agree with it.
const formSpace = `\t\n\x0b\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// local@domain.tld with no whitespace and at least one dot after the @.
var emailShape = regexp.MustCompile(`^[^@` + formSpace + `]+@[^@` + formSpace + `]+\.[^@` + formSpace + `]+$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field names in errors follow the json tags the forms are posted with.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Custom validations
	v.RegisterValidation("notblank", notBlank)
	v.RegisterValidation("emailshape", validateEmailShape)

	return &Validator{
		validate: v,
	}
}

// FieldErrors runs struct validation and returns the first failing tag per
// field, keyed by the field's json name. A nil map means the struct is valid.
func (v *Validator) FieldErrors(s interface{}) (map[string]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out, nil
}

func IsEmailShaped(s string) bool {
	return emailShape.MatchString(s)
}

func validateEmailShape(fl validator.FieldLevel) bool {
	return IsEmailShaped(fl.Field().String())
}

// IsFormSpace reports whether r counts as whitespace in submitted form values.
func IsFormSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// notBlank treats strings made only of form whitespace as blank and defers
// to validators.NotBlank for other kinds.
func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String {
		return strings.TrimFunc(fl.Field().String(), IsFormSpace) != ""
	}
	return validators.NotBlank(fl)
}
