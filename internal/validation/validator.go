// Package validation turns login and registration forms into per-field,
// localized error messages. It performs no I/O.
package validation

import (
	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/pkg/i18n"
	"github.com/topexschool/portal-backend/pkg/utils"
)

// Message keys per "field.tag" of the failing rule.
var messageKeys = map[string]string{
	"email.notblank":          i18n.KeyRegisterEmailError,
	"email.emailshape":        i18n.KeyRegisterEmailInvalid,
	"password.required":       i18n.KeyRegisterPasswordError,
	"password.min":            i18n.KeyRegisterPasswordShort,
	"fullName.notblank":       i18n.KeyRegisterNameError,
	"phone.notblank":          i18n.KeyRegisterPhoneError,
	"confirmPassword.eqfield": i18n.KeyRegisterPasswordMatch,
}

type FormValidator struct {
	v *utils.Validator
}

func New(v *utils.Validator) *FormValidator {
	return &FormValidator{v: v}
}

// Login requires a non-blank email and a non-empty password.
func (f *FormValidator) Login(form models.LoginForm, p *i18n.Printer) models.ValidationErrors {
	return f.run(form, p)
}

// Register checks every field independently and reports all violations at
// once. The confirmation check runs even when password itself is invalid.
func (f *FormValidator) Register(form models.RegisterForm, p *i18n.Printer) models.ValidationErrors {
	return f.run(form, p)
}

func (f *FormValidator) run(form interface{}, p *i18n.Printer) models.ValidationErrors {
	out := models.ValidationErrors{}
	tags, err := f.v.FieldErrors(form)
	if err != nil {
		// Only reachable with a malformed struct; report it against the form.
		out[models.SubmitField] = p.T(i18n.KeyValidationInvalid)
		return out
	}
	for field, tag := range tags {
		key, ok := messageKeys[field+"."+tag]
		if !ok {
			key = i18n.KeyValidationInvalid
		}
		out[field] = p.T(key)
	}
	return out
}
