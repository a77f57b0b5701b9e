package models

import "time"

// Synthetic key for whole-form errors.
const SubmitField = "submit"

type LoginForm struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type RegisterForm struct {
	FullName        string `json:"fullName" validate:"notblank"`
	Email           string `json:"email" validate:"notblank,emailshape"`
	Phone           string `json:"phone" validate:"notblank"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// ValidationErrors maps a field name to a human readable message.
// A missing key means the field is valid.
type ValidationErrors map[string]string

func (e ValidationErrors) Valid() bool {
	return len(e) == 0
}

// Clone returns a copy that can be handed out without sharing the map.
func (e ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// AuthUser is what the identity provider hands back after a successful
// verification or sign-up.
type AuthUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token           string   `json:"token"`
	User            AuthUser `json:"user"`
	Role            Role     `json:"role,omitempty"`
	Redirect        string   `json:"redirect"`
	RedirectAfterMS int64    `json:"redirect_after_ms"`
}
