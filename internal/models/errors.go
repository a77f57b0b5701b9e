package models

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserExists         = "user_already_exists"
	CodeWeakPassword       = "weak_password"
	CodeValidationFailed   = "validation_failed"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// ProviderError is a failure reported by the identity provider itself, as
// opposed to transport or storage failures around it. Message is meant to be
// shown to the user as-is.
type ProviderError struct {
	Code    string
	Message string
	Status  int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %s: %s", e.Code, e.Message)
}

func NewInvalidCredentialsError() *ProviderError {
	return &ProviderError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid login credentials",
		Status:  http.StatusUnauthorized,
	}
}

func NewUserExistsError() *ProviderError {
	return &ProviderError{
		Code:    CodeUserExists,
		Message: "User already registered",
		Status:  http.StatusUnprocessableEntity,
	}
}

func NewWeakPasswordError(min int) *ProviderError {
	return &ProviderError{
		Code:    CodeWeakPassword,
		Message: fmt.Sprintf("Password should be at least %d characters.", min),
		Status:  http.StatusUnprocessableEntity,
	}
}

func NewInvalidEmailError() *ProviderError {
	return &ProviderError{
		Code:    CodeValidationFailed,
		Message: "Unable to validate email address: invalid format",
		Status:  http.StatusBadRequest,
	}
}
