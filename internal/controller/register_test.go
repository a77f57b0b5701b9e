package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topexschool/portal-backend/internal/models"
)

func validRegisterForm() models.RegisterForm {
	return models.RegisterForm{
		FullName:        "Aziz Karimov",
		Email:           "aziz@example.com",
		Phone:           "+998 99 123 45 67",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterSuccess(t *testing.T) {
	h := newHarness()
	h.identity.user = &models.AuthUser{ID: "U2", Email: "aziz@example.com"}
	page := NewRegisterPage(h.deps)
	page.Fill(validRegisterForm())

	out, err := page.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateNavigating, out.State)
	assert.Equal(t, models.RoleStudent, out.Role)
	assert.Equal(t, "Registration successful! Redirecting...", out.Success)
	assert.Equal(t, out.Success, page.SuccessMessage())

	// Only the credential pair reaches the identity provider.
	assert.Equal(t, [][2]string{{"aziz@example.com", "secret1"}}, h.identity.calls)

	require.Len(t, h.profiles.inserted, 1)
	p := h.profiles.inserted[0]
	assert.Equal(t, "U2", p.UserID)
	assert.Equal(t, "Aziz Karimov", p.FullName)
	assert.Equal(t, "aziz@example.com", p.Email)
	assert.Equal(t, "+998 99 123 45 67", p.Phone)
	assert.Equal(t, models.RoleStudent, p.Role)
	assert.Nil(t, p.Subject)
	assert.Nil(t, p.Rating)
	assert.Nil(t, p.Income)
	assert.Nil(t, p.ActivityPoints)
	assert.Nil(t, p.AttendancePoints)

	assert.Equal(t, []string{"create", "insert", "login:U2"}, h.j.list())
	assert.Equal(t, RegisterRedirectDelay, h.sched.last().delay)
	assert.Empty(t, h.host.dests)

	h.sched.fire()
	assert.Equal(t, []models.Destination{models.DestinationHome}, h.host.dests)
	assert.False(t, page.Loading())
}

func TestRegisterWithoutSessionNotifier(t *testing.T) {
	h := newHarness()
	h.deps.Session = nil
	page := NewRegisterPage(h.deps)
	page.Fill(validRegisterForm())

	out, err := page.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateNavigating, out.State)

	h.sched.fire()
	assert.Equal(t, []string{"create", "insert", "navigate:home"}, h.j.list())
}

func TestRegisterInvalidFormMakesNoCalls(t *testing.T) {
	h := newHarness()
	page := NewRegisterPage(h.deps)
	form := validRegisterForm()
	form.ConfirmPassword = "different"
	page.Fill(form)

	out, err := page.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateInvalid, out.State)
	assert.Equal(t, models.ValidationErrors{"confirmPassword": "Passwords do not match"}, out.Errors)
	assert.Empty(t, h.j.list())
	assert.Empty(t, page.SuccessMessage())
}

func TestRegisterProviderMessageIsVerbatim(t *testing.T) {
	h := newHarness()
	h.identity.err = &models.ProviderError{Code: "user_already_exists", Message: "Email already registered"}
	page := NewRegisterPage(h.deps)
	page.Fill(validRegisterForm())

	out, err := page.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, FailureProvider, out.Failure)
	assert.Equal(t, "Email already registered", out.Errors["submit"])
	assert.Same(t, h.identity.err, out.Provider)
	assert.Empty(t, h.profiles.inserted)
	assert.Equal(t, []string{"create"}, h.j.list())
	assert.Empty(t, h.host.users)
	assert.Nil(t, h.sched.last())
	assert.False(t, page.Loading())
}

func TestRegisterUnexpectedError(t *testing.T) {
	h := newHarness()
	h.identity.err = errors.New("dial tcp: connection refused")
	page := NewRegisterPage(h.deps)
	page.Fill(validRegisterForm())

	out, err := page.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FailureUnexpected, out.Failure)
	assert.Equal(t, "Something went wrong. Please try again.", out.Errors["submit"])
	assert.Empty(t, h.profiles.inserted)
}

func TestRegisterProfileInsertFailureIsSurfaced(t *testing.T) {
	h := newHarness()
	h.profiles.insertErr = errors.New("duplicate key value violates unique constraint")
	page := NewRegisterPage(h.deps)
	page.Fill(validRegisterForm())

	out, err := page.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, FailureProfile, out.Failure)
	assert.Contains(t, out.Errors["submit"], "profile could not be saved")
	assert.Empty(t, page.SuccessMessage())
	assert.Empty(t, h.host.users)
	assert.Nil(t, h.sched.last())
	assert.Equal(t, []string{"create", "insert"}, h.j.list())
}

func TestRegisterChangeClearsOnlyEditedField(t *testing.T) {
	h := newHarness()
	page := NewRegisterPage(h.deps)
	page.Fill(models.RegisterForm{Email: "abc", Password: "1", ConfirmPassword: "2"})

	out, err := page.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Errors, 5)

	require.NoError(t, page.Change("phone", "+998 90 000 00 00"))
	errs := page.Errors()
	assert.Len(t, errs, 4)
	assert.NotContains(t, errs, "phone")
	for _, field := range []string{"fullName", "email", "password", "confirmPassword"} {
		assert.Contains(t, errs, field)
	}

	// Submitted outcome is a snapshot, not a live view.
	assert.Len(t, out.Errors, 5)
}

func TestRegisterChangeEveryField(t *testing.T) {
	h := newHarness()
	page := NewRegisterPage(h.deps)
	for field, value := range map[string]string{
		"fullName":        "A B",
		"email":           "a@b.co",
		"phone":           "1",
		"password":        "secret1",
		"confirmPassword": "secret1",
	} {
		require.NoError(t, page.Change(field, value))
	}
	assert.Equal(t, models.RegisterForm{
		FullName:        "A B",
		Email:           "a@b.co",
		Phone:           "1",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}, page.Form())
}

func TestRegisterCloseBeforeDelayPreventsNavigation(t *testing.T) {
	h := newHarness()
	page := NewRegisterPage(h.deps)
	page.Fill(validRegisterForm())

	_, err := page.Submit(context.Background())
	require.NoError(t, err)
	page.Close()

	h.sched.fire()
	assert.Empty(t, h.host.dests)
	assert.Len(t, h.host.users, 1)
}
