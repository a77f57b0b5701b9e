package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/pkg/i18n"
)

// LoginPage is one sign-in form instance.
type LoginPage struct {
	formState
	deps Deps
	log  *zap.Logger
	form models.LoginForm
}

func NewLoginPage(d Deps) *LoginPage {
	d = d.withDefaults()
	return &LoginPage{
		deps: d,
		log:  d.Logger.Named("login"),
	}
}

// Fill replaces all field values at once without touching errors.
func (p *LoginPage) Fill(form models.LoginForm) {
	p.mu.Lock()
	p.form = form
	p.mu.Unlock()
}

// Change sets one field by its form name and clears that field's error only.
func (p *LoginPage) Change(field, value string) error {
	p.mu.Lock()
	switch field {
	case "email":
		p.form.Email = value
	case "password":
		p.form.Password = value
	default:
		p.mu.Unlock()
		return ErrUnknownField
	}
	p.mu.Unlock()
	p.clearError(field)
	return nil
}

func (p *LoginPage) Form() models.LoginForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Submit validates the form, verifies the credential, notifies the host and
// schedules navigation to the admin or home view depending on the role.
// Failures end up in the returned Outcome and in Errors(); the only errors
// returned are ErrSubmitInFlight and ErrPageClosed.
func (p *LoginPage) Submit(ctx context.Context) (Outcome, error) {
	if err := p.begin(); err != nil {
		return Outcome{}, err
	}
	defer p.end()

	form := p.Form()
	errs := p.deps.Validator.Login(form, p.deps.Messages)
	p.setErrors(errs)
	if !errs.Valid() {
		return Outcome{State: StateInvalid, Errors: errs}, nil
	}

	user, err := p.deps.Identity.VerifyCredential(ctx, form.Email, form.Password)
	if err != nil {
		var perr *models.ProviderError
		if errors.As(err, &perr) {
			// Same message whatever the provider's reason.
			p.log.Info("credential rejected", zap.String("code", perr.Code))
			out := p.fail(FailureProvider, p.deps.Messages.T(i18n.KeyLoginError))
			out.Provider = perr
			return out, nil
		}
		p.log.Error("credential verification failed", zap.Error(err))
		return p.fail(FailureUnexpected, p.deps.Messages.T(i18n.KeyRegisterError)), nil
	}

	role, found, err := p.deps.Profiles.GetRole(ctx, user.ID)
	switch {
	case err != nil:
		p.log.Warn("role lookup failed", zap.String("user_id", user.ID), zap.Error(err))
		role = ""
	case !found:
		p.log.Debug("no profile for user", zap.String("user_id", user.ID))
	}

	if p.deps.Session != nil {
		p.deps.Session.OnLogin(*user)
	}

	dest := models.DestinationHome
	if p.deps.Roles.CanAccessAdmin(role) {
		dest = models.DestinationAdmin
	}
	p.schedule(p.deps.Scheduler, LoginRedirectDelay, func() {
		if p.deps.Navigator != nil {
			p.deps.Navigator.Navigate(dest)
		}
	})

	return Outcome{
		State:  StateNavigating,
		Errors: models.ValidationErrors{},
		User:   user,
		Role:   role,
	}, nil
}
