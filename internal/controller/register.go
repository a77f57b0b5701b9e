package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/pkg/i18n"
)

// RegisterPage is one sign-up form instance.
type RegisterPage struct {
	formState
	deps Deps
	log  *zap.Logger
	form models.RegisterForm
}

func NewRegisterPage(d Deps) *RegisterPage {
	d = d.withDefaults()
	return &RegisterPage{
		deps: d,
		log:  d.Logger.Named("register"),
	}
}

func (p *RegisterPage) Fill(form models.RegisterForm) {
	p.mu.Lock()
	p.form = form
	p.mu.Unlock()
}

func (p *RegisterPage) Change(field, value string) error {
	p.mu.Lock()
	switch field {
	case "fullName":
		p.form.FullName = value
	case "email":
		p.form.Email = value
	case "phone":
		p.form.Phone = value
	case "password":
		p.form.Password = value
	case "confirmPassword":
		p.form.ConfirmPassword = value
	default:
		p.mu.Unlock()
		return ErrUnknownField
	}
	p.mu.Unlock()
	p.clearError(field)
	return nil
}

func (p *RegisterPage) Form() models.RegisterForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Submit creates the credential, then the student profile, strictly in that
// order. Only email and password go to the identity provider. Provider
// messages are shown verbatim.
func (p *RegisterPage) Submit(ctx context.Context) (Outcome, error) {
	if err := p.begin(); err != nil {
		return Outcome{}, err
	}
	defer p.end()

	form := p.Form()
	errs := p.deps.Validator.Register(form, p.deps.Messages)
	p.setErrors(errs)
	if !errs.Valid() {
		return Outcome{State: StateInvalid, Errors: errs}, nil
	}

	user, err := p.deps.Identity.CreateCredential(ctx, form.Email, form.Password)
	if err != nil {
		var perr *models.ProviderError
		if errors.As(err, &perr) {
			p.log.Info("sign-up rejected", zap.String("code", perr.Code))
			out := p.fail(FailureProvider, perr.Message)
			out.Provider = perr
			return out, nil
		}
		p.log.Error("credential creation failed", zap.Error(err))
		return p.fail(FailureUnexpected, p.deps.Messages.T(i18n.KeyRegisterError)), nil
	}

	profile := models.NewStudentProfile(user.ID, form)
	if err := p.deps.Profiles.InsertProfile(ctx, profile); err != nil {
		p.log.Error("profile insert failed", zap.String("user_id", user.ID), zap.Error(err))
		return p.fail(FailureProfile, p.deps.Messages.T(i18n.KeyRegisterProfileError)), nil
	}

	msg := p.deps.Messages.T(i18n.KeyRegisterSuccess)
	p.setSuccess(msg)

	if p.deps.Session != nil {
		p.deps.Session.OnLogin(*user)
	}

	p.schedule(p.deps.Scheduler, RegisterRedirectDelay, func() {
		if p.deps.Navigator != nil {
			p.deps.Navigator.Navigate(models.DestinationHome)
		}
	})

	return Outcome{
		State:   StateNavigating,
		Errors:  models.ValidationErrors{},
		Success: msg,
		User:    user,
		Role:    profile.Role,
	}, nil
}
