package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/validation"
	"github.com/topexschool/portal-backend/pkg/i18n"
	"github.com/topexschool/portal-backend/pkg/utils"
)

// IdentityProvider verifies and creates email+password credentials.
// Failures the provider reports itself come back as *models.ProviderError;
// anything else is treated as unexpected.
type IdentityProvider interface {
	VerifyCredential(ctx context.Context, email, password string) (*models.AuthUser, error)
	CreateCredential(ctx context.Context, email, password string) (*models.AuthUser, error)
}

// ProfileStore persists profiles and resolves a user's role. GetRole reports
// found=false when the user has no profile.
type ProfileStore interface {
	InsertProfile(ctx context.Context, profile *models.Profile) error
	GetRole(ctx context.Context, userID string) (role models.Role, found bool, err error)
}

type SessionNotifier interface {
	OnLogin(user models.AuthUser)
}

type Navigator interface {
	Navigate(dest models.Destination)
}

type Deps struct {
	Identity  IdentityProvider
	Profiles  ProfileStore
	Roles     *models.RoleTable
	Validator *validation.FormValidator
	Messages  *i18n.Printer
	Session   SessionNotifier
	Navigator Navigator
	Scheduler Scheduler
	Logger    *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Scheduler == nil {
		d.Scheduler = TimerScheduler{}
	}
	if d.Roles == nil {
		d.Roles = models.DefaultRoleTable()
	}
	if d.Validator == nil {
		d.Validator = validation.New(utils.NewValidator())
	}
	if d.Messages == nil {
		d.Messages = i18n.NewCatalog().Printer()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}
