package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/repository"
)

// SeedAdmin makes sure an administrator account exists. It creates the
// credential and profile when missing and promotes an existing profile.
// Nothing happens when email is empty.
func SeedAdmin(ctx context.Context, identity *IdentityService, profiles *repository.ProfileRepository, email, password, fullName string, log *zap.Logger) error {
	if email == "" {
		return nil
	}

	user, err := identity.CreateCredential(ctx, email, password)
	if err != nil {
		var perr *models.ProviderError
		if !errors.As(err, &perr) || perr.Code != models.CodeUserExists {
			return fmt.Errorf("seed admin credential: %w", err)
		}
		user, err = identity.VerifyCredential(ctx, email, password)
		if err != nil {
			return fmt.Errorf("seed admin: existing account does not match ADMIN_PASSWORD: %w", err)
		}
	}

	_, found, err := profiles.GetRole(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("seed admin profile: %w", err)
	}
	if !found {
		profile := &models.Profile{
			UserID:   user.ID,
			FullName: fullName,
			Email:    user.Email,
			Phone:    "-",
			Role:     models.RoleAdmin,
		}
		if err := profiles.InsertProfile(ctx, profile); err != nil {
			return fmt.Errorf("seed admin profile: %w", err)
		}
	} else if err := profiles.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin role: %w", err)
	}

	log.Info("admin account ready", zap.String("email", user.Email))
	return nil
}
