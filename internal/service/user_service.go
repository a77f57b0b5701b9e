package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/repository"
)

var ErrUnknownRole = errors.New("unknown role")

// SessionRevoker ends every session a user holds.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID string) error
}

type UserService struct {
	profiles *repository.ProfileRepository
	roles    *models.RoleTable
	sessions SessionRevoker
	log      *zap.Logger
}

func NewUserService(profiles *repository.ProfileRepository, roles *models.RoleTable, sessions SessionRevoker, log *zap.Logger) *UserService {
	return &UserService{
		profiles: profiles,
		roles:    roles,
		sessions: sessions,
		log:      log.Named("users"),
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *UserService) ListProfiles(ctx context.Context, role models.Role, limit, offset int) ([]models.Profile, error) {
	if role != "" && !s.roles.Known(role) {
		return nil, ErrUnknownRole
	}
	return s.profiles.List(ctx, role, limit, offset)
}

func (s *UserService) SetRole(ctx context.Context, userID string, role models.Role) error {
	if !s.roles.Known(role) {
		return ErrUnknownRole
	}
	if err := s.profiles.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	s.log.Info("role changed", zap.String("user_id", userID), zap.String("role", string(role)))

	// Admin routes look the role up per request, so a failed revoke only
	// leaves the user signed in with the new role.
	if err := s.sessions.RevokeUser(ctx, userID); err != nil {
		s.log.Warn("failed to revoke sessions after role change", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}
