package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/repository"
	"github.com/topexschool/portal-backend/pkg/bcrypt"
	"github.com/topexschool/portal-backend/pkg/utils"
)

const MinPasswordLength = 6

// IdentityService is the email+password identity provider. Rejections it
// decides on itself are returned as *models.ProviderError; storage failures
// are wrapped and returned as plain errors.
type IdentityService struct {
	creds    *repository.CredentialRepository
	log      *zap.Logger
	hashCost int
	nowFunc  func() time.Time
}

func NewIdentityService(creds *repository.CredentialRepository, log *zap.Logger) *IdentityService {
	return &IdentityService{
		creds:    creds,
		log:      log.Named("identity"),
		hashCost: bcrypt.DefaultCost,
		nowFunc:  time.Now,
	}
}

// WithHashCost lowers the bcrypt cost, for tests.
func (s *IdentityService) WithHashCost(cost int) *IdentityService {
	s.hashCost = cost
	return s
}

func (s *IdentityService) VerifyCredential(ctx context.Context, email, password string) (*models.AuthUser, error) {
	email = utils.NormalizeEmail(email)

	cred, err := s.creds.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("lookup credential: %w", err)
	}

	if err := bcrypt.ComparePassword(cred.PasswordHash, password); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	if err := s.creds.TouchLastSignIn(ctx, cred.ID, s.nowFunc().UTC()); err != nil {
		s.log.Warn("failed to record sign-in", zap.String("user_id", cred.ID), zap.Error(err))
	}

	user := cred.AuthUser()
	return &user, nil
}

func (s *IdentityService) CreateCredential(ctx context.Context, email, password string) (*models.AuthUser, error) {
	email = utils.NormalizeEmail(email)
	if !utils.IsEmailShaped(email) {
		return nil, models.NewInvalidEmailError()
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, models.NewWeakPasswordError(MinPasswordLength)
	}

	hash, err := bcrypt.HashPasswordWithCost(password, s.hashCost)
	if err != nil {
		return nil, err
	}

	cred := &models.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	// The unique index on email decides between concurrent sign-ups.
	if err := s.creds.Create(ctx, cred); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, models.NewUserExistsError()
		}
		return nil, fmt.Errorf("create credential: %w", err)
	}

	s.log.Info("credential created", zap.String("user_id", cred.ID))
	user := cred.AuthUser()
	return &user, nil
}
