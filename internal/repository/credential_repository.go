package repository

import (
	"context"
	"errors"
	"time"

	"github.com/topexschool/portal-backend/internal/models"
	"gorm.io/gorm"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create returns models.ErrEmailTaken when the email is already registered.
func (r *CredentialRepository) Create(ctx context.Context, cred *models.Credential) error {
	err := r.db.WithContext(ctx).Create(cred).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrEmailTaken
	}
	return err
}

// GetByEmail returns models.ErrUserNotFound when no credential matches.
func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &cred, nil
}

func (r *CredentialRepository) TouchLastSignIn(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Credential{}).
		Where("id = ?", id).
		Update("last_sign_in_at", at).Error
}
