package repository

import (
	"context"
	"errors"

	"github.com/topexschool/portal-backend/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// InsertProfile writes a new profile. The unique index on user_id keeps it to
// one row per user.
func (r *ProfileRepository) InsertProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetRole looks up a single row; a missing profile is not an error.
func (r *ProfileRepository) GetRole(ctx context.Context, userID string) (models.Role, bool, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Select("role").Where("user_id = ?", userID).Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return profile.Role, true, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// List returns profiles newest first, optionally filtered by role.
func (r *ProfileRepository) List(ctx context.Context, role models.Role, limit, offset int) ([]models.Profile, error) {
	var profiles []models.Profile
	q := r.db.WithContext(ctx).Order("created_at desc, id desc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrProfileNotFound
	}
	return nil
}
