package models

import (
	"time"
)

type Credential struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *Credential) AuthUser() AuthUser {
	return AuthUser{
		ID:        c.ID,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
