package models

import (
	"time"
)

// Profile is the role-tagged record written once per sign-up. Subject and the
// ranking fields stay nil until other processes fill them in.
type Profile struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"uniqueIndex;not null;size:36"`
	FullName         string    `json:"full_name" gorm:"not null"`
	Email            string    `json:"email" gorm:"not null"`
	Phone            string    `json:"phone" gorm:"not null"`
	Role             Role      `json:"role" gorm:"not null;default:'STUDENT';index"`
	Subject          *string   `json:"subject"`
	Rating           *float64  `json:"rating"`
	Income           *float64  `json:"income"`
	ActivityPoints   *int      `json:"activity_points"`
	AttendancePoints *int      `json:"attendance_points"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewStudentProfile builds the record inserted right after a credential is
// created.
func NewStudentProfile(userID string, form RegisterForm) *Profile {
	return &Profile{
		UserID:   userID,
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Role:     RoleStudent,
	}
}
