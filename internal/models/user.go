package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleRecruiter     Role = "recruiter"
	RoleHiringManager Role = "hiring_manager"
	RoleCandidate     Role = "candidate"
)

// ValidRole reports whether r is one of the four portal roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleHiringManager, RoleCandidate:
		return true
	}
	return false
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email    string    `gorm:"uniqueIndex;size:100;not null" json:"email"`

	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;index" json:"role"`

	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	Phone     string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName is the display name stored on the session at login.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
