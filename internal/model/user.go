package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the single coarse-grained role stored on the user record.
type Role string

const (
	RoleResident      Role = "resident"
	RoleTechnician    Role = "technician"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is one of the three known primary roles.
func (r Role) Valid() bool {
	switch r {
	case RoleResident, RoleTechnician, RoleAdministrator:
		return true
	}
	return false
}

// Elevated reports whether r passes resource-dependent checks without a
// delegated grant.
func (r Role) Elevated() bool {
	return r == RoleTechnician || r == RoleAdministrator
}

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string         `gorm:"type:varchar(255);not null" json:"email"`
	Name         string         `gorm:"type:varchar(128);not null" json:"name"`
	PasswordHash string         `gorm:"type:varchar(128);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(16);not null;default:'resident'" json:"role"`
	LocationID   *uuid.UUID     `gorm:"type:uuid;index" json:"location_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }
