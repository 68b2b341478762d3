package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is the physical grouping (condominium) users, items and
// invitation codes are scoped to.
type Location struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string         `gorm:"type:varchar(128);not null" json:"name"`
	Address   string         `gorm:"type:varchar(255)" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Location) TableName() string { return "locations" }
