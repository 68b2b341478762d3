package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeLength is the fixed length of every invitation code.
const CodeLength = 6

// InvitationCode binds future residents to an administrator's location.
// An administrator has at most one active (non-expired, non-deleted) code;
// issuing a new one soft-deletes the previous. A code is reusable by any
// number of registrants until it expires or is deleted — redemption never
// mutates it. Expiry is derived at read time from ExpiresAt.
type InvitationCode struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code       string         `gorm:"type:varchar(6);not null;index" json:"code"`
	AdminID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"admin_id"`
	LocationID uuid.UUID      `gorm:"type:uuid;not null" json:"location_id"`
	ExpiresAt  time.Time      `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (InvitationCode) TableName() string { return "invitation_codes" }

// Expired reports whether the code has passed its expiration at the given
// instant.
func (c *InvitationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
