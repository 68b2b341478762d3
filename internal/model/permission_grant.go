package model

import (
	"time"

	"github.com/google/uuid"
)

// GrantKind is the closed set of delegable permissions on an inventory item.
type GrantKind string

const (
	GrantEdit        GrantKind = "edit"
	GrantUse         GrantKind = "use"
	GrantViewHistory GrantKind = "view-history"
)

func (k GrantKind) Valid() bool {
	switch k {
	case GrantEdit, GrantUse, GrantViewHistory:
		return true
	}
	return false
}

// GrantStatus is a tagged status rather than a delete flag: revocation and
// reactivation are explicit transitions with their own timestamps.
type GrantStatus string

const (
	GrantStatusActive  GrantStatus = "active"
	GrantStatusRevoked GrantStatus = "revoked"
)

// PermissionGrant delegates one permission kind on one item to one grantee.
// The (item, grantee, kind) triple is unique; at most one row exists per
// triple and it flips between active and revoked. Rows are never hard-deleted.
type PermissionGrant struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ItemID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_grant_triple,priority:1" json:"item_id"`
	GranteeID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_grant_triple,priority:2" json:"grantee_id"`
	Kind      GrantKind   `gorm:"type:varchar(16);not null;uniqueIndex:idx_grant_triple,priority:3" json:"kind"`
	GrantorID uuid.UUID   `gorm:"type:uuid;not null" json:"grantor_id"`
	Status    GrantStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	GrantedAt time.Time   `gorm:"not null" json:"granted_at"`
	RevokedAt *time.Time  `json:"revoked_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (PermissionGrant) TableName() string { return "permission_grants" }

// Active reports whether the grant currently confers its permission.
func (g *PermissionGrant) Active() bool { return g.Status == GrantStatusActive }
