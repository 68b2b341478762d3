package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem is the resource kind delegated permissions apply to.
// OwnerID is the creator and never changes; LocationID is inherited from
// the owner at creation time.
type InventoryItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"type:varchar(128);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Quantity    int            `gorm:"not null;default:0" json:"quantity"`
	Unit        string         `gorm:"type:varchar(32)" json:"unit,omitempty"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	LocationID  *uuid.UUID     `gorm:"type:uuid;index" json:"location_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

// ItemUsage is one recorded consumption of an inventory item.
type ItemUsage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Note      string    `gorm:"type:varchar(255)" json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ItemUsage) TableName() string { return "item_usages" }
