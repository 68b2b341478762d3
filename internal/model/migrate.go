package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Location{},
		&User{},
		&InventoryItem{},
		&ItemUsage{},
		&PermissionGrant{},
		&InvitationCode{},
	); err != nil {
		return err
	}

	// Case-insensitive unique email for non-soft-deleted users.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower " +
			"ON users ((lower(email))) WHERE deleted_at IS NULL",
	).Error; err != nil {
		return err
	}

	// Code values are unique only among non-deleted rows, so a superseded
	// code's value may be reissued later.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_invitation_codes_code " +
			"ON invitation_codes (code) WHERE deleted_at IS NULL",
	).Error
}
