package repository

import (
	"context"

	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/model"
)

// InvitationRepository persists invitation codes. Every read excludes
// soft-deleted rows, so a superseded or deleted code is invisible to lookups
// and its value may be reissued.
type InvitationRepository interface {
	Create(ctx context.Context, code *model.InvitationCode) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.InvitationCode, error)
	GetByCode(ctx context.Context, code string) (*model.InvitationCode, error)
	// GetLatestByAdmin returns the administrator's most recent non-deleted
	// code, or gorm.ErrRecordNotFound.
	GetLatestByAdmin(ctx context.Context, adminID uuid.UUID) (*model.InvitationCode, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// DeleteByAdmin soft-deletes every non-deleted code owned by the
	// administrator; used for supersession before issuing a new code.
	DeleteByAdmin(ctx context.Context, adminID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
