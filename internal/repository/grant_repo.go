package repository

import (
	"context"

	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/model"
)

// GrantRepository persists delegated permission grants. Rows are unique per
// (item, grantee, kind) and are never hard-deleted; revocation and
// reactivation flip the status field.
type GrantRepository interface {
	// Upsert creates the grant or reactivates a revoked row for the same
	// triple in a single statement. An already-active row is left untouched,
	// which makes concurrent grants of the same triple race-free.
	Upsert(ctx context.Context, grant *model.PermissionGrant) error
	// Revoke marks the active grant for the triple revoked. Returns the
	// number of rows affected; revoking an absent grant affects zero rows.
	Revoke(ctx context.Context, itemID, granteeID uuid.UUID, kind model.GrantKind) (int64, error)
	HasActive(ctx context.Context, itemID, granteeID uuid.UUID, kind model.GrantKind) (bool, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.PermissionGrant, error)
	ListByItemAndGrantee(ctx context.Context, itemID, granteeID uuid.UUID) ([]model.PermissionGrant, error)
}
