package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vertgarden/gardenhub/internal/model"
)

type pgGrantRepository struct {
	db *gorm.DB
}

func NewPGGrantRepository(db *gorm.DB) GrantRepository {
	return &pgGrantRepository{db: db}
}

// Upsert resolves the grant race at the storage layer: the triple has a
// unique index, and ON CONFLICT reactivates only revoked rows. Two
// concurrent grants of the same triple both succeed and leave one active row.
func (r *pgGrantRepository) Upsert(ctx context.Context, grant *model.PermissionGrant) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "grantee_id"}, {Name: "kind"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     model.GrantStatusActive,
			"grantor_id": grant.GrantorID,
			"granted_at": grant.GrantedAt,
			"revoked_at": nil,
			"updated_at": time.Now(),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: "permission_grants", Name: "status"},
				Value:  string(model.GrantStatusRevoked),
			},
		}},
	}).Create(grant).Error
}

func (r *pgGrantRepository) Revoke(ctx context.Context, itemID, granteeID uuid.UUID, kind model.GrantKind) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.PermissionGrant{}).
		Where("item_id = ? AND grantee_id = ? AND kind = ? AND status = ?",
			itemID, granteeID, kind, model.GrantStatusActive).
		Updates(map[string]interface{}{
			"status":     model.GrantStatusRevoked,
			"revoked_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *pgGrantRepository) HasActive(ctx context.Context, itemID, granteeID uuid.UUID, kind model.GrantKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PermissionGrant{}).
		Where("item_id = ? AND grantee_id = ? AND kind = ? AND status = ?",
			itemID, granteeID, kind, model.GrantStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *pgGrantRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.PermissionGrant, error) {
	var grants []model.PermissionGrant
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("granted_at DESC").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *pgGrantRepository) ListByItemAndGrantee(ctx context.Context, itemID, granteeID uuid.UUID) ([]model.PermissionGrant, error) {
	var grants []model.PermissionGrant
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND grantee_id = ?", itemID, granteeID).
		Order("granted_at DESC").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}
