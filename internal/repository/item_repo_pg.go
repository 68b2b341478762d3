package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vertgarden/gardenhub/internal/model"
)

type pgItemRepository struct {
	db *gorm.DB
}

func NewPGItemRepository(db *gorm.DB) ItemRepository {
	return &pgItemRepository{db: db}
}

func (r *pgItemRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pgItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pgItemRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pgItemRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *pgItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.InventoryItem{}, "id = ?", id).Error
}

func (r *pgItemRepository) CreateUsage(ctx context.Context, usage *model.ItemUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

func (r *pgItemRepository) ListUsages(ctx context.Context, itemID uuid.UUID) ([]model.ItemUsage, error) {
	var usages []model.ItemUsage
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}
