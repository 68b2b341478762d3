package repository

import (
	"context"

	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/model"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateUsage(ctx context.Context, usage *model.ItemUsage) error
	ListUsages(ctx context.Context, itemID uuid.UUID) ([]model.ItemUsage, error)
}
