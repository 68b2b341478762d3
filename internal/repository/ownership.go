package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vertgarden/gardenhub/internal/authz"
)

type ownerResolver struct {
	items ItemRepository
}

// NewOwnerResolver adapts the item repository into the engine's owner
// lookup. Absent and soft-deleted resources both surface as
// authz.ErrResourceNotFound, which the engine treats as a hard deny.
func NewOwnerResolver(items ItemRepository) authz.OwnerResolver {
	return &ownerResolver{items: items}
}

func (r *ownerResolver) OwnerOf(ctx context.Context, kind authz.ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	switch kind {
	case authz.KindInventoryItem:
		item, err := r.items.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, authz.ErrResourceNotFound
			}
			return uuid.Nil, err
		}
		return item.OwnerID, nil
	default:
		return uuid.Nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}
