package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vertgarden/gardenhub/internal/authz"
	"vertgarden/gardenhub/internal/model"
	"vertgarden/gardenhub/internal/repository"
)

// PermissionService manages delegated grants on inventory items. Delegation
// only ever adds rights: a grant can make a resident able to act on someone
// else's item, it can never take anything away from the owner or from
// elevated roles.
type PermissionService interface {
	// Grant is idempotent: granting an already-active triple is a no-op and
	// granting a revoked triple reactivates it.
	Grant(ctx context.Context, actor authz.Actor, itemID, granteeID uuid.UUID, kind model.GrantKind) (*model.PermissionGrant, error)
	// Revoke soft-deletes the active grant; revoking an absent grant is not
	// an error.
	Revoke(ctx context.Context, actor authz.Actor, itemID, granteeID uuid.UUID, kind model.GrantKind) error
	// List returns the grants visible to the actor: everything on the item
	// for the owner and elevated roles, the actor's own grants otherwise.
	// A non-privileged actor with no grants is denied, not handed an empty
	// list.
	List(ctx context.Context, actor authz.Actor, itemID uuid.UUID) ([]model.PermissionGrant, error)
}

type permissionService struct {
	grants repository.GrantRepository
	users  repository.UserRepository
	owners authz.OwnerResolver

	now nowFunc
}

func NewPermissionService(grants repository.GrantRepository, users repository.UserRepository, owners authz.OwnerResolver) PermissionService {
	return &permissionService{
		grants: grants,
		users:  users,
		owners: owners,
		now:    defaultNow,
	}
}

// canAdminister reports whether the actor may grant, revoke or list all
// permissions on the item: the owner or an elevated role. Resource lookup
// failures collapse into the uniform denial.
func (s *permissionService) canAdminister(ctx context.Context, actor authz.Actor, itemID uuid.UUID) (bool, error) {
	ownerID, err := s.owners.OwnerOf(ctx, authz.KindInventoryItem, itemID)
	if err != nil {
		if errors.Is(err, authz.ErrResourceNotFound) {
			return false, authz.ErrInsufficientPermission
		}
		return false, fmt.Errorf("resolve owner: %w", err)
	}
	return ownerID == actor.ID || actor.Role.Elevated(), nil
}

func (s *permissionService) Grant(ctx context.Context, actor authz.Actor, itemID, granteeID uuid.UUID, kind model.GrantKind) (*model.PermissionGrant, error) {
	if !kind.Valid() {
		return nil, ErrInvalidGrantKind
	}

	ok, err := s.canAdminister(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authz.ErrInsufficientPermission
	}

	if _, err := s.users.GetByID(ctx, granteeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load grantee: %w", err)
	}

	grant := &model.PermissionGrant{
		ItemID:    itemID,
		GranteeID: granteeID,
		Kind:      kind,
		GrantorID: actor.ID,
		Status:    model.GrantStatusActive,
		GrantedAt: s.now(),
	}
	if err := s.grants.Upsert(ctx, grant); err != nil {
		return nil, fmt.Errorf("upsert grant: %w", err)
	}
	return grant, nil
}

func (s *permissionService) Revoke(ctx context.Context, actor authz.Actor, itemID, granteeID uuid.UUID, kind model.GrantKind) error {
	if !kind.Valid() {
		return ErrInvalidGrantKind
	}

	ok, err := s.canAdminister(ctx, actor, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return authz.ErrInsufficientPermission
	}

	// Rows affected is deliberately ignored: revoking a grant that does not
	// exist is a no-op.
	if _, err := s.grants.Revoke(ctx, itemID, granteeID, kind); err != nil {
		return fmt.Errorf("revoke grant: %w", err)
	}
	return nil
}

func (s *permissionService) List(ctx context.Context, actor authz.Actor, itemID uuid.UUID) ([]model.PermissionGrant, error) {
	ok, err := s.canAdminister(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	if ok {
		grants, err := s.grants.ListByItem(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("list grants: %w", err)
		}
		return grants, nil
	}

	grants, err := s.grants.ListByItemAndGrantee(ctx, itemID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list own grants: %w", err)
	}
	// An empty result for a non-privileged caller is a denial, not a
	// legitimate empty list: they have no standing on this item.
	if len(grants) == 0 {
		return nil, authz.ErrInsufficientPermission
	}
	return grants, nil
}
