package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/model"
)

var (
	// ErrInsufficientPermission is the only denial surfaced to callers.
	// Every failed check collapses into it so an unauthorized caller cannot
	// probe which resources exist.
	ErrInsufficientPermission = errors.New("insufficient permission")

	// ErrResourceNotFound is returned by owner resolution when the resource
	// is absent or soft-deleted. The engine treats it as a hard deny.
	ErrResourceNotFound = errors.New("resource not found")
)

// ResourceKind names a class of owned resources.
type ResourceKind string

const KindInventoryItem ResourceKind = "inventory_item"

// Actor is the resolved identity of the caller: who they are and their one
// primary role. Credential verification happens upstream.
type Actor struct {
	ID   uuid.UUID
	Role model.Role
}

// OwnerResolver reports the creator of a resource.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, kind ResourceKind, id uuid.UUID) (uuid.UUID, error)
}

// GrantSource reports whether an active delegated grant exists.
type GrantSource interface {
	HasActive(ctx context.Context, itemID, granteeID uuid.UUID, kind model.GrantKind) (bool, error)
}

// Engine composes the role gate, the ownership check and the delegated
// grant lookup into a single allow/deny decision.
type Engine struct {
	owners OwnerResolver
	grants GrantSource
}

func NewEngine(owners OwnerResolver, grants GrantSource) *Engine {
	return &Engine{owners: owners, grants: grants}
}

// Authorize decides whether the actor may perform the action. A nil error
// means allow. The checks run in a fixed order and short-circuit on the
// first that passes:
//
//  1. resource-independent actions are decided by the role gate alone;
//  2. the resource owner may do anything to their own resource;
//  3. technicians and administrators pass every resource-dependent check;
//  4. an active delegated grant of the required kind allows the action.
//
// Ownership and elevated roles come before the grant lookup so delegation
// can only ever add rights, never restrict ones the owner or a privileged
// role already has. The reads are deliberately sequential: the order is the
// precedence rule.
func (e *Engine) Authorize(ctx context.Context, action Action, actor Actor, kind ResourceKind, resourceID uuid.UUID) error {
	if !ResourceDependent(action) {
		if Allowed(action, actor.Role) {
			return nil
		}
		return ErrInsufficientPermission
	}

	ownerID, err := e.owners.OwnerOf(ctx, kind, resourceID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrInsufficientPermission
		}
		return fmt.Errorf("resolve owner: %w", err)
	}
	if ownerID == actor.ID {
		return nil
	}

	if actor.Role.Elevated() {
		return nil
	}

	grantKind, ok := GrantFor(action)
	if !ok {
		return ErrInsufficientPermission
	}
	active, err := e.grants.HasActive(ctx, resourceID, actor.ID, grantKind)
	if err != nil {
		return fmt.Errorf("check grant: %w", err)
	}
	if active {
		return nil
	}
	return ErrInsufficientPermission
}
