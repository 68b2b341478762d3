package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vertgarden/gardenhub/internal/authz"
	"vertgarden/gardenhub/internal/model"
	"vertgarden/gardenhub/internal/repository"
)

type permissionFixture struct {
	svc    *permissionService
	grants *fakeGrantRepo
	items  *fakeItemRepo
	users  *fakeUserRepo

	owner      authz.Actor
	technician authz.Actor
	grantee    authz.Actor
	stranger   authz.Actor
	item       *model.InventoryItem
}

func newPermissionFixture(t *testing.T) *permissionFixture {
	t.Helper()
	grants := newFakeGrantRepo()
	items := newFakeItemRepo()
	users := newFakeUserRepo()

	locationID := uuid.New()
	owner := users.add(&model.User{Email: "owner@example.com", Name: "Owner", Role: model.RoleResident, LocationID: &locationID})
	tech := users.add(&model.User{Email: "tech@example.com", Name: "Tech", Role: model.RoleTechnician, LocationID: &locationID})
	grantee := users.add(&model.User{Email: "grantee@example.com", Name: "Grantee", Role: model.RoleResident, LocationID: &locationID})
	stranger := users.add(&model.User{Email: "stranger@example.com", Name: "Stranger", Role: model.RoleResident, LocationID: &locationID})

	item := items.add(&model.InventoryItem{Name: "Compost bin", OwnerID: owner.ID, LocationID: &locationID})

	svc := NewPermissionService(grants, users, repository.NewOwnerResolver(items)).(*permissionService)
	return &permissionFixture{
		svc:        svc,
		grants:     grants,
		items:      items,
		users:      users,
		owner:      authz.Actor{ID: owner.ID, Role: model.RoleResident},
		technician: authz.Actor{ID: tech.ID, Role: model.RoleTechnician},
		grantee:    authz.Actor{ID: grantee.ID, Role: model.RoleResident},
		stranger:   authz.Actor{ID: stranger.ID, Role: model.RoleResident},
		item:       item,
	}
}

func TestGrantByOwner(t *testing.T) {
	f := newPermissionFixture(t)
	ctx := context.Background()

	grant, err := f.svc.Grant(ctx, f.owner, f.item.ID, f.grantee.ID, model.GrantEdit)
	require.NoError(t, err)
	assert.Equal(t, model.GrantStatusActive, grant.Status)
	assert.Equal(t, f.owner.ID, grant.GrantorID)

	active, err := f.grants.HasActive(ctx, f.item.ID, f.grantee.ID, model.GrantEdit)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestGrantByTechnicianOnForeignItem(t *testing.T) {
	f := newPermissionFixture(t)

	_, err := f.svc.Grant(context.Background(), f.technician, f.item.ID, f.grantee.ID, model.GrantUse)
	require.NoError(t, err)
}

func TestGrantDeniedForUnprivilegedResident(t *testing.T) {
	f := newPermissionFixture(t)

	_, err := f.svc.Grant(context.Background(), f.stranger, f.item.ID, f.grantee.ID, model.GrantEdit)
	require.ErrorIs(t, err, authz.ErrInsufficientPermission)
}

func TestGrantOnMissingItemIsUniformDenial(t *testing.T) {
	f := newPermissionFixture(t)

	_, err := f.svc.Grant(context.Background(), f.owner, uuid.New(), f.grantee.ID, model.GrantEdit)
	require.ErrorIs(t, err, authz.ErrInsufficientPermission)
}

func TestGrantUnknownGrantee(t *testing.T) {
	f := newPermissionFixture(t)

	_, err := f.svc.Grant(context.Background(), f.owner, f.item.ID, uuid.New(), model.GrantEdit)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGrantRejectsUnknownKind(t *testing.T) {
	f := newPermissionFixture(t)

	_, err := f.svc.Grant(context.Background(), f.owner, f.item.ID, f.grantee.ID, model.GrantKind("own"))
	require.ErrorIs(t, err, ErrInvalidGrantKind)
}

// Grant, revoke, re-grant must leave exactly one row for the triple, active,
// with no duplicates.
func TestGrantRevokeRegrantIdempotence(t *testing.T) {
	f := newPermissionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Grant(ctx, f.owner, f.item.ID, f.grantee.ID, model.GrantEdit)
	require.NoError(t, err)
	require.NoError(t, f.svc.Revoke(ctx, f.owner, f.item.ID, f.grantee.ID, model.GrantEdit))

	active, err := f.grants.HasActive(ctx, f.item.ID, f.grantee.ID, model.GrantEdit)
	require.NoError(t, err)
	assert.False(t, active)

	// Re-grant from a different grantor reactivates the same row.
	_, err = f.svc.Grant(ctx, f.technician, f.item.ID, f.grantee.ID, model.GrantEdit)
	require.NoError(t, err)

	rows, err := f.grants.ListByItem(ctx, f.item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.GrantStatusActive, rows[0].Status)
	assert.Equal(t, f.technician.ID, rows[0].GrantorID)
	assert.Nil(t, rows[0].RevokedAt)
}

func TestGrantTwiceIsNoop(t *testing.T) {
	f := newPermissionFixture(t)
	ctx := context.Background()

	first, err := f.svc.Grant(ctx, f.owner, f.item.ID, f.grantee.ID, model.GrantUse)
	require.NoError(t, err)
	_, err = f.svc.Grant(ctx, f.technician, f.item.ID, f.grantee.ID, model.GrantUse)
	require.NoError(t, err)

	rows, err := f.grants.ListByItem(ctx, f.item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// The active row is untouched by the second grant.
	assert.Equal(t, first.GrantorID, rows[0].GrantorID)
}

func TestRevokeAbsentGrantIsNoop(t *testing.T) {
	f := newPermissionFixture(t)

	err := f.svc.Revoke(context.Background(), f.owner, f.item.ID, f.grantee.ID, model.GrantViewHistory)
	require.NoError(t, err)
}

func TestListVisibility(t *testing.T) {
	f := newPermissionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Grant(ctx, f.owner, f.item.ID, f.grantee.ID, model.GrantEdit)
	require.NoError(t, err)
	_, err = f.svc.Grant(ctx, f.owner, f.item.ID, f.stranger.ID, model.GrantUse)
	require.NoError(t, err)

	// Owner and elevated roles see every grant on the item.
	all, err := f.svc.List(ctx, f.owner, f.item.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = f.svc.List(ctx, f.technician, f.item.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A grantee sees only their own.
	own, err := f.svc.List(ctx, f.grantee, f.item.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.grantee.ID, own[0].GranteeID)
}

func TestListWithoutStandingIsForbidden(t *testing.T) {
	f := newPermissionFixture(t)
	ctx := context.Background()

	// A non-privileged caller with no grants gets a denial, not an empty
	// list.
	nobody := authz.Actor{ID: f.stranger.ID, Role: model.RoleResident}
	_, err := f.svc.List(ctx, nobody, f.item.ID)
	require.ErrorIs(t, err, authz.ErrInsufficientPermission)
}
