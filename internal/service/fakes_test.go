package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vertgarden/gardenhub/internal/model"
	"vertgarden/gardenhub/internal/repository"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) add(user *model.User) *model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ListByLocation(_ context.Context, locationID uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, user := range r.users {
		if user.LocationID != nil && *user.LocationID == locationID {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

// fakeInvitationRepo keeps non-deleted codes in live and moves deleted ones
// to graveyard, mirroring soft-delete visibility: lookups only see live rows.
type fakeInvitationRepo struct {
	live      map[uuid.UUID]*model.InvitationCode
	graveyard []*model.InvitationCode
	lookups   int
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{live: make(map[uuid.UUID]*model.InvitationCode)}
}

func (r *fakeInvitationRepo) Create(_ context.Context, code *model.InvitationCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	r.live[code.ID] = code
	return nil
}

func (r *fakeInvitationRepo) GetByID(_ context.Context, id uuid.UUID) (*model.InvitationCode, error) {
	code, ok := r.live[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return code, nil
}

func (r *fakeInvitationRepo) GetByCode(_ context.Context, value string) (*model.InvitationCode, error) {
	r.lookups++
	for _, code := range r.live {
		if code.Code == value {
			return code, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInvitationRepo) GetLatestByAdmin(_ context.Context, adminID uuid.UUID) (*model.InvitationCode, error) {
	var latest *model.InvitationCode
	for _, code := range r.live {
		if code.AdminID != adminID {
			continue
		}
		if latest == nil || code.CreatedAt.After(latest.CreatedAt) {
			latest = code
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *fakeInvitationRepo) CodeExists(_ context.Context, value string) (bool, error) {
	for _, code := range r.live {
		if code.Code == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInvitationRepo) DeleteByAdmin(_ context.Context, adminID uuid.UUID) error {
	for id, code := range r.live {
		if code.AdminID == adminID {
			r.graveyard = append(r.graveyard, code)
			delete(r.live, id)
		}
	}
	return nil
}

func (r *fakeInvitationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if code, ok := r.live[id]; ok {
		r.graveyard = append(r.graveyard, code)
		delete(r.live, id)
	}
	return nil
}

type grantKey struct {
	itemID    uuid.UUID
	granteeID uuid.UUID
	kind      model.GrantKind
}

// fakeGrantRepo mirrors the upsert contract: one row per triple, active rows
// untouched by re-grants, revoked rows reactivated.
type fakeGrantRepo struct {
	grants map[grantKey]*model.PermissionGrant
}

func newFakeGrantRepo() *fakeGrantRepo {
	return &fakeGrantRepo{grants: make(map[grantKey]*model.PermissionGrant)}
}

func (r *fakeGrantRepo) Upsert(_ context.Context, grant *model.PermissionGrant) error {
	key := grantKey{grant.ItemID, grant.GranteeID, grant.Kind}
	existing, ok := r.grants[key]
	if !ok {
		if grant.ID == uuid.Nil {
			grant.ID = uuid.New()
		}
		copied := *grant
		r.grants[key] = &copied
		return nil
	}
	if existing.Status == model.GrantStatusRevoked {
		existing.Status = model.GrantStatusActive
		existing.GrantorID = grant.GrantorID
		existing.GrantedAt = grant.GrantedAt
		existing.RevokedAt = nil
	}
	return nil
}

func (r *fakeGrantRepo) Revoke(_ context.Context, itemID, granteeID uuid.UUID, kind model.GrantKind) (int64, error) {
	key := grantKey{itemID, granteeID, kind}
	grant, ok := r.grants[key]
	if !ok || grant.Status != model.GrantStatusActive {
		return 0, nil
	}
	now := time.Now()
	grant.Status = model.GrantStatusRevoked
	grant.RevokedAt = &now
	return 1, nil
}

func (r *fakeGrantRepo) HasActive(_ context.Context, itemID, granteeID uuid.UUID, kind model.GrantKind) (bool, error) {
	grant, ok := r.grants[grantKey{itemID, granteeID, kind}]
	return ok && grant.Status == model.GrantStatusActive, nil
}

func (r *fakeGrantRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]model.PermissionGrant, error) {
	var out []model.PermissionGrant
	for _, grant := range r.grants {
		if grant.ItemID == itemID {
			out = append(out, *grant)
		}
	}
	return out, nil
}

func (r *fakeGrantRepo) ListByItemAndGrantee(_ context.Context, itemID, granteeID uuid.UUID) ([]model.PermissionGrant, error) {
	var out []model.PermissionGrant
	for _, grant := range r.grants {
		if grant.ItemID == itemID && grant.GranteeID == granteeID {
			out = append(out, *grant)
		}
	}
	return out, nil
}

type fakeItemRepo struct {
	items  map[uuid.UUID]*model.InventoryItem
	usages []model.ItemUsage
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *fakeItemRepo) add(item *model.InventoryItem) *model.InventoryItem {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return item
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.InventoryItem) error {
	r.add(item)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) ListByLocation(_ context.Context, locationID uuid.UUID) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		if item.LocationID != nil && *item.LocationID == locationID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *model.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) CreateUsage(_ context.Context, usage *model.ItemUsage) error {
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}
	r.usages = append(r.usages, *usage)
	return nil
}

func (r *fakeItemRepo) ListUsages(_ context.Context, itemID uuid.UUID) ([]model.ItemUsage, error) {
	var out []model.ItemUsage
	for _, usage := range r.usages {
		if usage.ItemID == itemID {
			out = append(out, usage)
		}
	}
	return out, nil
}

var (
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
	_ repository.InvitationRepository = (*fakeInvitationRepo)(nil)
	_ repository.GrantRepository      = (*fakeGrantRepo)(nil)
	_ repository.ItemRepository       = (*fakeItemRepo)(nil)
)
