package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vertgarden/gardenhub/internal/model"
)

func newInvitationFixture(t *testing.T) (*invitationService, *fakeInvitationRepo, *fakeUserRepo, *model.User) {
	t.Helper()
	invitations := newFakeInvitationRepo()
	users := newFakeUserRepo()

	locationID := uuid.New()
	admin := users.add(&model.User{
		Email:      "admin@example.com",
		Name:       "Admin",
		Role:       model.RoleAdministrator,
		LocationID: &locationID,
	})

	svc := NewInvitationService(invitations, users).(*invitationService)
	return svc, invitations, users, admin
}

func TestIssueRequiresAdminLocation(t *testing.T) {
	svc, _, users, _ := newInvitationFixture(t)
	homeless := users.add(&model.User{
		Email: "nowhere@example.com",
		Name:  "No Location",
		Role:  model.RoleAdministrator,
	})

	_, err := svc.Issue(context.Background(), homeless.ID, 7)
	require.ErrorIs(t, err, ErrAdminHasNoLocation)
}

func TestIssueProducesSixCharCode(t *testing.T) {
	svc, _, _, admin := newInvitationFixture(t)

	code, err := svc.Issue(context.Background(), admin.ID, 7)
	require.NoError(t, err)
	assert.Len(t, code.Code, model.CodeLength)
	assert.Equal(t, admin.ID, code.AdminID)
	assert.Equal(t, *admin.LocationID, code.LocationID)
}

func TestIssueSupersedesPreviousCode(t *testing.T) {
	svc, invitations, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	first, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)

	// Exactly one live code remains and it is the new one.
	require.Len(t, invitations.live, 1)
	_, ok := invitations.live[second.ID]
	assert.True(t, ok)

	// The first code is soft-deleted, not gone.
	require.Len(t, invitations.graveyard, 1)
	assert.Equal(t, first.ID, invitations.graveyard[0].ID)
}

func TestIssueExhaustsGenerationAttempts(t *testing.T) {
	svc, invitations, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	// Another administrator already holds the only value the generator
	// will ever produce.
	require.NoError(t, invitations.Create(ctx, &model.InvitationCode{
		Code:       "AAAAAA",
		AdminID:    uuid.New(),
		LocationID: uuid.New(),
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}))
	svc.generate = func() (string, error) { return "AAAAAA", nil }

	_, err := svc.Issue(ctx, admin.ID, 7)
	require.ErrorIs(t, err, ErrCodeGenerationExhausted)
}

func TestIssueReusesSoftDeletedCodeValue(t *testing.T) {
	svc, invitations, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	old := &model.InvitationCode{
		Code:       "AB12CD",
		AdminID:    uuid.New(),
		LocationID: uuid.New(),
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, invitations.Create(ctx, old))
	require.NoError(t, invitations.Delete(ctx, old.ID))

	// Uniqueness only considers non-deleted codes, so the value is free.
	svc.generate = func() (string, error) { return "AB12CD", nil }
	code, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", code.Code)
}

func TestCurrentWithNoCode(t *testing.T) {
	svc, _, _, admin := newInvitationFixture(t)

	current, err := svc.Current(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestCurrentDaysRemainingIsCeiling(t *testing.T) {
	svc, _, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)

	// 6 days 23 hours remain: still 7 days, not 6.
	svc.now = func() time.Time { return now.Add(1 * time.Hour) }
	current, err := svc.Current(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.False(t, current.IsExpired)
	assert.Equal(t, 7, current.DaysRemaining)
}

func TestCurrentReportsExpired(t *testing.T) {
	svc, _, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	_, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(8 * 24 * time.Hour) }
	current, err := svc.Current(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.IsExpired)
	assert.Equal(t, 0, current.DaysRemaining)
}

func TestValidateRejectsWrongLengthBeforeLookup(t *testing.T) {
	svc, invitations, _, _ := newInvitationFixture(t)

	_, err := svc.Validate(context.Background(), "AB12C")
	require.ErrorIs(t, err, ErrCodeLength)
	assert.Zero(t, invitations.lookups, "length check must precede any storage lookup")

	_, err = svc.Validate(context.Background(), "AB12CDE")
	require.ErrorIs(t, err, ErrCodeLength)
	assert.Zero(t, invitations.lookups)
}

func TestValidateUnknownCode(t *testing.T) {
	svc, _, _, _ := newInvitationFixture(t)

	_, err := svc.Validate(context.Background(), "ZZZZZZ")
	require.ErrorIs(t, err, ErrCodeNotFound)
}

func TestValidateExpiryBoundary(t *testing.T) {
	svc, _, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	code, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)

	// One second before expiry: valid.
	svc.now = func() time.Time { return code.ExpiresAt.Add(-time.Second) }
	_, err = svc.Validate(ctx, code.Code)
	require.NoError(t, err)

	// One second after: expired.
	svc.now = func() time.Time { return code.ExpiresAt.Add(time.Second) }
	_, err = svc.Validate(ctx, code.Code)
	require.ErrorIs(t, err, ErrCodeExpired)
}

func TestValidateDoesNotConsumeCode(t *testing.T) {
	svc, invitations, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)

	first, err := svc.Validate(ctx, code.Code)
	require.NoError(t, err)
	second, err := svc.Validate(ctx, code.Code)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, invitations.live, 1)
}

// Administrator A issues a 7-day code; residents validate it on day 0 and
// day 6 successfully, and a third attempt on day 8 finds it expired.
func TestCodeReusableUntilExpiry(t *testing.T) {
	svc, _, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	day0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day0 }
	svc.generate = func() (string, error) { return "AB12CD", nil }

	_, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)

	binding, err := svc.Validate(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, binding.AdminID)
	assert.Equal(t, *admin.LocationID, binding.LocationID)

	svc.now = func() time.Time { return day0.Add(6 * 24 * time.Hour) }
	binding, err = svc.Validate(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, binding.AdminID)

	svc.now = func() time.Time { return day0.Add(8 * 24 * time.Hour) }
	_, err = svc.Validate(ctx, "AB12CD")
	require.ErrorIs(t, err, ErrCodeExpired)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, _, _, admin := newInvitationFixture(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, admin.ID, 7)
	require.NoError(t, err)

	err = svc.Delete(ctx, code.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotCodeOwner)

	require.NoError(t, svc.Delete(ctx, code.ID, admin.ID))
	current, err := svc.Current(ctx, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}
