package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vertgarden/gardenhub/internal/model"
	"vertgarden/gardenhub/internal/repository"
	"vertgarden/gardenhub/pkg/crypto"
)

// maxCodeAttempts bounds how many candidate codes Issue draws before giving
// up. Collisions in a 36^6 space are vanishingly rare; exhausting the bound
// surfaces as ErrCodeGenerationExhausted and the caller may simply retry.
const maxCodeAttempts = 10

// CurrentCode is an administrator's latest non-deleted code annotated with
// state derived at read time.
type CurrentCode struct {
	*model.InvitationCode
	IsExpired     bool `json:"is_expired"`
	DaysRemaining int  `json:"days_remaining"`
}

// CodeBinding is what a successful validation hands to registration: the
// administrator the code belongs to and the location the new resident will
// be scoped to.
type CodeBinding struct {
	AdminID    uuid.UUID `json:"admin_id"`
	LocationID uuid.UUID `json:"location_id"`
}

type InvitationService interface {
	// Issue supersedes any active code the administrator holds and persists
	// a fresh one valid for validityDays.
	Issue(ctx context.Context, adminID uuid.UUID, validityDays int) (*model.InvitationCode, error)
	// Current returns the administrator's latest non-deleted code, or nil
	// when there is none. Having no active code is not an error.
	Current(ctx context.Context, adminID uuid.UUID) (*CurrentCode, error)
	// Validate looks the code up and returns its binding. It never mutates
	// the code: a code is redeemable any number of times until expiry.
	Validate(ctx context.Context, code string) (*CodeBinding, error)
	// Delete soft-deletes the code if it belongs to the requesting
	// administrator.
	Delete(ctx context.Context, codeID, adminID uuid.UUID) error
}

type invitationService struct {
	invitations repository.InvitationRepository
	users       repository.UserRepository

	now      func() time.Time
	generate func() (string, error)
}

func NewInvitationService(invitations repository.InvitationRepository, users repository.UserRepository) InvitationService {
	return &invitationService{
		invitations: invitations,
		users:       users,
		now:         time.Now,
		generate:    func() (string, error) { return crypto.GenerateCode(model.CodeLength) },
	}
}

func (s *invitationService) Issue(ctx context.Context, adminID uuid.UUID, validityDays int) (*model.InvitationCode, error) {
	admin, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load administrator: %w", err)
	}
	if admin.LocationID == nil {
		return nil, ErrAdminHasNoLocation
	}

	// Supersession: the previous active code, if any, stops being redeemable
	// the moment a new one is issued.
	if err := s.invitations.DeleteByAdmin(ctx, adminID); err != nil {
		return nil, fmt.Errorf("supersede previous code: %w", err)
	}

	value, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	code := &model.InvitationCode{
		Code:       value,
		AdminID:    adminID,
		LocationID: *admin.LocationID,
		ExpiresAt:  s.now().Add(time.Duration(validityDays) * 24 * time.Hour),
	}
	if err := s.invitations.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("create invitation code: %w", err)
	}
	return code, nil
}

// uniqueCode draws candidates until one is unused among non-deleted codes.
// Soft-deleted codes do not count, so a superseded value may be reissued.
func (s *invitationService) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		candidate, err := s.generate()
		if err != nil {
			return "", fmt.Errorf("generate invitation code: %w", err)
		}
		exists, err := s.invitations.CodeExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check code uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}

func (s *invitationService) Current(ctx context.Context, adminID uuid.UUID) (*CurrentCode, error) {
	code, err := s.invitations.GetLatestByAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load current code: %w", err)
	}

	now := s.now()
	current := &CurrentCode{InvitationCode: code, IsExpired: code.Expired(now)}
	if !current.IsExpired {
		remaining := code.ExpiresAt.Sub(now)
		// Ceiling in days: a code expiring within the hour still shows one
		// day remaining rather than zero.
		current.DaysRemaining = int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	}
	return current, nil
}

func (s *invitationService) Validate(ctx context.Context, value string) (*CodeBinding, error) {
	// Length check comes before any storage lookup.
	if len(value) != model.CodeLength {
		return nil, ErrCodeLength
	}

	code, err := s.invitations.GetByCode(ctx, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("look up code: %w", err)
	}
	if code.Expired(s.now()) {
		return nil, ErrCodeExpired
	}
	return &CodeBinding{AdminID: code.AdminID, LocationID: code.LocationID}, nil
}

func (s *invitationService) Delete(ctx context.Context, codeID, adminID uuid.UUID) error {
	code, err := s.invitations.GetByID(ctx, codeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("load code: %w", err)
	}
	if code.AdminID != adminID {
		return ErrNotCodeOwner
	}
	return s.invitations.Delete(ctx, codeID)
}
