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

// UserService covers administrator user management. The role gate
// (manage_users, administrator-only) is enforced by the engine at the
// handler; the service enforces the same-location rule.
type UserService interface {
	List(ctx context.Context, actor authz.Actor) ([]model.User, error)
	// ChangeRole mutates a user's primary role. The target must live in the
	// acting administrator's location.
	ChangeRole(ctx context.Context, actor authz.Actor, targetID uuid.UUID, role model.Role) (*model.User, error)
	Delete(ctx context.Context, actor authz.Actor, targetID uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// sameLocation loads actor and target and checks they share a location.
func (s *userService) sameLocation(ctx context.Context, actorID, targetID uuid.UUID) (*model.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load acting user: %w", err)
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load target user: %w", err)
	}
	if actor.LocationID == nil || target.LocationID == nil || *actor.LocationID != *target.LocationID {
		return nil, ErrWrongLocation
	}
	return target, nil
}

func (s *userService) List(ctx context.Context, actor authz.Actor) ([]model.User, error) {
	acting, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("load acting user: %w", err)
	}
	if acting.LocationID == nil {
		return nil, ErrAdminHasNoLocation
	}
	return s.users.ListByLocation(ctx, *acting.LocationID)
}

func (s *userService) ChangeRole(ctx context.Context, actor authz.Actor, targetID uuid.UUID, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	target, err := s.sameLocation(ctx, actor.ID, targetID)
	if err != nil {
		return nil, err
	}
	target.Role = role
	if err := s.users.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return target, nil
}

func (s *userService) Delete(ctx context.Context, actor authz.Actor, targetID uuid.UUID) error {
	if _, err := s.sameLocation(ctx, actor.ID, targetID); err != nil {
		return err
	}
	return s.users.Delete(ctx, targetID)
}
