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

type CreateItemInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

type UpdateItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
}

// InventoryService is the business surface for inventory items. Every
// operation asks the authorization engine first; the engine's ordering
// (ownership, elevated role, delegated grant) is what makes a resident with
// an "edit" grant able to update someone else's item.
type InventoryService interface {
	Create(ctx context.Context, actor authz.Actor, input CreateItemInput) (*model.InventoryItem, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*model.InventoryItem, error)
	List(ctx context.Context, actor authz.Actor) ([]model.InventoryItem, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input UpdateItemInput) (*model.InventoryItem, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	RecordUsage(ctx context.Context, actor authz.Actor, id uuid.UUID, quantity int, note string) (*model.ItemUsage, error)
	History(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]model.ItemUsage, error)
}

type inventoryService struct {
	items  repository.ItemRepository
	users  repository.UserRepository
	engine *authz.Engine
}

func NewInventoryService(items repository.ItemRepository, users repository.UserRepository, engine *authz.Engine) InventoryService {
	return &inventoryService{items: items, users: users, engine: engine}
}

func (s *inventoryService) Create(ctx context.Context, actor authz.Actor, input CreateItemInput) (*model.InventoryItem, error) {
	if err := s.engine.Authorize(ctx, authz.ActionCreateItem, actor, "", uuid.Nil); err != nil {
		return nil, err
	}

	creator, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("load creator: %w", err)
	}

	item := &model.InventoryItem{
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		OwnerID:     actor.ID,
		LocationID:  creator.LocationID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*model.InventoryItem, error) {
	if err := s.engine.Authorize(ctx, authz.ActionListItems, actor, "", uuid.Nil); err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("load item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) List(ctx context.Context, actor authz.Actor) ([]model.InventoryItem, error) {
	if err := s.engine.Authorize(ctx, authz.ActionListItems, actor, "", uuid.Nil); err != nil {
		return nil, err
	}
	caller, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("load caller: %w", err)
	}
	if caller.LocationID == nil {
		return []model.InventoryItem{}, nil
	}
	return s.items.ListByLocation(ctx, *caller.LocationID)
}

func (s *inventoryService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input UpdateItemInput) (*model.InventoryItem, error) {
	if err := s.engine.Authorize(ctx, authz.ActionEditItem, actor, authz.KindInventoryItem, id); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("load item: %w", err)
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if err := s.engine.Authorize(ctx, authz.ActionDeleteItem, actor, authz.KindInventoryItem, id); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

func (s *inventoryService) RecordUsage(ctx context.Context, actor authz.Actor, id uuid.UUID, quantity int, note string) (*model.ItemUsage, error) {
	if err := s.engine.Authorize(ctx, authz.ActionRecordUsage, actor, "", uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(ctx, authz.ActionUseItem, actor, authz.KindInventoryItem, id); err != nil {
		return nil, err
	}

	usage := &model.ItemUsage{
		ItemID:   id,
		UserID:   actor.ID,
		Quantity: quantity,
		Note:     note,
	}
	if err := s.items.CreateUsage(ctx, usage); err != nil {
		return nil, fmt.Errorf("record usage: %w", err)
	}
	return usage, nil
}

func (s *inventoryService) History(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]model.ItemUsage, error) {
	if err := s.engine.Authorize(ctx, authz.ActionViewItemHistory, actor, authz.KindInventoryItem, id); err != nil {
		return nil, err
	}
	return s.items.ListUsages(ctx, id)
}
