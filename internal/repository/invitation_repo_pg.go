package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vertgarden/gardenhub/internal/model"
)

type pgInvitationRepository struct {
	db *gorm.DB
}

func NewPGInvitationRepository(db *gorm.DB) InvitationRepository {
	return &pgInvitationRepository{db: db}
}

func (r *pgInvitationRepository) Create(ctx context.Context, code *model.InvitationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *pgInvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InvitationCode, error) {
	var code model.InvitationCode
	if err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *pgInvitationRepository) GetByCode(ctx context.Context, value string) (*model.InvitationCode, error) {
	var code model.InvitationCode
	if err := r.db.WithContext(ctx).First(&code, "code = ?", value).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *pgInvitationRepository) GetLatestByAdmin(ctx context.Context, adminID uuid.UUID) (*model.InvitationCode, error) {
	var code model.InvitationCode
	if err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		First(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *pgInvitationRepository) CodeExists(ctx context.Context, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InvitationCode{}).
		Where("code = ?", value).
		Count(&count).Error
	return count > 0, err
}

func (r *pgInvitationRepository) DeleteByAdmin(ctx context.Context, adminID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&model.InvitationCode{}, "admin_id = ?", adminID).Error
}

func (r *pgInvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.InvitationCode{}, "id = ?", id).Error
}
