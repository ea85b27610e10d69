package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type NeedDAO interface {
	FindAll(ctx context.Context, filter domain.NeedFilter) ([]dao.Need, error)
	FindByID(ctx context.Context, id uint) (dao.Need, error)
	FindByIDForUpdate(ctx context.Context, id uint) (dao.Need, error)
	FindActiveForUpdate(ctx context.Context, collectionPointID, itemTypeID uint) ([]dao.Need, error)
	Insert(ctx context.Context, need dao.Need) (dao.Need, error)
	Update(ctx context.Context, need dao.Need, withReceived bool) (dao.Need, error)
	UpdateReceived(ctx context.Context, id uint, received decimal.Decimal) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type NeedRepository struct {
	dao NeedDAO
}

func NewNeedRepository(dao NeedDAO) *NeedRepository {
	return &NeedRepository{
		dao: dao,
	}
}

func (r *NeedRepository) FindAll(ctx context.Context, filter domain.NeedFilter) ([]domain.Need, error) {
	found, err := r.dao.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, needToDomain), nil
}

func (r *NeedRepository) FindByID(ctx context.Context, id uint) (domain.Need, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Need{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return needToDomain(found), nil
}

func (r *NeedRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.Need, error) {
	found, err := r.dao.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Need{}, fmt.Errorf("r.dao.FindByIDForUpdate -> %w", err)
	}

	return needToDomain(found), nil
}

func (r *NeedRepository) FindActiveForUpdate(ctx context.Context, collectionPointID, itemTypeID uint) ([]domain.Need, error) {
	found, err := r.dao.FindActiveForUpdate(ctx, collectionPointID, itemTypeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveForUpdate -> %w", err)
	}

	return mapSlice(found, needToDomain), nil
}

func (r *NeedRepository) Create(ctx context.Context, need domain.Need) (domain.Need, error) {
	created, err := r.dao.Insert(ctx, needToDAO(need))
	if err != nil {
		return domain.Need{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return needToDomain(created), nil
}

func (r *NeedRepository) Update(ctx context.Context, need domain.Need, withReceived bool) (domain.Need, error) {
	updated, err := r.dao.Update(ctx, needToDAO(need), withReceived)
	if err != nil {
		return domain.Need{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return needToDomain(updated), nil
}

func (r *NeedRepository) UpdateReceived(ctx context.Context, id uint, received decimal.Decimal) error {
	if err := r.dao.UpdateReceived(ctx, id, received); err != nil {
		return fmt.Errorf("r.dao.UpdateReceived -> %w", err)
	}

	return nil
}

func (r *NeedRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *NeedRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
