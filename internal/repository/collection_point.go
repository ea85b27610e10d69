package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type CollectionPointDAO interface {
	FindAll(ctx context.Context, filter domain.CollectionPointFilter) ([]dao.CollectionPoint, error)
	FindByID(ctx context.Context, id uint) (dao.CollectionPoint, error)
	Insert(ctx context.Context, point dao.CollectionPoint) (dao.CollectionPoint, error)
	Update(ctx context.Context, point dao.CollectionPoint) (dao.CollectionPoint, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	CountDependents(ctx context.Context, id uint) (needs, donations int64, err error)
}

type CollectionPointRepository struct {
	dao CollectionPointDAO
}

func NewCollectionPointRepository(dao CollectionPointDAO) *CollectionPointRepository {
	return &CollectionPointRepository{
		dao: dao,
	}
}

func (r *CollectionPointRepository) FindAll(ctx context.Context, filter domain.CollectionPointFilter) ([]domain.CollectionPoint, error) {
	found, err := r.dao.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, collectionPointToDomain), nil
}

func (r *CollectionPointRepository) FindByID(ctx context.Context, id uint) (domain.CollectionPoint, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return collectionPointToDomain(found), nil
}

func (r *CollectionPointRepository) Create(ctx context.Context, point domain.CollectionPoint) (domain.CollectionPoint, error) {
	created, err := r.dao.Insert(ctx, collectionPointToDAO(point))
	if err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return collectionPointToDomain(created), nil
}

func (r *CollectionPointRepository) Update(ctx context.Context, point domain.CollectionPoint) (domain.CollectionPoint, error) {
	updated, err := r.dao.Update(ctx, collectionPointToDAO(point))
	if err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return collectionPointToDomain(updated), nil
}

func (r *CollectionPointRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *CollectionPointRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CollectionPointRepository) CountDependents(ctx context.Context, id uint) (needs, donations int64, err error) {
	needs, donations, err = r.dao.CountDependents(ctx, id)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.CountDependents -> %w", err)
	}

	return needs, donations, nil
}
