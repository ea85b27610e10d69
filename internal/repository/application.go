package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type ApplicationDAO interface {
	FindAll(ctx context.Context, filter domain.ApplicationFilter) ([]dao.MissionApplication, error)
	FindByID(ctx context.Context, id uint) (dao.MissionApplication, error)
	FindByIDForUpdate(ctx context.Context, id uint) (dao.MissionApplication, error)
	Exists(ctx context.Context, missionID, volunteerID uint) (bool, error)
	Insert(ctx context.Context, application dao.MissionApplication) (dao.MissionApplication, error)
	Update(ctx context.Context, application dao.MissionApplication) (dao.MissionApplication, error)
	Delete(ctx context.Context, id uint) error
}

type ApplicationRepository struct {
	dao ApplicationDAO
}

func NewApplicationRepository(dao ApplicationDAO) *ApplicationRepository {
	return &ApplicationRepository{
		dao: dao,
	}
}

func (r *ApplicationRepository) FindAll(ctx context.Context, filter domain.ApplicationFilter) ([]domain.MissionApplication, error) {
	found, err := r.dao.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, applicationToDomain), nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uint) (domain.MissionApplication, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return applicationToDomain(found), nil
}

func (r *ApplicationRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.MissionApplication, error) {
	found, err := r.dao.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("r.dao.FindByIDForUpdate -> %w", err)
	}

	return applicationToDomain(found), nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, missionID, volunteerID uint) (bool, error) {
	exists, err := r.dao.Exists(ctx, missionID, volunteerID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	return exists, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, application domain.MissionApplication) (domain.MissionApplication, error) {
	created, err := r.dao.Insert(ctx, applicationToDAO(application))
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return applicationToDomain(created), nil
}

func (r *ApplicationRepository) Update(ctx context.Context, application domain.MissionApplication) (domain.MissionApplication, error) {
	updated, err := r.dao.Update(ctx, applicationToDAO(application))
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return applicationToDomain(updated), nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
