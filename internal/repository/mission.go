package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type MissionDAO interface {
	FindAll(ctx context.Context, filter domain.MissionFilter) ([]dao.Mission, error)
	FindByID(ctx context.Context, id uint) (dao.Mission, error)
	FindByIDForUpdate(ctx context.Context, id uint) (dao.Mission, error)
	Insert(ctx context.Context, mission dao.Mission) (dao.Mission, error)
	Update(ctx context.Context, mission dao.Mission) (dao.Mission, error)
	UpdateStatus(ctx context.Context, id uint, status domain.MissionStatus) error
	IncrementFilledSlots(ctx context.Context, id uint) error
	DecrementFilledSlots(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	CountApplications(ctx context.Context, id uint) (int64, error)
}

type MissionRepository struct {
	dao MissionDAO
}

func NewMissionRepository(dao MissionDAO) *MissionRepository {
	return &MissionRepository{
		dao: dao,
	}
}

func (r *MissionRepository) FindAll(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error) {
	found, err := r.dao.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, missionToDomain), nil
}

func (r *MissionRepository) FindByID(ctx context.Context, id uint) (domain.Mission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Mission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return missionToDomain(found), nil
}

func (r *MissionRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.Mission, error) {
	found, err := r.dao.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Mission{}, fmt.Errorf("r.dao.FindByIDForUpdate -> %w", err)
	}

	return missionToDomain(found), nil
}

func (r *MissionRepository) Create(ctx context.Context, mission domain.Mission) (domain.Mission, error) {
	created, err := r.dao.Insert(ctx, missionToDAO(mission))
	if err != nil {
		return domain.Mission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return missionToDomain(created), nil
}

func (r *MissionRepository) Update(ctx context.Context, mission domain.Mission) (domain.Mission, error) {
	updated, err := r.dao.Update(ctx, missionToDAO(mission))
	if err != nil {
		return domain.Mission{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return missionToDomain(updated), nil
}

func (r *MissionRepository) UpdateStatus(ctx context.Context, id uint, status domain.MissionStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *MissionRepository) IncrementFilledSlots(ctx context.Context, id uint) error {
	if err := r.dao.IncrementFilledSlots(ctx, id); err != nil {
		return fmt.Errorf("r.dao.IncrementFilledSlots -> %w", err)
	}

	return nil
}

func (r *MissionRepository) DecrementFilledSlots(ctx context.Context, id uint) error {
	if err := r.dao.DecrementFilledSlots(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DecrementFilledSlots -> %w", err)
	}

	return nil
}

func (r *MissionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *MissionRepository) CountApplications(ctx context.Context, id uint) (int64, error) {
	count, err := r.dao.CountApplications(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountApplications -> %w", err)
	}

	return count, nil
}
