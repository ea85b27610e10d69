package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type VolunteerDAO interface {
	FindAll(ctx context.Context, status *domain.VolunteerStatus) ([]dao.Volunteer, error)
	FindByID(ctx context.Context, id uint) (dao.Volunteer, error)
	ExistsForPerson(ctx context.Context, personID uint) (bool, error)
	Insert(ctx context.Context, volunteer dao.Volunteer) (dao.Volunteer, error)
	Update(ctx context.Context, volunteer dao.Volunteer) (dao.Volunteer, error)
	Delete(ctx context.Context, id uint) error
	CountApplications(ctx context.Context, id uint) (int64, error)
}

type VolunteerRepository struct {
	dao VolunteerDAO
}

func NewVolunteerRepository(dao VolunteerDAO) *VolunteerRepository {
	return &VolunteerRepository{
		dao: dao,
	}
}

func (r *VolunteerRepository) FindAll(ctx context.Context, status *domain.VolunteerStatus) ([]domain.Volunteer, error) {
	found, err := r.dao.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, volunteerToDomain), nil
}

func (r *VolunteerRepository) FindByID(ctx context.Context, id uint) (domain.Volunteer, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return volunteerToDomain(found), nil
}

func (r *VolunteerRepository) ExistsForPerson(ctx context.Context, personID uint) (bool, error) {
	exists, err := r.dao.ExistsForPerson(ctx, personID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsForPerson -> %w", err)
	}

	return exists, nil
}

func (r *VolunteerRepository) Create(ctx context.Context, volunteer domain.Volunteer) (domain.Volunteer, error) {
	created, err := r.dao.Insert(ctx, volunteerToDAO(volunteer))
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return volunteerToDomain(created), nil
}

func (r *VolunteerRepository) Update(ctx context.Context, volunteer domain.Volunteer) (domain.Volunteer, error) {
	updated, err := r.dao.Update(ctx, volunteerToDAO(volunteer))
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return volunteerToDomain(updated), nil
}

func (r *VolunteerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *VolunteerRepository) CountApplications(ctx context.Context, id uint) (int64, error) {
	count, err := r.dao.CountApplications(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountApplications -> %w", err)
	}

	return count, nil
}
