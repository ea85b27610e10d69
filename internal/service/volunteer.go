package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type VolunteerRepository interface {
	FindAll(ctx context.Context, status *domain.VolunteerStatus) ([]domain.Volunteer, error)
	FindByID(ctx context.Context, id uint) (domain.Volunteer, error)
	ExistsForPerson(ctx context.Context, personID uint) (bool, error)
	Create(ctx context.Context, volunteer domain.Volunteer) (domain.Volunteer, error)
	Update(ctx context.Context, volunteer domain.Volunteer) (domain.Volunteer, error)
	Delete(ctx context.Context, id uint) error
	CountApplications(ctx context.Context, id uint) (int64, error)
}

type VolunteerUpdate struct {
	Education             *string
	Profession            *string
	Skills                *string
	Availability          *string
	EmergencyExperience   *string
	DriverLicenseCategory *string
	HasVehicle            *bool
	Note                  *string
}

type VolunteerService struct {
	repo   VolunteerRepository
	people PersonFinder
}

func NewVolunteerService(repo VolunteerRepository, people PersonFinder) *VolunteerService {
	return &VolunteerService{
		repo:   repo,
		people: people,
	}
}

func (s *VolunteerService) List(ctx context.Context) ([]domain.Volunteer, error) {
	volunteers, err := s.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return volunteers, nil
}

func (s *VolunteerService) ListByStatus(ctx context.Context, status domain.VolunteerStatus) ([]domain.Volunteer, error) {
	if !status.Valid() {
		return nil, domain.InvalidArgument("invalid volunteer status %q", status)
	}

	volunteers, err := s.repo.FindAll(ctx, &status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return volunteers, nil
}

func (s *VolunteerService) ListApproved(ctx context.Context) ([]domain.Volunteer, error) {
	return s.ListByStatus(ctx, domain.VolunteerApproved)
}

func (s *VolunteerService) Get(ctx context.Context, id uint) (domain.Volunteer, error) {
	volunteer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return volunteer, nil
}

// Create registers a person as a volunteer. New volunteers wait for approval.
func (s *VolunteerService) Create(ctx context.Context, volunteer domain.Volunteer) (domain.Volunteer, error) {
	if _, err := s.people.FindByID(ctx, volunteer.PersonID); err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.people.FindByID -> %w", err)
	}

	exists, err := s.repo.ExistsForPerson(ctx, volunteer.PersonID)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.ExistsForPerson -> %w", err)
	}
	if exists {
		return domain.Volunteer{}, domain.Conflict("person %d is already registered as a volunteer", volunteer.PersonID)
	}

	volunteer.Status = domain.VolunteerPending
	volunteer.ApprovedAt = nil

	created, err := s.repo.Create(ctx, volunteer)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *VolunteerService) Update(ctx context.Context, id uint, upd VolunteerUpdate) (domain.Volunteer, error) {
	volunteer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	setIfNotNil(&volunteer.Education, upd.Education)
	setIfNotNil(&volunteer.Profession, upd.Profession)
	setIfNotNil(&volunteer.Skills, upd.Skills)
	setIfNotNil(&volunteer.Availability, upd.Availability)
	setIfNotNil(&volunteer.EmergencyExperience, upd.EmergencyExperience)
	setIfNotNil(&volunteer.DriverLicenseCategory, upd.DriverLicenseCategory)
	setIfNotNil(&volunteer.HasVehicle, upd.HasVehicle)
	setIfNotNil(&volunteer.Note, upd.Note)

	updated, err := s.repo.Update(ctx, volunteer)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VolunteerService) Approve(ctx context.Context, id uint) (domain.Volunteer, error) {
	volunteer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if volunteer.Status == domain.VolunteerApproved {
		return volunteer, nil
	}

	approvedAt := now()
	volunteer.Status = domain.VolunteerApproved
	volunteer.ApprovedAt = &approvedAt

	updated, err := s.repo.Update(ctx, volunteer)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VolunteerService) Reject(ctx context.Context, id uint, note *string) (domain.Volunteer, error) {
	volunteer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	volunteer.Status = domain.VolunteerRejected
	volunteer.ApprovedAt = nil
	setIfNotNil(&volunteer.Note, note)

	updated, err := s.repo.Update(ctx, volunteer)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VolunteerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	count, err := s.repo.CountApplications(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.CountApplications -> %w", err)
	}
	if count > 0 {
		return blockedBy("volunteer", id, []string{fmt.Sprintf("%d mission applications", count)})
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func setIfNotNil[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
