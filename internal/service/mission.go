package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type MissionRepository interface {
	FindAll(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error)
	FindByID(ctx context.Context, id uint) (domain.Mission, error)
	FindByIDForUpdate(ctx context.Context, id uint) (domain.Mission, error)
	Create(ctx context.Context, mission domain.Mission) (domain.Mission, error)
	Update(ctx context.Context, mission domain.Mission) (domain.Mission, error)
	UpdateStatus(ctx context.Context, id uint, status domain.MissionStatus) error
	IncrementFilledSlots(ctx context.Context, id uint) error
	DecrementFilledSlots(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	CountApplications(ctx context.Context, id uint) (int64, error)
}

type CatalogRepository interface {
	FindCities(ctx context.Context) ([]domain.City, error)
	FindCityByID(ctx context.Context, id uint) (domain.City, error)
	FindMissionCategories(ctx context.Context) ([]domain.MissionCategory, error)
	FindMissionCategoryByID(ctx context.Context, id uint) (domain.MissionCategory, error)
	FindNewsCategories(ctx context.Context) ([]domain.NewsCategory, error)
	FindNewsCategoryByID(ctx context.Context, id uint) (domain.NewsCategory, error)
	FindItemTypes(ctx context.Context) ([]domain.ItemType, error)
	FindItemTypeByID(ctx context.Context, id uint) (domain.ItemType, error)
}

// MissionUpdate holds the fields of a partial update. Nil fields keep their value.
type MissionUpdate struct {
	Title        *string
	Description  *string
	CategoryID   *uint
	MeetingPoint *string
	CityID       *uint
	Latitude     *float64
	Longitude    *float64
	StartsAt     *time.Time
	EndsAt       *time.Time
	TotalSlots   *int
	Status       *domain.MissionStatus
}

type MissionService struct {
	tx            Transactor
	repo          MissionRepository
	catalog       CatalogRepository
	people        PersonFinder
	defaultCityID uint
}

func NewMissionService(tx Transactor, repo MissionRepository, catalog CatalogRepository, people PersonFinder, defaultCityID uint) *MissionService {
	return &MissionService{
		tx:            tx,
		repo:          repo,
		catalog:       catalog,
		people:        people,
		defaultCityID: defaultCityID,
	}
}

func (s *MissionService) List(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error) {
	missions, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return missions, nil
}

func (s *MissionService) ListByStatus(ctx context.Context, status domain.MissionStatus) ([]domain.Mission, error) {
	if !status.Valid() {
		return nil, domain.InvalidArgument("invalid mission status %q", status)
	}

	return s.List(ctx, domain.MissionFilter{Status: &status})
}

func (s *MissionService) ListByCategory(ctx context.Context, categoryID uint) ([]domain.Mission, error) {
	if _, err := s.catalog.FindMissionCategoryByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("s.catalog.FindMissionCategoryByID -> %w", err)
	}

	return s.List(ctx, domain.MissionFilter{CategoryID: &categoryID})
}

// ListAvailable returns active missions that still have an open slot.
func (s *MissionService) ListAvailable(ctx context.Context) ([]domain.Mission, error) {
	return s.List(ctx, domain.MissionFilter{Available: true})
}

func (s *MissionService) Get(ctx context.Context, id uint) (domain.Mission, error) {
	mission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Mission{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return mission, nil
}

func (s *MissionService) Create(ctx context.Context, mission domain.Mission, adminID uint) (domain.Mission, error) {
	if _, err := s.catalog.FindMissionCategoryByID(ctx, mission.CategoryID); err != nil {
		return domain.Mission{}, fmt.Errorf("s.catalog.FindMissionCategoryByID -> %w", err)
	}

	if _, err := requireAdmin(ctx, s.people, adminID); err != nil {
		return domain.Mission{}, fmt.Errorf("requireAdmin -> %w", err)
	}

	if mission.StartsAt.Before(now()) {
		return domain.Mission{}, domain.InvalidArgument("start date cannot be in the past")
	}

	mission.FilledSlots = 0
	if err := mission.ValidateSchedule(); err != nil {
		return domain.Mission{}, err
	}
	if err := mission.ValidateSlots(); err != nil {
		return domain.Mission{}, err
	}

	if mission.CityID == nil && s.defaultCityID != 0 {
		cityID := s.defaultCityID
		mission.CityID = &cityID
	}
	if mission.CityID != nil {
		if _, err := s.catalog.FindCityByID(ctx, *mission.CityID); err != nil {
			return domain.Mission{}, fmt.Errorf("s.catalog.FindCityByID -> %w", err)
		}
	}

	mission.Status = domain.MissionActive
	mission.CreatorID = adminID

	created, err := s.repo.Create(ctx, mission)
	if err != nil {
		return domain.Mission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update validates the merged mission before writing, under a lock on the mission row so a
// concurrent approval cannot slip between the slot check and the write.
func (s *MissionService) Update(ctx context.Context, id uint, upd MissionUpdate) (domain.Mission, error) {
	var updated domain.Mission
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		mission, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		if upd.CategoryID != nil && *upd.CategoryID != mission.CategoryID {
			if _, err = s.catalog.FindMissionCategoryByID(ctx, *upd.CategoryID); err != nil {
				return fmt.Errorf("s.catalog.FindMissionCategoryByID -> %w", err)
			}
		}
		if upd.CityID != nil {
			if _, err = s.catalog.FindCityByID(ctx, *upd.CityID); err != nil {
				return fmt.Errorf("s.catalog.FindCityByID -> %w", err)
			}
		}
		if upd.Status != nil && !upd.Status.Valid() {
			return domain.InvalidArgument("invalid mission status %q", *upd.Status)
		}

		upd.applyTo(&mission)

		if err = mission.ValidateSchedule(); err != nil {
			return err
		}
		if err = mission.ValidateSlots(); err != nil {
			return err
		}

		updated, err = s.repo.Update(ctx, mission)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Mission{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

func (u MissionUpdate) applyTo(m *domain.Mission) {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.CategoryID != nil {
		m.CategoryID = *u.CategoryID
	}
	if u.MeetingPoint != nil {
		m.MeetingPoint = *u.MeetingPoint
	}
	if u.CityID != nil {
		m.CityID = u.CityID
	}
	if u.Latitude != nil {
		m.Latitude = u.Latitude
	}
	if u.Longitude != nil {
		m.Longitude = u.Longitude
	}
	if u.StartsAt != nil {
		m.StartsAt = *u.StartsAt
	}
	if u.EndsAt != nil {
		m.EndsAt = u.EndsAt
	}
	if u.TotalSlots != nil {
		m.TotalSlots = *u.TotalSlots
	}
	if u.Status != nil {
		m.Status = *u.Status
	}
}

// UpdateFilledSlots overwrites the counter. Meant for administrative corrections only.
func (s *MissionService) UpdateFilledSlots(ctx context.Context, id uint, filled int) (domain.Mission, error) {
	var updated domain.Mission
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		mission, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		mission.FilledSlots = filled
		if err = mission.ValidateSlots(); err != nil {
			return err
		}

		updated, err = s.repo.Update(ctx, mission)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Mission{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

func (s *MissionService) Finish(ctx context.Context, id uint) (domain.Mission, error) {
	return s.setStatus(ctx, id, domain.MissionFinished)
}

func (s *MissionService) Cancel(ctx context.Context, id uint) (domain.Mission, error) {
	return s.setStatus(ctx, id, domain.MissionCancelled)
}

func (s *MissionService) setStatus(ctx context.Context, id uint, status domain.MissionStatus) (domain.Mission, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return domain.Mission{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *MissionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	count, err := s.repo.CountApplications(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.CountApplications -> %w", err)
	}
	if count > 0 {
		return blockedBy("mission", id, []string{fmt.Sprintf("%d applications", count)})
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
