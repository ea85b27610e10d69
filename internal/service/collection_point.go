package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type CollectionPointRepository interface {
	FindAll(ctx context.Context, filter domain.CollectionPointFilter) ([]domain.CollectionPoint, error)
	FindByID(ctx context.Context, id uint) (domain.CollectionPoint, error)
	Create(ctx context.Context, point domain.CollectionPoint) (domain.CollectionPoint, error)
	Update(ctx context.Context, point domain.CollectionPoint) (domain.CollectionPoint, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	CountDependents(ctx context.Context, id uint) (needs, donations int64, err error)
}

type CollectionPointUpdate struct {
	Name         *string
	Description  *string
	CityID       *uint
	Address      *string
	Latitude     *float64
	Longitude    *float64
	Phone        *string
	OpeningHours *string
	ManagerName  *string
	ManagerPhone *string
}

type CollectionPointService struct {
	repo          CollectionPointRepository
	catalog       CatalogRepository
	people        PersonFinder
	defaultCityID uint
}

func NewCollectionPointService(repo CollectionPointRepository, catalog CatalogRepository, people PersonFinder, defaultCityID uint) *CollectionPointService {
	return &CollectionPointService{
		repo:          repo,
		catalog:       catalog,
		people:        people,
		defaultCityID: defaultCityID,
	}
}

func (s *CollectionPointService) List(ctx context.Context, filter domain.CollectionPointFilter) ([]domain.CollectionPoint, error) {
	points, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return points, nil
}

func (s *CollectionPointService) ListActive(ctx context.Context) ([]domain.CollectionPoint, error) {
	active := true
	return s.List(ctx, domain.CollectionPointFilter{Active: &active})
}

func (s *CollectionPointService) ListByCity(ctx context.Context, cityID uint) ([]domain.CollectionPoint, error) {
	if _, err := s.catalog.FindCityByID(ctx, cityID); err != nil {
		return nil, fmt.Errorf("s.catalog.FindCityByID -> %w", err)
	}

	return s.List(ctx, domain.CollectionPointFilter{CityID: &cityID})
}

func (s *CollectionPointService) Get(ctx context.Context, id uint) (domain.CollectionPoint, error) {
	point, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return point, nil
}

func (s *CollectionPointService) Create(ctx context.Context, point domain.CollectionPoint, adminID uint) (domain.CollectionPoint, error) {
	if _, err := requireAdmin(ctx, s.people, adminID); err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("requireAdmin -> %w", err)
	}

	if point.CityID == 0 {
		point.CityID = s.defaultCityID
	}
	if point.CityID == 0 {
		return domain.CollectionPoint{}, domain.InvalidArgument("city is required")
	}
	if _, err := s.catalog.FindCityByID(ctx, point.CityID); err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("s.catalog.FindCityByID -> %w", err)
	}

	point.CreatorID = adminID
	point.Active = true

	created, err := s.repo.Create(ctx, point)
	if err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CollectionPointService) Update(ctx context.Context, id uint, upd CollectionPointUpdate) (domain.CollectionPoint, error) {
	point, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if upd.CityID != nil && *upd.CityID != point.CityID {
		if _, err = s.catalog.FindCityByID(ctx, *upd.CityID); err != nil {
			return domain.CollectionPoint{}, fmt.Errorf("s.catalog.FindCityByID -> %w", err)
		}
		point.CityID = *upd.CityID
		point.City = nil
	}
	setIfNotNil(&point.Name, upd.Name)
	setIfNotNil(&point.Description, upd.Description)
	setIfNotNil(&point.Address, upd.Address)
	setIfNotNil(&point.Phone, upd.Phone)
	setIfNotNil(&point.OpeningHours, upd.OpeningHours)
	setIfNotNil(&point.ManagerName, upd.ManagerName)
	setIfNotNil(&point.ManagerPhone, upd.ManagerPhone)
	if upd.Latitude != nil {
		point.Latitude = upd.Latitude
	}
	if upd.Longitude != nil {
		point.Longitude = upd.Longitude
	}

	updated, err := s.repo.Update(ctx, point)
	if err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CollectionPointService) Activate(ctx context.Context, id uint) (domain.CollectionPoint, error) {
	return s.setActive(ctx, id, true)
}

func (s *CollectionPointService) Deactivate(ctx context.Context, id uint) (domain.CollectionPoint, error) {
	return s.setActive(ctx, id, false)
}

func (s *CollectionPointService) setActive(ctx context.Context, id uint, active bool) (domain.CollectionPoint, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return domain.CollectionPoint{}, fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *CollectionPointService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	needs, donations, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.CountDependents -> %w", err)
	}

	var deps []string
	if needs > 0 {
		deps = append(deps, fmt.Sprintf("%d needs", needs))
	}
	if donations > 0 {
		deps = append(deps, fmt.Sprintf("%d donations", donations))
	}
	if len(deps) > 0 {
		return blockedBy("collection point", id, deps)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
