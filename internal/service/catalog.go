package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

// CatalogService serves the read-only reference data loaded by the seed command.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (s *CatalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	cities, err := s.repo.FindCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCities -> %w", err)
	}

	return cities, nil
}

func (s *CatalogService) ListMissionCategories(ctx context.Context) ([]domain.MissionCategory, error) {
	categories, err := s.repo.FindMissionCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMissionCategories -> %w", err)
	}

	return categories, nil
}

func (s *CatalogService) ListNewsCategories(ctx context.Context) ([]domain.NewsCategory, error) {
	categories, err := s.repo.FindNewsCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindNewsCategories -> %w", err)
	}

	return categories, nil
}

func (s *CatalogService) ListItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	itemTypes, err := s.repo.FindItemTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindItemTypes -> %w", err)
	}

	return itemTypes, nil
}
