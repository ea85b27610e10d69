package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type CatalogDAO interface {
	FindCities(ctx context.Context) ([]dao.City, error)
	FindCityByID(ctx context.Context, id uint) (dao.City, error)
	FindMissionCategories(ctx context.Context) ([]dao.MissionCategory, error)
	FindMissionCategoryByID(ctx context.Context, id uint) (dao.MissionCategory, error)
	FindNewsCategories(ctx context.Context) ([]dao.NewsCategory, error)
	FindNewsCategoryByID(ctx context.Context, id uint) (dao.NewsCategory, error)
	FindItemTypes(ctx context.Context) ([]dao.ItemType, error)
	FindItemTypeByID(ctx context.Context, id uint) (dao.ItemType, error)
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

func (r *CatalogRepository) FindCities(ctx context.Context) ([]domain.City, error) {
	found, err := r.dao.FindCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCities -> %w", err)
	}

	return mapSlice(found, cityToDomain), nil
}

func (r *CatalogRepository) FindCityByID(ctx context.Context, id uint) (domain.City, error) {
	found, err := r.dao.FindCityByID(ctx, id)
	if err != nil {
		return domain.City{}, fmt.Errorf("r.dao.FindCityByID -> %w", err)
	}

	return cityToDomain(found), nil
}

func (r *CatalogRepository) FindMissionCategories(ctx context.Context) ([]domain.MissionCategory, error) {
	found, err := r.dao.FindMissionCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMissionCategories -> %w", err)
	}

	return mapSlice(found, missionCategoryToDomain), nil
}

func (r *CatalogRepository) FindMissionCategoryByID(ctx context.Context, id uint) (domain.MissionCategory, error) {
	found, err := r.dao.FindMissionCategoryByID(ctx, id)
	if err != nil {
		return domain.MissionCategory{}, fmt.Errorf("r.dao.FindMissionCategoryByID -> %w", err)
	}

	return missionCategoryToDomain(found), nil
}

func (r *CatalogRepository) FindNewsCategories(ctx context.Context) ([]domain.NewsCategory, error) {
	found, err := r.dao.FindNewsCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindNewsCategories -> %w", err)
	}

	return mapSlice(found, newsCategoryToDomain), nil
}

func (r *CatalogRepository) FindNewsCategoryByID(ctx context.Context, id uint) (domain.NewsCategory, error) {
	found, err := r.dao.FindNewsCategoryByID(ctx, id)
	if err != nil {
		return domain.NewsCategory{}, fmt.Errorf("r.dao.FindNewsCategoryByID -> %w", err)
	}

	return newsCategoryToDomain(found), nil
}

func (r *CatalogRepository) FindItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	found, err := r.dao.FindItemTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindItemTypes -> %w", err)
	}

	return mapSlice(found, itemTypeToDomain), nil
}

func (r *CatalogRepository) FindItemTypeByID(ctx context.Context, id uint) (domain.ItemType, error) {
	found, err := r.dao.FindItemTypeByID(ctx, id)
	if err != nil {
		return domain.ItemType{}, fmt.Errorf("r.dao.FindItemTypeByID -> %w", err)
	}

	return itemTypeToDomain(found), nil
}
