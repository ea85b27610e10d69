package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type NewsDAO interface {
	FindAll(ctx context.Context, filter domain.NewsFilter) ([]dao.News, error)
	FindByID(ctx context.Context, id uint) (dao.News, error)
	Insert(ctx context.Context, news dao.News) (dao.News, error)
	Update(ctx context.Context, news dao.News) (dao.News, error)
	SetHighlighted(ctx context.Context, id uint, highlighted bool) error
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	CountImages(ctx context.Context, id uint) (int64, error)
}

type NewsRepository struct {
	dao NewsDAO
}

func NewNewsRepository(dao NewsDAO) *NewsRepository {
	return &NewsRepository{
		dao: dao,
	}
}

func (r *NewsRepository) FindAll(ctx context.Context, filter domain.NewsFilter) ([]domain.News, error) {
	found, err := r.dao.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, newsToDomain), nil
}

func (r *NewsRepository) FindByID(ctx context.Context, id uint) (domain.News, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.News{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return newsToDomain(found), nil
}

func (r *NewsRepository) Create(ctx context.Context, news domain.News) (domain.News, error) {
	created, err := r.dao.Insert(ctx, newsToDAO(news))
	if err != nil {
		return domain.News{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return newsToDomain(created), nil
}

func (r *NewsRepository) Update(ctx context.Context, news domain.News) (domain.News, error) {
	updated, err := r.dao.Update(ctx, newsToDAO(news))
	if err != nil {
		return domain.News{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return newsToDomain(updated), nil
}

func (r *NewsRepository) SetHighlighted(ctx context.Context, id uint, highlighted bool) error {
	if err := r.dao.SetHighlighted(ctx, id, highlighted); err != nil {
		return fmt.Errorf("r.dao.SetHighlighted -> %w", err)
	}

	return nil
}

func (r *NewsRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.dao.IncrementViews(ctx, id); err != nil {
		return fmt.Errorf("r.dao.IncrementViews -> %w", err)
	}

	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *NewsRepository) CountImages(ctx context.Context, id uint) (int64, error) {
	count, err := r.dao.CountImages(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountImages -> %w", err)
	}

	return count, nil
}

type NewsImageDAO interface {
	FindByNewsID(ctx context.Context, newsID uint) ([]dao.NewsImage, error)
	FindByID(ctx context.Context, id uint) (dao.NewsImage, error)
	FindPrimary(ctx context.Context, newsID uint) (dao.NewsImage, error)
	MaxPosition(ctx context.Context, newsID uint) (int, error)
	Insert(ctx context.Context, image dao.NewsImage) (dao.NewsImage, error)
	Update(ctx context.Context, image dao.NewsImage) (dao.NewsImage, error)
	ClearPrimary(ctx context.Context, newsID, keepID uint) error
	SetPrimary(ctx context.Context, newsID, id uint) error
	UpdatePosition(ctx context.Context, newsID, id uint, position int) error
	Delete(ctx context.Context, id uint) error
}

type NewsImageRepository struct {
	dao NewsImageDAO
}

func NewNewsImageRepository(dao NewsImageDAO) *NewsImageRepository {
	return &NewsImageRepository{
		dao: dao,
	}
}

func (r *NewsImageRepository) FindByNewsID(ctx context.Context, newsID uint) ([]domain.NewsImage, error) {
	found, err := r.dao.FindByNewsID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByNewsID -> %w", err)
	}

	return mapSlice(found, newsImageToDomain), nil
}

func (r *NewsImageRepository) FindByID(ctx context.Context, id uint) (domain.NewsImage, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return newsImageToDomain(found), nil
}

func (r *NewsImageRepository) FindPrimary(ctx context.Context, newsID uint) (domain.NewsImage, error) {
	found, err := r.dao.FindPrimary(ctx, newsID)
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("r.dao.FindPrimary -> %w", err)
	}

	return newsImageToDomain(found), nil
}

func (r *NewsImageRepository) MaxPosition(ctx context.Context, newsID uint) (int, error) {
	max, err := r.dao.MaxPosition(ctx, newsID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MaxPosition -> %w", err)
	}

	return max, nil
}

func (r *NewsImageRepository) Create(ctx context.Context, image domain.NewsImage) (domain.NewsImage, error) {
	created, err := r.dao.Insert(ctx, newsImageToDAO(image))
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return newsImageToDomain(created), nil
}

func (r *NewsImageRepository) Update(ctx context.Context, image domain.NewsImage) (domain.NewsImage, error) {
	updated, err := r.dao.Update(ctx, newsImageToDAO(image))
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return newsImageToDomain(updated), nil
}

func (r *NewsImageRepository) ClearPrimary(ctx context.Context, newsID, keepID uint) error {
	if err := r.dao.ClearPrimary(ctx, newsID, keepID); err != nil {
		return fmt.Errorf("r.dao.ClearPrimary -> %w", err)
	}

	return nil
}

func (r *NewsImageRepository) SetPrimary(ctx context.Context, newsID, id uint) error {
	if err := r.dao.SetPrimary(ctx, newsID, id); err != nil {
		return fmt.Errorf("r.dao.SetPrimary -> %w", err)
	}

	return nil
}

func (r *NewsImageRepository) UpdatePosition(ctx context.Context, newsID, id uint, position int) error {
	if err := r.dao.UpdatePosition(ctx, newsID, id, position); err != nil {
		return fmt.Errorf("r.dao.UpdatePosition -> %w", err)
	}

	return nil
}

func (r *NewsImageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
