package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type NewsRepository interface {
	FindAll(ctx context.Context, filter domain.NewsFilter) ([]domain.News, error)
	FindByID(ctx context.Context, id uint) (domain.News, error)
	Create(ctx context.Context, news domain.News) (domain.News, error)
	Update(ctx context.Context, news domain.News) (domain.News, error)
	SetHighlighted(ctx context.Context, id uint, highlighted bool) error
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	CountImages(ctx context.Context, id uint) (int64, error)
}

type NewsUpdate struct {
	Title       *string
	Subtitle    *string
	Content     *string
	CategoryID  *uint
	Highlighted *bool
	Status      *domain.NewsStatus
}

type NewsService struct {
	repo    NewsRepository
	catalog CatalogRepository
	people  PersonFinder
}

func NewNewsService(repo NewsRepository, catalog CatalogRepository, people PersonFinder) *NewsService {
	return &NewsService{
		repo:    repo,
		catalog: catalog,
		people:  people,
	}
}

func (s *NewsService) List(ctx context.Context, filter domain.NewsFilter) ([]domain.News, error) {
	news, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return news, nil
}

func (s *NewsService) ListPublished(ctx context.Context) ([]domain.News, error) {
	status := domain.NewsPublished
	return s.List(ctx, domain.NewsFilter{Status: &status})
}

// ListHighlighted only returns published news. A highlighted draft stays hidden.
func (s *NewsService) ListHighlighted(ctx context.Context) ([]domain.News, error) {
	status := domain.NewsPublished
	highlighted := true
	return s.List(ctx, domain.NewsFilter{Status: &status, Highlighted: &highlighted})
}

func (s *NewsService) ListByCategory(ctx context.Context, categoryID uint) ([]domain.News, error) {
	if _, err := s.catalog.FindNewsCategoryByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("s.catalog.FindNewsCategoryByID -> %w", err)
	}

	return s.List(ctx, domain.NewsFilter{CategoryID: &categoryID})
}

func (s *NewsService) Get(ctx context.Context, id uint) (domain.News, error) {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return news, nil
}

func (s *NewsService) Create(ctx context.Context, news domain.News, adminID uint) (domain.News, error) {
	if _, err := s.catalog.FindNewsCategoryByID(ctx, news.CategoryID); err != nil {
		return domain.News{}, fmt.Errorf("s.catalog.FindNewsCategoryByID -> %w", err)
	}
	if _, err := requireAdmin(ctx, s.people, adminID); err != nil {
		return domain.News{}, fmt.Errorf("requireAdmin -> %w", err)
	}

	if news.Status == "" {
		news.Status = domain.NewsDraft
	}
	if !news.Status.Valid() {
		return domain.News{}, domain.InvalidArgument("invalid news status %q", news.Status)
	}
	if news.Status == domain.NewsPublished {
		publishedAt := now()
		news.PublishedAt = &publishedAt
	} else {
		news.PublishedAt = nil
	}
	news.AuthorID = adminID
	news.ViewCount = 0
	news.Images = nil

	created, err := s.repo.Create(ctx, news)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *NewsService) Update(ctx context.Context, id uint, upd NewsUpdate) (domain.News, error) {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if upd.CategoryID != nil && *upd.CategoryID != news.CategoryID {
		if _, err = s.catalog.FindNewsCategoryByID(ctx, *upd.CategoryID); err != nil {
			return domain.News{}, fmt.Errorf("s.catalog.FindNewsCategoryByID -> %w", err)
		}
		news.CategoryID = *upd.CategoryID
		news.Category = nil
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return domain.News{}, domain.InvalidArgument("invalid news status %q", *upd.Status)
		}
		if *upd.Status == domain.NewsPublished && news.PublishedAt == nil {
			publishedAt := now()
			news.PublishedAt = &publishedAt
		}
		news.Status = *upd.Status
	}
	setIfNotNil(&news.Title, upd.Title)
	setIfNotNil(&news.Subtitle, upd.Subtitle)
	setIfNotNil(&news.Content, upd.Content)
	setIfNotNil(&news.Highlighted, upd.Highlighted)

	updated, err := s.repo.Update(ctx, news)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Publish stamps published_at with the current time, also when the news was already published.
func (s *NewsService) Publish(ctx context.Context, id uint) (domain.News, error) {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	publishedAt := now()
	news.Status = domain.NewsPublished
	news.PublishedAt = &publishedAt

	updated, err := s.repo.Update(ctx, news)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *NewsService) SetHighlight(ctx context.Context, id uint, highlighted bool) (domain.News, error) {
	if err := s.repo.SetHighlighted(ctx, id, highlighted); err != nil {
		return domain.News{}, fmt.Errorf("s.repo.SetHighlighted -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *NewsService) IncrementViews(ctx context.Context, id uint) (domain.News, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return domain.News{}, fmt.Errorf("s.repo.IncrementViews -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *NewsService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	count, err := s.repo.CountImages(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.CountImages -> %w", err)
	}
	if count > 0 {
		return blockedBy("news", id, []string{fmt.Sprintf("%d images", count)})
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

type NewsImageRepository interface {
	FindByNewsID(ctx context.Context, newsID uint) ([]domain.NewsImage, error)
	FindByID(ctx context.Context, id uint) (domain.NewsImage, error)
	FindPrimary(ctx context.Context, newsID uint) (domain.NewsImage, error)
	MaxPosition(ctx context.Context, newsID uint) (int, error)
	Create(ctx context.Context, image domain.NewsImage) (domain.NewsImage, error)
	Update(ctx context.Context, image domain.NewsImage) (domain.NewsImage, error)
	ClearPrimary(ctx context.Context, newsID, keepID uint) error
	SetPrimary(ctx context.Context, newsID, id uint) error
	UpdatePosition(ctx context.Context, newsID, id uint, position int) error
	Delete(ctx context.Context, id uint) error
}

type NewsFinder interface {
	FindByID(ctx context.Context, id uint) (domain.News, error)
}

type NewsImageUpdate struct {
	URL       *string
	Caption   *string
	Position  *int
	IsPrimary *bool
}

// NewsImageService keeps at most one primary image per news item.
type NewsImageService struct {
	tx   Transactor
	repo NewsImageRepository
	news NewsFinder
}

func NewNewsImageService(tx Transactor, repo NewsImageRepository, news NewsFinder) *NewsImageService {
	return &NewsImageService{
		tx:   tx,
		repo: repo,
		news: news,
	}
}

func (s *NewsImageService) ListByNews(ctx context.Context, newsID uint) ([]domain.NewsImage, error) {
	if _, err := s.news.FindByID(ctx, newsID); err != nil {
		return nil, fmt.Errorf("s.news.FindByID -> %w", err)
	}

	images, err := s.repo.FindByNewsID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByNewsID -> %w", err)
	}

	return images, nil
}

func (s *NewsImageService) Get(ctx context.Context, id uint) (domain.NewsImage, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return image, nil
}

func (s *NewsImageService) GetPrimary(ctx context.Context, newsID uint) (domain.NewsImage, error) {
	image, err := s.repo.FindPrimary(ctx, newsID)
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("s.repo.FindPrimary -> %w", err)
	}

	return image, nil
}

// Create appends the image after the last one unless a position is given.
func (s *NewsImageService) Create(ctx context.Context, image domain.NewsImage, position *int) (domain.NewsImage, error) {
	if _, err := s.news.FindByID(ctx, image.NewsID); err != nil {
		return domain.NewsImage{}, fmt.Errorf("s.news.FindByID -> %w", err)
	}

	var created domain.NewsImage
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if position != nil {
			image.Position = *position
		} else {
			maxPosition, err := s.repo.MaxPosition(ctx, image.NewsID)
			if err != nil {
				return fmt.Errorf("s.repo.MaxPosition -> %w", err)
			}
			image.Position = maxPosition + 1
		}
		if image.Position < 0 {
			return domain.InvalidArgument("position cannot be negative")
		}

		if image.IsPrimary {
			if err = s.repo.ClearPrimary(ctx, image.NewsID, 0); err != nil {
				return fmt.Errorf("s.repo.ClearPrimary -> %w", err)
			}
		}

		image.UploadedAt = now()
		created, err = s.repo.Create(ctx, image)
		if err != nil {
			return fmt.Errorf("s.repo.Create -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return created, nil
}

func (s *NewsImageService) Update(ctx context.Context, id uint, upd NewsImageUpdate) (domain.NewsImage, error) {
	if upd.Position != nil && *upd.Position < 0 {
		return domain.NewsImage{}, domain.InvalidArgument("position cannot be negative")
	}

	var updated domain.NewsImage
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		image, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByID -> %w", err)
		}

		setIfNotNil(&image.URL, upd.URL)
		setIfNotNil(&image.Caption, upd.Caption)
		setIfNotNil(&image.Position, upd.Position)
		setIfNotNil(&image.IsPrimary, upd.IsPrimary)

		if image.IsPrimary {
			if err = s.repo.ClearPrimary(ctx, image.NewsID, image.ID); err != nil {
				return fmt.Errorf("s.repo.ClearPrimary -> %w", err)
			}
		}

		updated, err = s.repo.Update(ctx, image)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

func (s *NewsImageService) SetPrimary(ctx context.Context, id uint) (domain.NewsImage, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		image, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByID -> %w", err)
		}

		if err = s.repo.SetPrimary(ctx, image.NewsID, image.ID); err != nil {
			return fmt.Errorf("s.repo.SetPrimary -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.NewsImage{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return s.Get(ctx, id)
}

// Reorder applies every position in one transaction. An image that does not belong to the news
// item aborts the whole reorder.
func (s *NewsImageService) Reorder(ctx context.Context, newsID uint, positions map[uint]int) ([]domain.NewsImage, error) {
	if len(positions) == 0 {
		return nil, domain.InvalidArgument("no positions given")
	}
	if _, err := s.news.FindByID(ctx, newsID); err != nil {
		return nil, fmt.Errorf("s.news.FindByID -> %w", err)
	}

	ids := make([]uint, 0, len(positions))
	for id, position := range positions {
		if position < 0 {
			return nil, domain.InvalidArgument("position of image %d cannot be negative", id)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			if err := s.repo.UpdatePosition(ctx, newsID, id, positions[id]); err != nil {
				return fmt.Errorf("s.repo.UpdatePosition -> %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return s.ListByNews(ctx, newsID)
}

func (s *NewsImageService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
