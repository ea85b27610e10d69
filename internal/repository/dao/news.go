package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type News struct {
	ID uint `gorm:"primaryKey"`

	Title       string        `gorm:"size:200;not null"`
	Subtitle    string        `gorm:"size:255"`
	Content     string        `gorm:"type:text;not null"`
	CategoryID  uint          `gorm:"not null;index"`
	Category    *NewsCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	AuthorID    uint          `gorm:"not null;index"`
	Author      *Person       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Highlighted bool          `gorm:"not null"`
	Status      string        `gorm:"size:20;not null;index"`
	PublishedAt *time.Time
	ViewCount   int         `gorm:"not null;check:chk_news_view_count,view_count >= 0"`
	Images      []NewsImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (News) TableName() string { return "news" }

type NewsImage struct {
	ID uint `gorm:"primaryKey"`

	NewsID     uint      `gorm:"not null;index;uniqueIndex:uni_news_images_primary,where:is_primary"`
	URL        string    `gorm:"column:url;size:500;not null"`
	Caption    string    `gorm:"size:255"`
	Position   int       `gorm:"not null"`
	IsPrimary  bool      `gorm:"not null"`
	UploadedAt time.Time `gorm:"not null"`
}

func (NewsImage) TableName() string { return "news_images" }

type NewsDAO struct {
	db *gorm.DB
}

func NewNewsDAO(db *gorm.DB) *NewsDAO {
	return &NewsDAO{
		db: db,
	}
}

func (d *NewsDAO) FindAll(ctx context.Context, filter domain.NewsFilter) ([]News, error) {
	query := conn(ctx, d.db).Preload("Category")
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Highlighted != nil {
		query = query.Where("highlighted = ?", *filter.Highlighted)
	}

	var news []News
	if err := query.Order("published_at DESC NULLS LAST, created_at DESC").Find(&news).Error; err != nil {
		return nil, err
	}

	return news, nil
}

func (d *NewsDAO) FindByID(ctx context.Context, id uint) (News, error) {
	var news News
	err := conn(ctx, d.db).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&news, id).Error
	if err != nil {
		return News{}, mapFindError(err, "news", id)
	}

	return news, nil
}

func (d *NewsDAO) Insert(ctx context.Context, news News) (News, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&news).Error; err != nil {
		return News{}, mapError(err)
	}

	return d.FindByID(ctx, news.ID)
}

func (d *NewsDAO) Update(ctx context.Context, news News) (News, error) {
	result := conn(ctx, d.db).Model(&news).Omit(clause.Associations).
		Select("title", "subtitle", "content", "category_id", "highlighted", "status", "published_at", "updated_at").
		Updates(&news)
	if result.Error != nil {
		return News{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return News{}, domain.NotFound("news", news.ID)
	}

	return d.FindByID(ctx, news.ID)
}

func (d *NewsDAO) SetHighlighted(ctx context.Context, id uint, highlighted bool) error {
	return setFlag(ctx, d.db, &News{}, "news", id, "highlighted", highlighted)
}

// IncrementViews bumps the counter in the database so concurrent readers never lose a view.
func (d *NewsDAO) IncrementViews(ctx context.Context, id uint) error {
	result := conn(ctx, d.db).Model(&News{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("news", id)
	}

	return nil
}

func (d *NewsDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &News{}, "news", id)
}

func (d *NewsDAO) CountImages(ctx context.Context, id uint) (int64, error) {
	return countWhere(ctx, d.db, &NewsImage{}, "news_id = ?", id)
}

type NewsImageDAO struct {
	db *gorm.DB
}

func NewNewsImageDAO(db *gorm.DB) *NewsImageDAO {
	return &NewsImageDAO{
		db: db,
	}
}

func (d *NewsImageDAO) FindByNewsID(ctx context.Context, newsID uint) ([]NewsImage, error) {
	var images []NewsImage
	if err := conn(ctx, d.db).Where("news_id = ?", newsID).Order("position, id").Find(&images).Error; err != nil {
		return nil, err
	}

	return images, nil
}

func (d *NewsImageDAO) FindByID(ctx context.Context, id uint) (NewsImage, error) {
	var image NewsImage
	if err := conn(ctx, d.db).First(&image, id).Error; err != nil {
		return NewsImage{}, mapFindError(err, "news image", id)
	}

	return image, nil
}

func (d *NewsImageDAO) FindPrimary(ctx context.Context, newsID uint) (NewsImage, error) {
	var image NewsImage
	if err := conn(ctx, d.db).Where("news_id = ? AND is_primary", newsID).First(&image).Error; err != nil {
		return NewsImage{}, mapFindError(err, "primary image for news", newsID)
	}

	return image, nil
}

func (d *NewsImageDAO) MaxPosition(ctx context.Context, newsID uint) (int, error) {
	var max int
	err := conn(ctx, d.db).Model(&NewsImage{}).
		Where("news_id = ?", newsID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error

	return max, err
}

func (d *NewsImageDAO) Insert(ctx context.Context, image NewsImage) (NewsImage, error) {
	if err := conn(ctx, d.db).Create(&image).Error; err != nil {
		return NewsImage{}, mapError(err)
	}

	return image, nil
}

func (d *NewsImageDAO) Update(ctx context.Context, image NewsImage) (NewsImage, error) {
	result := conn(ctx, d.db).Model(&image).
		Select("news_id", "url", "caption", "position", "is_primary").
		Updates(&image)
	if result.Error != nil {
		return NewsImage{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return NewsImage{}, domain.NotFound("news image", image.ID)
	}

	return d.FindByID(ctx, image.ID)
}

// ClearPrimary unsets the primary flag on every image of the news item except keepID, after
// locking the news row.
func (d *NewsImageDAO) ClearPrimary(ctx context.Context, newsID, keepID uint) error {
	db := conn(ctx, d.db)
	if err := forUpdate(db).Select("id").First(&News{}, newsID).Error; err != nil {
		return mapFindError(err, "news", newsID)
	}

	return db.Model(&NewsImage{}).
		Where("news_id = ? AND id <> ? AND is_primary", newsID, keepID).
		Update("is_primary", false).Error
}

// SetPrimary makes id the only primary image of its news item. Must run inside a transaction.
func (d *NewsImageDAO) SetPrimary(ctx context.Context, newsID, id uint) error {
	if err := d.ClearPrimary(ctx, newsID, id); err != nil {
		return err
	}

	result := conn(ctx, d.db).Model(&NewsImage{}).
		Where("id = ? AND news_id = ?", id, newsID).
		Update("is_primary", true)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("news image", id)
	}

	return nil
}

func (d *NewsImageDAO) UpdatePosition(ctx context.Context, newsID, id uint, position int) error {
	result := conn(ctx, d.db).Model(&NewsImage{}).
		Where("id = ? AND news_id = ?", id, newsID).
		Update("position", position)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("news image", id)
	}

	return nil
}

func (d *NewsImageDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &NewsImage{}, "news image", id)
}
