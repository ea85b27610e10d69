package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type CollectionPoint struct {
	ID uint `gorm:"primaryKey"`

	Name         string   `gorm:"size:200;not null"`
	Description  string   `gorm:"type:text"`
	CityID       uint     `gorm:"not null;index"`
	City         *City    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Address      string   `gorm:"size:255;not null"`
	Latitude     *float64 `gorm:"type:decimal(10,8)"`
	Longitude    *float64 `gorm:"type:decimal(11,8)"`
	Phone        string   `gorm:"size:20"`
	OpeningHours string   `gorm:"size:255"`
	ManagerName  string   `gorm:"size:255"`
	ManagerPhone string   `gorm:"size:20"`
	Active       bool     `gorm:"not null;index"`
	CreatorID    uint     `gorm:"not null;index"`
	Creator      *Person  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CollectionPoint) TableName() string { return "collection_points" }

type CollectionPointDAO struct {
	db *gorm.DB
}

func NewCollectionPointDAO(db *gorm.DB) *CollectionPointDAO {
	return &CollectionPointDAO{
		db: db,
	}
}

func (d *CollectionPointDAO) FindAll(ctx context.Context, filter domain.CollectionPointFilter) ([]CollectionPoint, error) {
	query := conn(ctx, d.db).Preload("City")
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.CityID != nil {
		query = query.Where("city_id = ?", *filter.CityID)
	}

	var points []CollectionPoint
	if err := query.Order("name").Find(&points).Error; err != nil {
		return nil, err
	}

	return points, nil
}

func (d *CollectionPointDAO) FindByID(ctx context.Context, id uint) (CollectionPoint, error) {
	var point CollectionPoint
	if err := conn(ctx, d.db).Preload("City").First(&point, id).Error; err != nil {
		return CollectionPoint{}, mapFindError(err, "collection point", id)
	}

	return point, nil
}

func (d *CollectionPointDAO) Insert(ctx context.Context, point CollectionPoint) (CollectionPoint, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&point).Error; err != nil {
		return CollectionPoint{}, mapError(err)
	}

	return d.FindByID(ctx, point.ID)
}

func (d *CollectionPointDAO) Update(ctx context.Context, point CollectionPoint) (CollectionPoint, error) {
	result := conn(ctx, d.db).Model(&point).Omit(clause.Associations).
		Select("name", "description", "city_id", "address", "latitude", "longitude", "phone",
			"opening_hours", "manager_name", "manager_phone", "updated_at").
		Updates(&point)
	if result.Error != nil {
		return CollectionPoint{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return CollectionPoint{}, domain.NotFound("collection point", point.ID)
	}

	return d.FindByID(ctx, point.ID)
}

func (d *CollectionPointDAO) SetActive(ctx context.Context, id uint, active bool) error {
	return setFlag(ctx, d.db, &CollectionPoint{}, "collection point", id, "active", active)
}

func (d *CollectionPointDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &CollectionPoint{}, "collection point", id)
}

func (d *CollectionPointDAO) CountDependents(ctx context.Context, id uint) (needs, donations int64, err error) {
	if needs, err = countWhere(ctx, d.db, &Need{}, "collection_point_id = ?", id); err != nil {
		return 0, 0, err
	}
	if donations, err = countWhere(ctx, d.db, &Donation{}, "collection_point_id = ?", id); err != nil {
		return 0, 0, err
	}

	return needs, donations, nil
}
