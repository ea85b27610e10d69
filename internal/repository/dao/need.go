package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type Need struct {
	ID uint `gorm:"primaryKey"`

	CollectionPointID uint             `gorm:"not null;index;uniqueIndex:uni_needs_point_item"`
	CollectionPoint   *CollectionPoint `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ItemTypeID        uint             `gorm:"not null;uniqueIndex:uni_needs_point_item"`
	ItemType          *ItemType        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	QuantityNeeded    decimal.Decimal  `gorm:"type:decimal(10,2);not null;check:chk_needs_quantity_needed,quantity_needed > 0"`
	QuantityReceived  decimal.Decimal  `gorm:"type:decimal(10,2);not null;check:chk_needs_quantity_received,quantity_received >= 0 AND quantity_received <= quantity_needed"`
	Priority          string           `gorm:"size:10;not null;index"`
	Active            bool             `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Need) TableName() string { return "needs" }

type NeedDAO struct {
	db *gorm.DB
}

func NewNeedDAO(db *gorm.DB) *NeedDAO {
	return &NeedDAO{
		db: db,
	}
}

func (d *NeedDAO) FindAll(ctx context.Context, filter domain.NeedFilter) ([]Need, error) {
	query := conn(ctx, d.db).Preload("CollectionPoint").Preload("ItemType")
	if filter.CollectionPointID != nil {
		query = query.Where("collection_point_id = ?", *filter.CollectionPointID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}

	var needs []Need
	err := query.
		Order("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, id").
		Find(&needs).Error
	if err != nil {
		return nil, err
	}

	return needs, nil
}

func (d *NeedDAO) FindByID(ctx context.Context, id uint) (Need, error) {
	var need Need
	if err := conn(ctx, d.db).Preload("CollectionPoint").Preload("ItemType").First(&need, id).Error; err != nil {
		return Need{}, mapFindError(err, "need", id)
	}

	return need, nil
}

// FindByIDForUpdate locks the need row until the surrounding transaction ends.
func (d *NeedDAO) FindByIDForUpdate(ctx context.Context, id uint) (Need, error) {
	var need Need
	if err := forUpdate(conn(ctx, d.db)).First(&need, id).Error; err != nil {
		return Need{}, mapFindError(err, "need", id)
	}

	return need, nil
}

// FindActiveForUpdate locks the active needs of a collection point for one item type.
func (d *NeedDAO) FindActiveForUpdate(ctx context.Context, collectionPointID, itemTypeID uint) ([]Need, error) {
	var needs []Need
	err := forUpdate(conn(ctx, d.db)).
		Where("collection_point_id = ? AND item_type_id = ? AND active", collectionPointID, itemTypeID).
		Order("id").
		Find(&needs).Error
	if err != nil {
		return nil, err
	}

	return needs, nil
}

func (d *NeedDAO) Insert(ctx context.Context, need Need) (Need, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&need).Error; err != nil {
		return Need{}, mapError(err)
	}

	return d.FindByID(ctx, need.ID)
}

// Update writes the editable columns. quantity_received is left alone unless withReceived is set,
// since deliveries credit it concurrently.
func (d *NeedDAO) Update(ctx context.Context, need Need, withReceived bool) (Need, error) {
	columns := []string{"collection_point_id", "item_type_id", "quantity_needed", "priority", "updated_at"}
	if withReceived {
		columns = append(columns, "quantity_received")
	}

	result := conn(ctx, d.db).Model(&need).Omit(clause.Associations).
		Select(columns).
		Updates(&need)
	if result.Error != nil {
		return Need{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Need{}, domain.NotFound("need", need.ID)
	}

	return d.FindByID(ctx, need.ID)
}

func (d *NeedDAO) UpdateReceived(ctx context.Context, id uint, received decimal.Decimal) error {
	result := conn(ctx, d.db).Model(&Need{}).
		Where("id = ?", id).
		Updates(map[string]any{"quantity_received": received, "updated_at": time.Now()})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("need", id)
	}

	return nil
}

func (d *NeedDAO) SetActive(ctx context.Context, id uint, active bool) error {
	return setFlag(ctx, d.db, &Need{}, "need", id, "active", active)
}

func (d *NeedDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &Need{}, "need", id)
}
