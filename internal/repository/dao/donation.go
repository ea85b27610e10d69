package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type Donation struct {
	ID uint `gorm:"primaryKey"`

	PersonID          uint             `gorm:"not null;index"`
	Person            *Person          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CollectionPointID uint             `gorm:"not null;index"`
	CollectionPoint   *CollectionPoint `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Status            string           `gorm:"size:20;not null;index"`
	DonatedAt         time.Time        `gorm:"not null"`
	DeliveredAt       *time.Time
	Note              string         `gorm:"type:text"`
	Items             []DonationItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Donation) TableName() string { return "donations" }

type DonationItem struct {
	ID uint `gorm:"primaryKey"`

	DonationID uint            `gorm:"not null;index"`
	ItemTypeID uint            `gorm:"not null;index"`
	ItemType   *ItemType       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Quantity   decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_donation_items_quantity,quantity > 0"`
	Note       string          `gorm:"size:255"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DonationItem) TableName() string { return "donation_items" }

type DonationDAO struct {
	db *gorm.DB
}

func NewDonationDAO(db *gorm.DB) *DonationDAO {
	return &DonationDAO{
		db: db,
	}
}

func (d *DonationDAO) preloaded(ctx context.Context) *gorm.DB {
	return conn(ctx, d.db).
		Preload("Person").
		Preload("CollectionPoint").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.ItemType")
}

func (d *DonationDAO) FindAll(ctx context.Context, filter domain.DonationFilter) ([]Donation, error) {
	query := d.preloaded(ctx)
	if filter.PersonID != nil {
		query = query.Where("person_id = ?", *filter.PersonID)
	}
	if filter.CollectionPointID != nil {
		query = query.Where("collection_point_id = ?", *filter.CollectionPointID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var donations []Donation
	if err := query.Order("donated_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}

	return donations, nil
}

func (d *DonationDAO) FindByID(ctx context.Context, id uint) (Donation, error) {
	var donation Donation
	if err := d.preloaded(ctx).First(&donation, id).Error; err != nil {
		return Donation{}, mapFindError(err, "donation", id)
	}

	return donation, nil
}

// FindByIDForUpdate locks the donation row and loads its items.
func (d *DonationDAO) FindByIDForUpdate(ctx context.Context, id uint) (Donation, error) {
	var donation Donation
	err := forUpdate(conn(ctx, d.db)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&donation, id).Error
	if err != nil {
		return Donation{}, mapFindError(err, "donation", id)
	}

	return donation, nil
}

func (d *DonationDAO) Insert(ctx context.Context, donation Donation) (Donation, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&donation).Error; err != nil {
		return Donation{}, mapError(err)
	}

	return donation, nil
}

func (d *DonationDAO) Update(ctx context.Context, donation Donation) (Donation, error) {
	result := conn(ctx, d.db).Model(&donation).Omit(clause.Associations).
		Select("person_id", "collection_point_id", "status", "delivered_at", "note", "updated_at").
		Updates(&donation)
	if result.Error != nil {
		return Donation{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Donation{}, domain.NotFound("donation", donation.ID)
	}

	return d.FindByID(ctx, donation.ID)
}

func (d *DonationDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &Donation{}, "donation", id)
}

type DonationItemDAO struct {
	db *gorm.DB
}

func NewDonationItemDAO(db *gorm.DB) *DonationItemDAO {
	return &DonationItemDAO{
		db: db,
	}
}

func (d *DonationItemDAO) FindByDonationID(ctx context.Context, donationID uint) ([]DonationItem, error) {
	var items []DonationItem
	err := conn(ctx, d.db).Preload("ItemType").Where("donation_id = ?", donationID).Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (d *DonationItemDAO) FindByID(ctx context.Context, id uint) (DonationItem, error) {
	var item DonationItem
	if err := conn(ctx, d.db).Preload("ItemType").First(&item, id).Error; err != nil {
		return DonationItem{}, mapFindError(err, "donation item", id)
	}

	return item, nil
}

func (d *DonationItemDAO) Insert(ctx context.Context, item DonationItem) (DonationItem, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&item).Error; err != nil {
		return DonationItem{}, mapError(err)
	}

	return item, nil
}

func (d *DonationItemDAO) Update(ctx context.Context, item DonationItem) (DonationItem, error) {
	result := conn(ctx, d.db).Model(&item).Omit(clause.Associations).
		Select("item_type_id", "quantity", "note", "updated_at").
		Updates(&item)
	if result.Error != nil {
		return DonationItem{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return DonationItem{}, domain.NotFound("donation item", item.ID)
	}

	return d.FindByID(ctx, item.ID)
}

func (d *DonationItemDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &DonationItem{}, "donation item", id)
}
