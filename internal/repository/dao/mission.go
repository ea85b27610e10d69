package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type Mission struct {
	ID uint `gorm:"primaryKey"`

	Title        string           `gorm:"size:200;not null"`
	Description  string           `gorm:"type:text;not null"`
	CategoryID   uint             `gorm:"not null;index"`
	Category     *MissionCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	MeetingPoint string           `gorm:"size:255"`
	CityID       *uint            `gorm:"index"`
	City         *City            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Latitude     *float64         `gorm:"type:decimal(10,8)"`
	Longitude    *float64         `gorm:"type:decimal(11,8)"`
	StartsAt     time.Time        `gorm:"not null"`
	EndsAt       *time.Time
	TotalSlots   int     `gorm:"not null;check:chk_missions_total_slots,total_slots > 0"`
	FilledSlots  int     `gorm:"not null;check:chk_missions_filled_slots,filled_slots >= 0 AND filled_slots <= total_slots"`
	Status       string  `gorm:"size:20;not null;index"`
	CreatorID    uint    `gorm:"not null;index"`
	Creator      *Person `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Mission) TableName() string { return "missions" }

type MissionDAO struct {
	db *gorm.DB
}

func NewMissionDAO(db *gorm.DB) *MissionDAO {
	return &MissionDAO{
		db: db,
	}
}

func (d *MissionDAO) FindAll(ctx context.Context, filter domain.MissionFilter) ([]Mission, error) {
	query := conn(ctx, d.db).Preload("Category")
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CityID != nil {
		query = query.Where("city_id = ?", *filter.CityID)
	}
	if filter.Available {
		query = query.Where("status = ? AND filled_slots < total_slots", string(domain.MissionActive))
	}

	var missions []Mission
	if err := query.Order("starts_at").Find(&missions).Error; err != nil {
		return nil, err
	}

	return missions, nil
}

func (d *MissionDAO) FindByID(ctx context.Context, id uint) (Mission, error) {
	var mission Mission
	if err := conn(ctx, d.db).Preload("Category").First(&mission, id).Error; err != nil {
		return Mission{}, mapFindError(err, "mission", id)
	}

	return mission, nil
}

// FindByIDForUpdate locks the mission row until the surrounding transaction ends.
func (d *MissionDAO) FindByIDForUpdate(ctx context.Context, id uint) (Mission, error) {
	var mission Mission
	if err := forUpdate(conn(ctx, d.db)).First(&mission, id).Error; err != nil {
		return Mission{}, mapFindError(err, "mission", id)
	}

	return mission, nil
}

func (d *MissionDAO) Insert(ctx context.Context, mission Mission) (Mission, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&mission).Error; err != nil {
		return Mission{}, mapError(err)
	}

	return d.FindByID(ctx, mission.ID)
}

func (d *MissionDAO) Update(ctx context.Context, mission Mission) (Mission, error) {
	result := conn(ctx, d.db).Model(&mission).Omit(clause.Associations).
		Select("title", "description", "category_id", "meeting_point", "city_id", "latitude", "longitude",
			"starts_at", "ends_at", "total_slots", "filled_slots", "status", "updated_at").
		Updates(&mission)
	if result.Error != nil {
		return Mission{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Mission{}, domain.NotFound("mission", mission.ID)
	}

	return d.FindByID(ctx, mission.ID)
}

func (d *MissionDAO) UpdateStatus(ctx context.Context, id uint, status domain.MissionStatus) error {
	result := conn(ctx, d.db).Model(&Mission{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("mission", id)
	}

	return nil
}

// IncrementFilledSlots takes one slot only while one is open, so the counter can never pass
// total_slots even if a caller skipped the locked capacity check.
func (d *MissionDAO) IncrementFilledSlots(ctx context.Context, id uint) error {
	result := conn(ctx, d.db).Model(&Mission{}).
		Where("id = ? AND filled_slots < total_slots", id).
		Updates(map[string]any{"filled_slots": gorm.Expr("filled_slots + 1"), "updated_at": time.Now()})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCapacityExceeded
	}

	return nil
}

func (d *MissionDAO) DecrementFilledSlots(ctx context.Context, id uint) error {
	result := conn(ctx, d.db).Model(&Mission{}).
		Where("id = ?", id).
		Updates(map[string]any{"filled_slots": gorm.Expr("GREATEST(filled_slots - 1, 0)"), "updated_at": time.Now()})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("mission", id)
	}

	return nil
}

func (d *MissionDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &Mission{}, "mission", id)
}

func (d *MissionDAO) CountApplications(ctx context.Context, id uint) (int64, error) {
	return countWhere(ctx, d.db, &MissionApplication{}, "mission_id = ?", id)
}
