package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type MissionApplication struct {
	ID uint `gorm:"primaryKey"`

	MissionID   uint       `gorm:"not null;index;uniqueIndex:uni_applications_mission_volunteer"`
	Mission     *Mission   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	VolunteerID uint       `gorm:"not null;index;uniqueIndex:uni_applications_mission_volunteer"`
	Volunteer   *Volunteer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Status      string     `gorm:"size:20;not null;index"`
	AppliedAt   time.Time  `gorm:"not null"`
	ApprovedAt  *time.Time
	CompletedAt *time.Time
	Rating      *int   `gorm:"check:chk_mission_applications_rating,rating BETWEEN 1 AND 5"`
	ReviewNote  string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (MissionApplication) TableName() string { return "mission_applications" }

type ApplicationDAO struct {
	db *gorm.DB
}

func NewApplicationDAO(db *gorm.DB) *ApplicationDAO {
	return &ApplicationDAO{
		db: db,
	}
}

func (d *ApplicationDAO) FindAll(ctx context.Context, filter domain.ApplicationFilter) ([]MissionApplication, error) {
	query := conn(ctx, d.db).Preload("Mission").Preload("Volunteer.Person")
	if filter.MissionID != nil {
		query = query.Where("mission_id = ?", *filter.MissionID)
	}
	if filter.VolunteerID != nil {
		query = query.Where("volunteer_id = ?", *filter.VolunteerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var applications []MissionApplication
	if err := query.Order("applied_at").Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

func (d *ApplicationDAO) FindByID(ctx context.Context, id uint) (MissionApplication, error) {
	var application MissionApplication
	err := conn(ctx, d.db).Preload("Mission").Preload("Volunteer.Person").First(&application, id).Error
	if err != nil {
		return MissionApplication{}, mapFindError(err, "mission application", id)
	}

	return application, nil
}

// FindByIDForUpdate locks the application row until the surrounding transaction ends.
func (d *ApplicationDAO) FindByIDForUpdate(ctx context.Context, id uint) (MissionApplication, error) {
	var application MissionApplication
	if err := forUpdate(conn(ctx, d.db)).First(&application, id).Error; err != nil {
		return MissionApplication{}, mapFindError(err, "mission application", id)
	}

	return application, nil
}

func (d *ApplicationDAO) Exists(ctx context.Context, missionID, volunteerID uint) (bool, error) {
	count, err := countWhere(ctx, d.db, &MissionApplication{},
		"mission_id = ? AND volunteer_id = ?", missionID, volunteerID)

	return count > 0, err
}

func (d *ApplicationDAO) Insert(ctx context.Context, application MissionApplication) (MissionApplication, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&application).Error; err != nil {
		return MissionApplication{}, mapError(err)
	}

	return d.FindByID(ctx, application.ID)
}

func (d *ApplicationDAO) Update(ctx context.Context, application MissionApplication) (MissionApplication, error) {
	result := conn(ctx, d.db).Model(&application).Omit(clause.Associations).
		Select("mission_id", "volunteer_id", "status", "approved_at", "completed_at", "rating", "review_note", "updated_at").
		Updates(&application)
	if result.Error != nil {
		return MissionApplication{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return MissionApplication{}, domain.NotFound("mission application", application.ID)
	}

	return d.FindByID(ctx, application.ID)
}

func (d *ApplicationDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &MissionApplication{}, "mission application", id)
}
