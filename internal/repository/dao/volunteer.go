package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type Volunteer struct {
	ID uint `gorm:"primaryKey"`

	PersonID              uint    `gorm:"not null;uniqueIndex:uni_volunteers_person"`
	Person                *Person `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Education             string  `gorm:"size:100"`
	Profession            string  `gorm:"size:100"`
	Skills                string  `gorm:"type:text"`
	Availability          string  `gorm:"size:255"`
	EmergencyExperience   string  `gorm:"type:text"`
	DriverLicenseCategory string  `gorm:"size:5"`
	HasVehicle            bool    `gorm:"not null"`
	Status                string  `gorm:"size:20;not null;index"`
	ApprovedAt            *time.Time
	Note                  string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Volunteer) TableName() string { return "volunteers" }

type VolunteerDAO struct {
	db *gorm.DB
}

func NewVolunteerDAO(db *gorm.DB) *VolunteerDAO {
	return &VolunteerDAO{
		db: db,
	}
}

func (d *VolunteerDAO) FindAll(ctx context.Context, status *domain.VolunteerStatus) ([]Volunteer, error) {
	query := conn(ctx, d.db).Preload("Person")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var volunteers []Volunteer
	if err := query.Order("id").Find(&volunteers).Error; err != nil {
		return nil, err
	}

	return volunteers, nil
}

func (d *VolunteerDAO) FindByID(ctx context.Context, id uint) (Volunteer, error) {
	var volunteer Volunteer
	if err := conn(ctx, d.db).Preload("Person").First(&volunteer, id).Error; err != nil {
		return Volunteer{}, mapFindError(err, "volunteer", id)
	}

	return volunteer, nil
}

func (d *VolunteerDAO) ExistsForPerson(ctx context.Context, personID uint) (bool, error) {
	count, err := countWhere(ctx, d.db, &Volunteer{}, "person_id = ?", personID)

	return count > 0, err
}

func (d *VolunteerDAO) Insert(ctx context.Context, volunteer Volunteer) (Volunteer, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&volunteer).Error; err != nil {
		return Volunteer{}, mapError(err)
	}

	return d.FindByID(ctx, volunteer.ID)
}

func (d *VolunteerDAO) Update(ctx context.Context, volunteer Volunteer) (Volunteer, error) {
	result := conn(ctx, d.db).Model(&volunteer).Omit(clause.Associations).
		Select("education", "profession", "skills", "availability", "emergency_experience",
			"driver_license_category", "has_vehicle", "status", "approved_at", "note", "updated_at").
		Updates(&volunteer)
	if result.Error != nil {
		return Volunteer{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Volunteer{}, domain.NotFound("volunteer", volunteer.ID)
	}

	return d.FindByID(ctx, volunteer.ID)
}

func (d *VolunteerDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &Volunteer{}, "volunteer", id)
}

func (d *VolunteerDAO) CountApplications(ctx context.Context, id uint) (int64, error) {
	return countWhere(ctx, d.db, &MissionApplication{}, "volunteer_id = ?", id)
}
