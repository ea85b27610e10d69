package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

var missionStatuses = []interface{}{
	string(domain.MissionActive),
	string(domain.MissionFinished),
	string(domain.MissionCancelled),
}

type CreateMissionRequest struct {
	Title        string     `json:"title" example:"Sandbag line at the river"`
	Description  string     `json:"description"`
	CategoryID   uint       `json:"category_id" example:"1"`
	MeetingPoint string     `json:"meeting_point"`
	CityID       *uint      `json:"city_id"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	StartsAt     *time.Time `json:"starts_at" example:"2024-05-10T08:00:00Z"`
	EndsAt       *time.Time `json:"ends_at"`
	TotalSlots   int        `json:"total_slots" example:"10"`
	AdminID      uint       `json:"admin_id" example:"1"`
}

func (req *CreateMissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.MeetingPoint, validation.Length(0, 255)),
		validation.Field(&req.Latitude, latitudeRule),
		validation.Field(&req.Longitude, longitudeRule),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.TotalSlots, validation.Required, validation.Min(1)),
		validation.Field(&req.AdminID, validation.Required),
	)
}

func (req *CreateMissionRequest) ToDomain() domain.Mission {
	return domain.Mission{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		MeetingPoint: req.MeetingPoint,
		CityID:       req.CityID,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		StartsAt:     *req.StartsAt,
		EndsAt:       req.EndsAt,
		TotalSlots:   req.TotalSlots,
	}
}

type UpdateMissionRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	CategoryID   *uint      `json:"category_id"`
	MeetingPoint *string    `json:"meeting_point"`
	CityID       *uint      `json:"city_id"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	TotalSlots   *int       `json:"total_slots"`
	Status       *string    `json:"status"`
}

func (req *UpdateMissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.NilOrNotEmpty),
		validation.Field(&req.CategoryID, validation.NilOrNotEmpty),
		validation.Field(&req.MeetingPoint, validation.Length(0, 255)),
		validation.Field(&req.Latitude, latitudeRule),
		validation.Field(&req.Longitude, longitudeRule),
		validation.Field(&req.TotalSlots, validation.Min(1)),
		validation.Field(&req.Status, validation.In(missionStatuses...)),
	)
}

func (req *UpdateMissionRequest) ToUpdate() service.MissionUpdate {
	upd := service.MissionUpdate{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		MeetingPoint: req.MeetingPoint,
		CityID:       req.CityID,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		TotalSlots:   req.TotalSlots,
	}
	if req.Status != nil {
		status := domain.MissionStatus(*req.Status)
		upd.Status = &status
	}

	return upd
}

type UpdateSlotsRequest struct {
	FilledSlots *int `json:"filled_slots" example:"3"`
}

func (req *UpdateSlotsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FilledSlots, validation.NotNil, validation.Min(0)),
	)
}

type CreateApplicationRequest struct {
	MissionID   uint `json:"mission_id" example:"1"`
	VolunteerID uint `json:"volunteer_id" example:"1"`
}

func (req *CreateApplicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MissionID, validation.Required),
		validation.Field(&req.VolunteerID, validation.Required),
	)
}

type UpdateApplicationRequest struct {
	MissionID   *uint `json:"mission_id"`
	VolunteerID *uint `json:"volunteer_id"`
}

func (req *UpdateApplicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MissionID, validation.NilOrNotEmpty),
		validation.Field(&req.VolunteerID, validation.NilOrNotEmpty),
	)
}

type CompleteApplicationRequest struct {
	Rating *int    `json:"rating" example:"5"`
	Note   *string `json:"note"`
}

func (req *CompleteApplicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Note, validation.Length(0, 1000)),
	)
}
