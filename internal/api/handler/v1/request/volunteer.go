package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

var driverLicenseCategories = []interface{}{"A", "B", "C", "D", "E", "AB", "AC", "AD", "AE"}

type CreateVolunteerRequest struct {
	PersonID              uint   `json:"person_id" example:"1"`
	Education             string `json:"education"`
	Profession            string `json:"profession" example:"Nurse"`
	Skills                string `json:"skills" example:"first aid, boat handling"`
	Availability          string `json:"availability" example:"weekends"`
	EmergencyExperience   string `json:"emergency_experience"`
	DriverLicenseCategory string `json:"driver_license_category" example:"B"`
	HasVehicle            bool   `json:"has_vehicle"`
}

func (req *CreateVolunteerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PersonID, validation.Required),
		validation.Field(&req.Education, validation.Length(0, 100)),
		validation.Field(&req.Profession, validation.Length(0, 100)),
		validation.Field(&req.DriverLicenseCategory, validation.In(driverLicenseCategories...)),
	)
}

func (req *CreateVolunteerRequest) ToDomain() domain.Volunteer {
	return domain.Volunteer{
		PersonID:              req.PersonID,
		Education:             req.Education,
		Profession:            req.Profession,
		Skills:                req.Skills,
		Availability:          req.Availability,
		EmergencyExperience:   req.EmergencyExperience,
		DriverLicenseCategory: req.DriverLicenseCategory,
		HasVehicle:            req.HasVehicle,
	}
}

type UpdateVolunteerRequest struct {
	Education             *string `json:"education"`
	Profession            *string `json:"profession"`
	Skills                *string `json:"skills"`
	Availability          *string `json:"availability"`
	EmergencyExperience   *string `json:"emergency_experience"`
	DriverLicenseCategory *string `json:"driver_license_category"`
	HasVehicle            *bool   `json:"has_vehicle"`
	Note                  *string `json:"note"`
}

func (req *UpdateVolunteerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Education, validation.Length(0, 100)),
		validation.Field(&req.Profession, validation.Length(0, 100)),
		validation.Field(&req.DriverLicenseCategory, validation.In(driverLicenseCategories...)),
	)
}

func (req *UpdateVolunteerRequest) ToUpdate() service.VolunteerUpdate {
	return service.VolunteerUpdate{
		Education:             req.Education,
		Profession:            req.Profession,
		Skills:                req.Skills,
		Availability:          req.Availability,
		EmergencyExperience:   req.EmergencyExperience,
		DriverLicenseCategory: req.DriverLicenseCategory,
		HasVehicle:            req.HasVehicle,
		Note:                  req.Note,
	}
}

// NoteRequest is the optional body of reject endpoints.
type NoteRequest struct {
	Note *string `json:"note" example:"missing documents"`
}

func (req *NoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Note, validation.Length(0, 1000)),
	)
}
