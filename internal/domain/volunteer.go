package domain

import "time"

type VolunteerStatus string

const (
	VolunteerPending  VolunteerStatus = "pending"
	VolunteerApproved VolunteerStatus = "approved"
	VolunteerRejected VolunteerStatus = "rejected"
)

func (s VolunteerStatus) Valid() bool {
	switch s {
	case VolunteerPending, VolunteerApproved, VolunteerRejected:
		return true
	}
	return false
}

type Volunteer struct {
	ID                    uint            `json:"id"`
	PersonID              uint            `json:"person_id"`
	Person                *Person         `json:"person,omitempty"`
	Education             string          `json:"education,omitempty"`
	Profession            string          `json:"profession,omitempty"`
	Skills                string          `json:"skills,omitempty"`
	Availability          string          `json:"availability,omitempty"`
	EmergencyExperience   string          `json:"emergency_experience,omitempty"`
	DriverLicenseCategory string          `json:"driver_license_category,omitempty"`
	HasVehicle            bool            `json:"has_vehicle"`
	Status                VolunteerStatus `json:"status"`
	ApprovedAt            *time.Time      `json:"approved_at,omitempty"`
	Note                  string          `json:"note,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
