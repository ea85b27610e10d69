package domain

import "time"

type MissionStatus string

const (
	MissionActive    MissionStatus = "active"
	MissionFinished  MissionStatus = "finished"
	MissionCancelled MissionStatus = "cancelled"
)

func (s MissionStatus) Valid() bool {
	switch s {
	case MissionActive, MissionFinished, MissionCancelled:
		return true
	}
	return false
}

type Mission struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	CategoryID   uint             `json:"category_id"`
	Category     *MissionCategory `json:"category,omitempty"`
	MeetingPoint string           `json:"meeting_point,omitempty"`
	CityID       *uint            `json:"city_id,omitempty"`
	Latitude     *float64         `json:"latitude,omitempty"`
	Longitude    *float64         `json:"longitude,omitempty"`
	StartsAt     time.Time        `json:"starts_at"`
	EndsAt       *time.Time       `json:"ends_at,omitempty"`
	TotalSlots   int              `json:"total_slots"`
	FilledSlots  int              `json:"filled_slots"`
	Status       MissionStatus    `json:"status"`
	CreatorID    uint             `json:"creator_id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (m Mission) HasOpenSlot() bool {
	return m.FilledSlots < m.TotalSlots
}

// ValidateSlots checks the counters. Both creation and update go through it.
func (m Mission) ValidateSlots() error {
	if m.TotalSlots <= 0 {
		return InvalidArgument("total slots must be greater than zero")
	}
	if m.FilledSlots < 0 {
		return InvalidArgument("filled slots cannot be negative")
	}
	if m.FilledSlots > m.TotalSlots {
		return InvalidArgument("filled slots (%d) cannot exceed total slots (%d)", m.FilledSlots, m.TotalSlots)
	}
	return nil
}

func (m Mission) ValidateSchedule() error {
	if m.EndsAt != nil && m.EndsAt.Before(m.StartsAt) {
		return InvalidArgument("end date cannot be before start date")
	}
	return nil
}
