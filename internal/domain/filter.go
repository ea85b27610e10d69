package domain

// Nil fields are not filtered on.

type PersonFilter struct {
	Active    *bool
	ProfileID *uint
}

type MissionFilter struct {
	Status     *MissionStatus
	CategoryID *uint
	CityID     *uint
	// Available keeps active missions that still have open slots.
	Available bool
}

type ApplicationFilter struct {
	MissionID   *uint
	VolunteerID *uint
	Status      *ApplicationStatus
}

type NewsFilter struct {
	Status      *NewsStatus
	CategoryID  *uint
	Highlighted *bool
}

type CollectionPointFilter struct {
	Active *bool
	CityID *uint
}

type NeedFilter struct {
	CollectionPointID *uint
	Active            *bool
	Priority          *Priority
}

type DonationFilter struct {
	PersonID          *uint
	CollectionPointID *uint
	Status            *DonationStatus
}
