package domain

import "time"

const (
	ProfileCitizen   = "CITIZEN"
	ProfileVolunteer = "VOLUNTEER"
	ProfileAdmin     = "ADMIN"
)

type Profile struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Person struct {
	ID        uint       `json:"id"`
	FullName  string     `json:"full_name"`
	CPF       *string    `json:"cpf,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	ProfileID uint       `json:"profile_id"`
	Profile   *Profile   `json:"profile,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsAdmin requires Profile to be loaded.
func (p Person) IsAdmin() bool {
	return p.Profile != nil && p.Profile.Name == ProfileAdmin
}

type Address struct {
	ID         uint      `json:"id"`
	PersonID   uint      `json:"person_id"`
	CityID     uint      `json:"city_id"`
	City       *City     `json:"city,omitempty"`
	ZipCode    string    `json:"zip_code"`
	Street     string    `json:"street"`
	Number     string    `json:"number"`
	Complement string    `json:"complement,omitempty"`
	District   string    `json:"district"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
