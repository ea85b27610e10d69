package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type Profile struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:50;not null;uniqueIndex:uni_profiles_name"`
	Description string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Profile) TableName() string { return "profiles" }

type Person struct {
	ID uint `gorm:"primaryKey"`

	FullName  string     `gorm:"size:255;not null"`
	CPF       *string    `gorm:"column:cpf;size:14;uniqueIndex:uni_people_cpf"`
	Email     *string    `gorm:"size:255;uniqueIndex:uni_people_email"`
	Phone     string     `gorm:"size:20"`
	BirthDate *time.Time `gorm:"type:date"`
	Gender    string     `gorm:"size:20"`
	ProfileID uint       `gorm:"not null;index"`
	Profile   *Profile   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Active    bool       `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Person) TableName() string { return "people" }

type Address struct {
	ID uint `gorm:"primaryKey"`

	PersonID   uint    `gorm:"not null;index;uniqueIndex:uni_addresses_primary,where:is_primary"`
	Person     *Person `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CityID     uint    `gorm:"not null;index"`
	City       *City   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	ZipCode    string  `gorm:"size:9;not null"`
	Street     string  `gorm:"size:255;not null"`
	Number     string  `gorm:"size:20;not null"`
	Complement string  `gorm:"size:100"`
	District   string  `gorm:"size:100;not null"`
	IsPrimary  bool    `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Address) TableName() string { return "addresses" }

type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{
		db: db,
	}
}

func (d *ProfileDAO) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	if err := conn(ctx, d.db).Order("name").Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (d *ProfileDAO) FindByID(ctx context.Context, id uint) (Profile, error) {
	var profile Profile
	if err := conn(ctx, d.db).First(&profile, id).Error; err != nil {
		return Profile{}, mapFindError(err, "profile", id)
	}

	return profile, nil
}

func (d *ProfileDAO) FindByName(ctx context.Context, name string) (Profile, error) {
	var profile Profile
	err := conn(ctx, d.db).Where("name = ?", name).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, &domain.Error{Kind: domain.ErrNotFound, Msg: fmt.Sprintf("profile %q not found", name)}
	}
	if err != nil {
		return Profile{}, err
	}

	return profile, nil
}

func (d *ProfileDAO) Insert(ctx context.Context, profile Profile) (Profile, error) {
	if err := conn(ctx, d.db).Create(&profile).Error; err != nil {
		return Profile{}, mapError(err)
	}

	return profile, nil
}

func (d *ProfileDAO) Update(ctx context.Context, profile Profile) (Profile, error) {
	result := conn(ctx, d.db).Model(&profile).Select("name", "description", "updated_at").Updates(&profile)
	if result.Error != nil {
		return Profile{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Profile{}, domain.NotFound("profile", profile.ID)
	}

	return d.FindByID(ctx, profile.ID)
}

func (d *ProfileDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &Profile{}, "profile", id)
}

func (d *ProfileDAO) CountPeople(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := conn(ctx, d.db).Model(&Person{}).Where("profile_id = ?", id).Count(&count).Error

	return count, err
}

type PersonDAO struct {
	db *gorm.DB
}

func NewPersonDAO(db *gorm.DB) *PersonDAO {
	return &PersonDAO{
		db: db,
	}
}

func (d *PersonDAO) FindAll(ctx context.Context, filter domain.PersonFilter) ([]Person, error) {
	query := conn(ctx, d.db).Preload("Profile")
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.ProfileID != nil {
		query = query.Where("profile_id = ?", *filter.ProfileID)
	}

	var people []Person
	if err := query.Order("full_name").Find(&people).Error; err != nil {
		return nil, err
	}

	return people, nil
}

func (d *PersonDAO) FindByID(ctx context.Context, id uint) (Person, error) {
	var person Person
	if err := conn(ctx, d.db).Preload("Profile").First(&person, id).Error; err != nil {
		return Person{}, mapFindError(err, "person", id)
	}

	return person, nil
}

func (d *PersonDAO) Insert(ctx context.Context, person Person) (Person, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&person).Error; err != nil {
		return Person{}, mapError(err)
	}

	return d.FindByID(ctx, person.ID)
}

func (d *PersonDAO) Update(ctx context.Context, person Person) (Person, error) {
	result := conn(ctx, d.db).Model(&person).Omit(clause.Associations).
		Select("full_name", "cpf", "email", "phone", "birth_date", "gender", "profile_id", "updated_at").
		Updates(&person)
	if result.Error != nil {
		return Person{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Person{}, domain.NotFound("person", person.ID)
	}

	return d.FindByID(ctx, person.ID)
}

func (d *PersonDAO) SetActive(ctx context.Context, id uint, active bool) error {
	return setFlag(ctx, d.db, &Person{}, "person", id, "active", active)
}

func (d *PersonDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &Person{}, "person", id)
}

// PersonDependents counts the rows that block deleting a person.
type PersonDependents struct {
	Donations        int64
	Missions         int64
	News             int64
	CollectionPoints int64
	Applications     int64
}

func (d *PersonDAO) CountDependents(ctx context.Context, id uint) (PersonDependents, error) {
	var deps PersonDependents
	db := conn(ctx, d.db)

	counts := []struct {
		model  any
		where  string
		target *int64
	}{
		{&Donation{}, "person_id = ?", &deps.Donations},
		{&Mission{}, "creator_id = ?", &deps.Missions},
		{&News{}, "author_id = ?", &deps.News},
		{&CollectionPoint{}, "creator_id = ?", &deps.CollectionPoints},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, id).Count(c.target).Error; err != nil {
			return PersonDependents{}, err
		}
	}

	err := db.Model(&MissionApplication{}).
		Joins("JOIN volunteers ON volunteers.id = mission_applications.volunteer_id").
		Where("volunteers.person_id = ?", id).
		Count(&deps.Applications).Error
	if err != nil {
		return PersonDependents{}, err
	}

	return deps, nil
}

type AddressDAO struct {
	db *gorm.DB
}

func NewAddressDAO(db *gorm.DB) *AddressDAO {
	return &AddressDAO{
		db: db,
	}
}

func (d *AddressDAO) FindByPersonID(ctx context.Context, personID uint) ([]Address, error) {
	var addresses []Address
	err := conn(ctx, d.db).Preload("City").
		Where("person_id = ?", personID).
		Order("is_primary DESC, id").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

func (d *AddressDAO) FindByID(ctx context.Context, id uint) (Address, error) {
	var address Address
	if err := conn(ctx, d.db).Preload("City").First(&address, id).Error; err != nil {
		return Address{}, mapFindError(err, "address", id)
	}

	return address, nil
}

func (d *AddressDAO) FindPrimary(ctx context.Context, personID uint) (Address, error) {
	var address Address
	err := conn(ctx, d.db).Preload("City").
		Where("person_id = ? AND is_primary", personID).
		First(&address).Error
	if err != nil {
		return Address{}, mapFindError(err, "primary address for person", personID)
	}

	return address, nil
}

func (d *AddressDAO) Insert(ctx context.Context, address Address) (Address, error) {
	if err := conn(ctx, d.db).Omit(clause.Associations).Create(&address).Error; err != nil {
		return Address{}, mapError(err)
	}

	return d.FindByID(ctx, address.ID)
}

func (d *AddressDAO) Update(ctx context.Context, address Address) (Address, error) {
	result := conn(ctx, d.db).Model(&address).Omit(clause.Associations).
		Select("person_id", "city_id", "zip_code", "street", "number", "complement", "district", "is_primary", "updated_at").
		Updates(&address)
	if result.Error != nil {
		return Address{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Address{}, domain.NotFound("address", address.ID)
	}

	return d.FindByID(ctx, address.ID)
}

// ClearPrimary unsets the primary flag on every address of the person except keepID.
// The person row is locked first so concurrent swaps on the same person queue up.
func (d *AddressDAO) ClearPrimary(ctx context.Context, personID, keepID uint) error {
	db := conn(ctx, d.db)
	if err := forUpdate(db).Select("id").First(&Person{}, personID).Error; err != nil {
		return mapFindError(err, "person", personID)
	}

	return db.Model(&Address{}).
		Where("person_id = ? AND id <> ? AND is_primary", personID, keepID).
		Updates(map[string]any{"is_primary": false, "updated_at": time.Now()}).Error
}

// SetPrimary makes id the only primary address of its person. Must run inside a transaction.
func (d *AddressDAO) SetPrimary(ctx context.Context, personID, id uint) error {
	if err := d.ClearPrimary(ctx, personID, id); err != nil {
		return err
	}

	result := conn(ctx, d.db).Model(&Address{}).
		Where("id = ? AND person_id = ?", id, personID).
		Updates(map[string]any{"is_primary": true, "updated_at": time.Now()})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("address", id)
	}

	return nil
}

func (d *AddressDAO) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, d.db, &Address{}, "address", id)
}
