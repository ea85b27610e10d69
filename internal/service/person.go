package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type ProfileRepository interface {
	FindAll(ctx context.Context) ([]domain.Profile, error)
	FindByID(ctx context.Context, id uint) (domain.Profile, error)
	FindByName(ctx context.Context, name string) (domain.Profile, error)
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	Delete(ctx context.Context, id uint) error
	CountPeople(ctx context.Context, id uint) (int64, error)
}

type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return profiles, nil
}

func (s *ProfileService) Get(ctx context.Context, id uint) (domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return profile, nil
}

func (s *ProfileService) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	profile.Name = strings.ToUpper(strings.TrimSpace(profile.Name))

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, id uint, name, description *string) (domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if name != nil {
		profile.Name = strings.ToUpper(strings.TrimSpace(*name))
	}
	setIfNotNil(&profile.Description, description)

	updated, err := s.repo.Update(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ProfileService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	count, err := s.repo.CountPeople(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.CountPeople -> %w", err)
	}
	if count > 0 {
		return blockedBy("profile", id, []string{fmt.Sprintf("%d people", count)})
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

type PersonRepository interface {
	FindAll(ctx context.Context, filter domain.PersonFilter) ([]domain.Person, error)
	FindByID(ctx context.Context, id uint) (domain.Person, error)
	Create(ctx context.Context, person domain.Person) (domain.Person, error)
	Update(ctx context.Context, person domain.Person) (domain.Person, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	Dependents(ctx context.Context, id uint) ([]string, error)
}

type PersonUpdate struct {
	FullName  *string
	CPF       *string
	Email     *string
	Phone     *string
	BirthDate *time.Time
	Gender    *string
	ProfileID *uint
}

type PersonService struct {
	repo     PersonRepository
	profiles ProfileRepository
}

func NewPersonService(repo PersonRepository, profiles ProfileRepository) *PersonService {
	return &PersonService{
		repo:     repo,
		profiles: profiles,
	}
}

func (s *PersonService) List(ctx context.Context, filter domain.PersonFilter) ([]domain.Person, error) {
	people, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return people, nil
}

func (s *PersonService) ListActive(ctx context.Context) ([]domain.Person, error) {
	active := true
	return s.List(ctx, domain.PersonFilter{Active: &active})
}

func (s *PersonService) Get(ctx context.Context, id uint) (domain.Person, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Person{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return person, nil
}

func (s *PersonService) Create(ctx context.Context, person domain.Person) (domain.Person, error) {
	if _, err := s.profiles.FindByID(ctx, person.ProfileID); err != nil {
		return domain.Person{}, fmt.Errorf("s.profiles.FindByID -> %w", err)
	}
	if err := checkBirthDate(person.BirthDate); err != nil {
		return domain.Person{}, err
	}

	person.Active = true

	created, err := s.repo.Create(ctx, person)
	if err != nil {
		return domain.Person{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PersonService) Update(ctx context.Context, id uint, upd PersonUpdate) (domain.Person, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Person{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if upd.ProfileID != nil && *upd.ProfileID != person.ProfileID {
		if _, err = s.profiles.FindByID(ctx, *upd.ProfileID); err != nil {
			return domain.Person{}, fmt.Errorf("s.profiles.FindByID -> %w", err)
		}
		person.ProfileID = *upd.ProfileID
		person.Profile = nil
	}
	if upd.BirthDate != nil {
		if err = checkBirthDate(upd.BirthDate); err != nil {
			return domain.Person{}, err
		}
		person.BirthDate = upd.BirthDate
	}
	setIfNotNil(&person.FullName, upd.FullName)
	setIfNotNil(&person.Phone, upd.Phone)
	setIfNotNil(&person.Gender, upd.Gender)
	if upd.CPF != nil {
		person.CPF = upd.CPF
	}
	if upd.Email != nil {
		person.Email = upd.Email
	}

	updated, err := s.repo.Update(ctx, person)
	if err != nil {
		return domain.Person{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func checkBirthDate(birthDate *time.Time) error {
	if birthDate != nil && birthDate.After(now()) {
		return domain.InvalidArgument("birth date cannot be in the future")
	}
	return nil
}

func (s *PersonService) Activate(ctx context.Context, id uint) (domain.Person, error) {
	return s.setActive(ctx, id, true)
}

func (s *PersonService) Deactivate(ctx context.Context, id uint) (domain.Person, error) {
	return s.setActive(ctx, id, false)
}

func (s *PersonService) setActive(ctx context.Context, id uint, active bool) (domain.Person, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return domain.Person{}, fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *PersonService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	deps, err := s.repo.Dependents(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.Dependents -> %w", err)
	}
	if len(deps) > 0 {
		return blockedBy("person", id, deps)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

type AddressRepository interface {
	FindByPersonID(ctx context.Context, personID uint) ([]domain.Address, error)
	FindByID(ctx context.Context, id uint) (domain.Address, error)
	FindPrimary(ctx context.Context, personID uint) (domain.Address, error)
	Create(ctx context.Context, address domain.Address) (domain.Address, error)
	Update(ctx context.Context, address domain.Address) (domain.Address, error)
	ClearPrimary(ctx context.Context, personID, keepID uint) error
	SetPrimary(ctx context.Context, personID, id uint) error
	Delete(ctx context.Context, id uint) error
}

type AddressUpdate struct {
	CityID     *uint
	ZipCode    *string
	Street     *string
	Number     *string
	Complement *string
	District   *string
	IsPrimary  *bool
}

// AddressService keeps at most one primary address per person.
type AddressService struct {
	tx      Transactor
	repo    AddressRepository
	people  PersonFinder
	catalog CatalogRepository
}

func NewAddressService(tx Transactor, repo AddressRepository, people PersonFinder, catalog CatalogRepository) *AddressService {
	return &AddressService{
		tx:      tx,
		repo:    repo,
		people:  people,
		catalog: catalog,
	}
}

func (s *AddressService) ListByPerson(ctx context.Context, personID uint) ([]domain.Address, error) {
	if _, err := s.people.FindByID(ctx, personID); err != nil {
		return nil, fmt.Errorf("s.people.FindByID -> %w", err)
	}

	addresses, err := s.repo.FindByPersonID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByPersonID -> %w", err)
	}

	return addresses, nil
}

func (s *AddressService) Get(ctx context.Context, id uint) (domain.Address, error) {
	address, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Address{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return address, nil
}

func (s *AddressService) GetPrimary(ctx context.Context, personID uint) (domain.Address, error) {
	address, err := s.repo.FindPrimary(ctx, personID)
	if err != nil {
		return domain.Address{}, fmt.Errorf("s.repo.FindPrimary -> %w", err)
	}

	return address, nil
}

func (s *AddressService) Create(ctx context.Context, address domain.Address) (domain.Address, error) {
	if _, err := s.people.FindByID(ctx, address.PersonID); err != nil {
		return domain.Address{}, fmt.Errorf("s.people.FindByID -> %w", err)
	}
	if _, err := s.catalog.FindCityByID(ctx, address.CityID); err != nil {
		return domain.Address{}, fmt.Errorf("s.catalog.FindCityByID -> %w", err)
	}

	var created domain.Address
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if address.IsPrimary {
			if err = s.repo.ClearPrimary(ctx, address.PersonID, 0); err != nil {
				return fmt.Errorf("s.repo.ClearPrimary -> %w", err)
			}
		}

		created, err = s.repo.Create(ctx, address)
		if err != nil {
			return fmt.Errorf("s.repo.Create -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Address{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return created, nil
}

// Update never moves an address to another person.
func (s *AddressService) Update(ctx context.Context, id uint, upd AddressUpdate) (domain.Address, error) {
	if upd.CityID != nil {
		if _, err := s.catalog.FindCityByID(ctx, *upd.CityID); err != nil {
			return domain.Address{}, fmt.Errorf("s.catalog.FindCityByID -> %w", err)
		}
	}

	var updated domain.Address
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		address, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByID -> %w", err)
		}

		setIfNotNil(&address.CityID, upd.CityID)
		setIfNotNil(&address.ZipCode, upd.ZipCode)
		setIfNotNil(&address.Street, upd.Street)
		setIfNotNil(&address.Number, upd.Number)
		setIfNotNil(&address.Complement, upd.Complement)
		setIfNotNil(&address.District, upd.District)
		setIfNotNil(&address.IsPrimary, upd.IsPrimary)
		address.City = nil

		if address.IsPrimary {
			if err = s.repo.ClearPrimary(ctx, address.PersonID, address.ID); err != nil {
				return fmt.Errorf("s.repo.ClearPrimary -> %w", err)
			}
		}

		updated, err = s.repo.Update(ctx, address)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Address{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

func (s *AddressService) SetPrimary(ctx context.Context, id uint) (domain.Address, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		address, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByID -> %w", err)
		}

		if err = s.repo.SetPrimary(ctx, address.PersonID, address.ID); err != nil {
			return fmt.Errorf("s.repo.SetPrimary -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Address{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *AddressService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
