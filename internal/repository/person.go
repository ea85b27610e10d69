package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type ProfileDAO interface {
	FindAll(ctx context.Context) ([]dao.Profile, error)
	FindByID(ctx context.Context, id uint) (dao.Profile, error)
	FindByName(ctx context.Context, name string) (dao.Profile, error)
	Insert(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	Update(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	Delete(ctx context.Context, id uint) error
	CountPeople(ctx context.Context, id uint) (int64, error)
}

type ProfileRepository struct {
	dao ProfileDAO
}

func NewProfileRepository(dao ProfileDAO) *ProfileRepository {
	return &ProfileRepository{
		dao: dao,
	}
}

func (r *ProfileRepository) FindAll(ctx context.Context) ([]domain.Profile, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, profileToDomain), nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uint) (domain.Profile, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return profileToDomain(found), nil
}

func (r *ProfileRepository) FindByName(ctx context.Context, name string) (domain.Profile, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return profileToDomain(found), nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	created, err := r.dao.Insert(ctx, dao.Profile{
		Name:        profile.Name,
		Description: profile.Description,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return profileToDomain(created), nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	updated, err := r.dao.Update(ctx, dao.Profile{
		ID:          profile.ID,
		Name:        profile.Name,
		Description: profile.Description,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return profileToDomain(updated), nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ProfileRepository) CountPeople(ctx context.Context, id uint) (int64, error) {
	count, err := r.dao.CountPeople(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountPeople -> %w", err)
	}

	return count, nil
}

type PersonDAO interface {
	FindAll(ctx context.Context, filter domain.PersonFilter) ([]dao.Person, error)
	FindByID(ctx context.Context, id uint) (dao.Person, error)
	Insert(ctx context.Context, person dao.Person) (dao.Person, error)
	Update(ctx context.Context, person dao.Person) (dao.Person, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	CountDependents(ctx context.Context, id uint) (dao.PersonDependents, error)
}

type PersonRepository struct {
	dao PersonDAO
}

func NewPersonRepository(dao PersonDAO) *PersonRepository {
	return &PersonRepository{
		dao: dao,
	}
}

func (r *PersonRepository) FindAll(ctx context.Context, filter domain.PersonFilter) ([]domain.Person, error) {
	found, err := r.dao.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, personToDomain), nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id uint) (domain.Person, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Person{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return personToDomain(found), nil
}

func (r *PersonRepository) Create(ctx context.Context, person domain.Person) (domain.Person, error) {
	created, err := r.dao.Insert(ctx, personToDAO(person))
	if err != nil {
		return domain.Person{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return personToDomain(created), nil
}

func (r *PersonRepository) Update(ctx context.Context, person domain.Person) (domain.Person, error) {
	updated, err := r.dao.Update(ctx, personToDAO(person))
	if err != nil {
		return domain.Person{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return personToDomain(updated), nil
}

func (r *PersonRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

// Dependents returns a description of every kind of record still pointing at the person.
func (r *PersonRepository) Dependents(ctx context.Context, id uint) ([]string, error) {
	deps, err := r.dao.CountDependents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountDependents -> %w", err)
	}

	var out []string
	for _, d := range []struct {
		count int64
		name  string
	}{
		{deps.Donations, "donations"},
		{deps.Missions, "created missions"},
		{deps.News, "authored news"},
		{deps.CollectionPoints, "created collection points"},
		{deps.Applications, "mission applications"},
	} {
		if d.count > 0 {
			out = append(out, fmt.Sprintf("%d %s", d.count, d.name))
		}
	}

	return out, nil
}

type AddressDAO interface {
	FindByPersonID(ctx context.Context, personID uint) ([]dao.Address, error)
	FindByID(ctx context.Context, id uint) (dao.Address, error)
	FindPrimary(ctx context.Context, personID uint) (dao.Address, error)
	Insert(ctx context.Context, address dao.Address) (dao.Address, error)
	Update(ctx context.Context, address dao.Address) (dao.Address, error)
	ClearPrimary(ctx context.Context, personID, keepID uint) error
	SetPrimary(ctx context.Context, personID, id uint) error
	Delete(ctx context.Context, id uint) error
}

type AddressRepository struct {
	dao AddressDAO
}

func NewAddressRepository(dao AddressDAO) *AddressRepository {
	return &AddressRepository{
		dao: dao,
	}
}

func (r *AddressRepository) FindByPersonID(ctx context.Context, personID uint) ([]domain.Address, error) {
	found, err := r.dao.FindByPersonID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPersonID -> %w", err)
	}

	return mapSlice(found, addressToDomain), nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id uint) (domain.Address, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Address{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return addressToDomain(found), nil
}

func (r *AddressRepository) FindPrimary(ctx context.Context, personID uint) (domain.Address, error) {
	found, err := r.dao.FindPrimary(ctx, personID)
	if err != nil {
		return domain.Address{}, fmt.Errorf("r.dao.FindPrimary -> %w", err)
	}

	return addressToDomain(found), nil
}

func (r *AddressRepository) Create(ctx context.Context, address domain.Address) (domain.Address, error) {
	created, err := r.dao.Insert(ctx, addressToDAO(address))
	if err != nil {
		return domain.Address{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return addressToDomain(created), nil
}

func (r *AddressRepository) Update(ctx context.Context, address domain.Address) (domain.Address, error) {
	updated, err := r.dao.Update(ctx, addressToDAO(address))
	if err != nil {
		return domain.Address{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return addressToDomain(updated), nil
}

func (r *AddressRepository) ClearPrimary(ctx context.Context, personID, keepID uint) error {
	if err := r.dao.ClearPrimary(ctx, personID, keepID); err != nil {
		return fmt.Errorf("r.dao.ClearPrimary -> %w", err)
	}

	return nil
}

func (r *AddressRepository) SetPrimary(ctx context.Context, personID, id uint) error {
	if err := r.dao.SetPrimary(ctx, personID, id); err != nil {
		return fmt.Errorf("r.dao.SetPrimary -> %w", err)
	}

	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
