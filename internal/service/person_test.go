package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type profileRepo struct{ *memStore }

func (r profileRepo) FindAll(context.Context) ([]domain.Profile, error) {
	return sortedValues(r.profiles, nil), nil
}

func (r profileRepo) FindByID(_ context.Context, id uint) (domain.Profile, error) {
	return find(r.profiles, "profile", id)
}

func (r profileRepo) FindByName(_ context.Context, name string) (domain.Profile, error) {
	for _, p := range r.profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Profile{}, &domain.Error{Kind: domain.ErrNotFound, Msg: "profile not found"}
}

func (r profileRepo) Create(_ context.Context, p domain.Profile) (domain.Profile, error) {
	p.ID = r.nextID()
	r.profiles[p.ID] = p
	return p, nil
}

func (r profileRepo) Update(_ context.Context, p domain.Profile) (domain.Profile, error) {
	r.profiles[p.ID] = p
	return p, nil
}

func (r profileRepo) Delete(_ context.Context, id uint) error {
	delete(r.profiles, id)
	return nil
}

func (r profileRepo) CountPeople(_ context.Context, id uint) (int64, error) {
	people := sortedValues(r.people, func(p domain.Person) bool { return p.ProfileID == id })
	return int64(len(people)), nil
}

func TestPersonService_Create(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	fixNow(t, fixed)

	store := newMemStore()
	store.addAdmin(5)
	svc := NewPersonService(peopleRepo{store}, profileRepo{store})

	future := fixed.AddDate(0, 0, 1)
	_, err := svc.Create(context.Background(), domain.Person{FullName: "Ana", ProfileID: 2, BirthDate: &future})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = svc.Create(context.Background(), domain.Person{FullName: "Ana", ProfileID: 9})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	born := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	person, err := svc.Create(context.Background(), domain.Person{FullName: "Ana", ProfileID: 2, BirthDate: &born})
	require.NoError(t, err)
	assert.True(t, person.Active)
	require.NotNil(t, person.Profile)
	assert.Equal(t, domain.ProfileCitizen, person.Profile.Name)
}

func TestPersonService_ActivateTwice(t *testing.T) {
	store := newMemStore()
	store.addCitizen(6)
	svc := NewPersonService(peopleRepo{store}, profileRepo{store})

	for i := 0; i < 2; i++ {
		person, err := svc.Deactivate(context.Background(), 6)
		require.NoError(t, err)
		assert.False(t, person.Active)
	}
	for i := 0; i < 2; i++ {
		person, err := svc.Activate(context.Background(), 6)
		require.NoError(t, err)
		assert.True(t, person.Active)
	}
}

func TestPersonService_Delete(t *testing.T) {
	store := newMemStore()
	store.addCitizen(6)
	store.addCitizen(7)
	store.donations[1] = domain.Donation{ID: 1, PersonID: 6}
	svc := NewPersonService(peopleRepo{store}, profileRepo{store})

	err := svc.Delete(context.Background(), 6)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "donations")

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.NotContains(t, store.people, uint(7))
}

func TestProfileService(t *testing.T) {
	store := newMemStore()
	store.addCitizen(6)
	svc := NewProfileService(profileRepo{store})

	created, err := svc.Create(context.Background(), domain.Profile{Name: " coordinator "})
	require.NoError(t, err)
	assert.Equal(t, "COORDINATOR", created.Name)

	err = svc.Delete(context.Background(), 2)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	require.NoError(t, svc.Delete(context.Background(), created.ID))
}

func TestVolunteerService(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	fixNow(t, fixed)

	store := newMemStore()
	store.addCitizen(6)
	svc := NewVolunteerService(volunteerRepo{store}, peopleRepo{store})
	ctx := context.Background()

	volunteer, err := svc.Create(ctx, domain.Volunteer{PersonID: 6, Status: domain.VolunteerApproved, Skills: "first aid"})
	require.NoError(t, err)
	assert.Equal(t, domain.VolunteerPending, volunteer.Status)

	_, err = svc.Create(ctx, domain.Volunteer{PersonID: 6})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = svc.Create(ctx, domain.Volunteer{PersonID: 60})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	approved, err := svc.Approve(ctx, volunteer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VolunteerApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, fixed, *approved.ApprovedAt)

	note := "missing documents"
	rejected, err := svc.Reject(ctx, volunteer.ID, &note)
	require.NoError(t, err)
	assert.Equal(t, domain.VolunteerRejected, rejected.Status)
	assert.Nil(t, rejected.ApprovedAt)
	assert.Equal(t, note, rejected.Note)

	store.addMission(1, 2, 0)
	store.addApplication(30, 1, volunteer.ID, domain.ApplicationRejected)
	err = svc.Delete(ctx, volunteer.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = svc.ListByStatus(ctx, "retired")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func newAddressService(store *memStore) *AddressService {
	return NewAddressService(store, addressRepo{store}, peopleRepo{store}, catalogRepo{store})
}

func countPrimaryAddresses(store *memStore, personID uint) int {
	n := 0
	for _, a := range store.addresses {
		if a.PersonID == personID && a.IsPrimary {
			n++
		}
	}
	return n
}

func TestAddressService_SinglePrimary(t *testing.T) {
	store := newMemStore()
	store.addCitizen(6)
	store.cities[1] = domain.City{ID: 1, Name: "Lajeado"}
	svc := newAddressService(store)
	ctx := context.Background()

	base := domain.Address{PersonID: 6, CityID: 1, ZipCode: "95900-000", Street: "Rua A", Number: "1", District: "Centro"}

	first := base
	first.IsPrimary = true
	a1, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := base
	second.IsPrimary = true
	a2, err := svc.Create(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, countPrimaryAddresses(store, 6))
	assert.False(t, store.addresses[a1.ID].IsPrimary)

	_, err = svc.SetPrimary(ctx, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, countPrimaryAddresses(store, 6))
	assert.False(t, store.addresses[a2.ID].IsPrimary)

	primary := true
	_, err = svc.Update(ctx, a2.ID, AddressUpdate{IsPrimary: &primary})
	require.NoError(t, err)
	assert.Equal(t, 1, countPrimaryAddresses(store, 6))

	got, err := svc.GetPrimary(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, a2.ID, got.ID)

	_, err = svc.SetPrimary(ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 1, countPrimaryAddresses(store, 6))

	city := uint(50)
	_, err = svc.Update(ctx, a1.ID, AddressUpdate{CityID: &city})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
