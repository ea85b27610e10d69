package service

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

// memStore is an in-memory stand-in for the database. Transactions are serialized by txMu and
// roll back every table on error, which is enough to mimic the row locks the real DAOs take.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	next uint

	profiles     map[uint]domain.Profile
	people       map[uint]domain.Person
	cities       map[uint]domain.City
	missionCats  map[uint]domain.MissionCategory
	newsCats     map[uint]domain.NewsCategory
	itemTypes    map[uint]domain.ItemType
	missions     map[uint]domain.Mission
	volunteers   map[uint]domain.Volunteer
	applications map[uint]domain.MissionApplication
	news         map[uint]domain.News
	images       map[uint]domain.NewsImage
	addresses    map[uint]domain.Address
	points       map[uint]domain.CollectionPoint
	needs        map[uint]domain.Need
	donations    map[uint]domain.Donation
	items        map[uint]domain.DonationItem

	// failCreateItemAfter makes CreateItem fail once this many items were written. Zero disables it.
	failCreateItemAfter int
	itemsCreated        int
}

type inTxKey struct{}

var errInjected = errors.New("injected failure")

func newMemStore() *memStore {
	return &memStore{
		next:         100,
		profiles:     map[uint]domain.Profile{},
		people:       map[uint]domain.Person{},
		cities:       map[uint]domain.City{},
		missionCats:  map[uint]domain.MissionCategory{},
		newsCats:     map[uint]domain.NewsCategory{},
		itemTypes:    map[uint]domain.ItemType{},
		missions:     map[uint]domain.Mission{},
		volunteers:   map[uint]domain.Volunteer{},
		applications: map[uint]domain.MissionApplication{},
		news:         map[uint]domain.News{},
		images:       map[uint]domain.NewsImage{},
		addresses:    map[uint]domain.Address{},
		points:       map[uint]domain.CollectionPoint{},
		needs:        map[uint]domain.Need{},
		donations:    map[uint]domain.Donation{},
		items:        map[uint]domain.DonationItem{},
	}
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}

	return nil
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &memStore{
		next:         s.next,
		profiles:     maps.Clone(s.profiles),
		people:       maps.Clone(s.people),
		missions:     maps.Clone(s.missions),
		volunteers:   maps.Clone(s.volunteers),
		applications: maps.Clone(s.applications),
		news:         maps.Clone(s.news),
		images:       maps.Clone(s.images),
		addresses:    maps.Clone(s.addresses),
		points:       maps.Clone(s.points),
		needs:        maps.Clone(s.needs),
		donations:    maps.Clone(s.donations),
		items:        maps.Clone(s.items),
	}
}

func (s *memStore) restore(snap *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next = snap.next
	s.profiles = snap.profiles
	s.people = snap.people
	s.missions = snap.missions
	s.volunteers = snap.volunteers
	s.applications = snap.applications
	s.news = snap.news
	s.images = snap.images
	s.addresses = snap.addresses
	s.points = snap.points
	s.needs = snap.needs
	s.donations = snap.donations
	s.items = snap.items
}

func (s *memStore) nextID() uint {
	s.next++
	return s.next
}

func sortedValues[V any](m map[uint]V, keep func(V) bool) []V {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]V, 0, len(ids))
	for _, id := range ids {
		if keep == nil || keep(m[id]) {
			out = append(out, m[id])
		}
	}
	return out
}

func find[V any](m map[uint]V, entity string, id uint) (V, error) {
	v, ok := m[id]
	if !ok {
		var zero V
		return zero, domain.NotFound(entity, id)
	}
	return v, nil
}

// fixture helpers

func (s *memStore) addAdmin(id uint) domain.Person {
	s.profiles[1] = domain.Profile{ID: 1, Name: domain.ProfileAdmin}
	s.profiles[2] = domain.Profile{ID: 2, Name: domain.ProfileCitizen}
	p := domain.Person{ID: id, FullName: "Admin", ProfileID: 1, Active: true}
	s.people[id] = p
	return p
}

func (s *memStore) addCitizen(id uint) domain.Person {
	s.profiles[2] = domain.Profile{ID: 2, Name: domain.ProfileCitizen}
	p := domain.Person{ID: id, FullName: "Citizen", ProfileID: 2, Active: true}
	s.people[id] = p
	return p
}

func (s *memStore) addVolunteer(id, personID uint, status domain.VolunteerStatus) {
	s.volunteers[id] = domain.Volunteer{ID: id, PersonID: personID, Status: status}
}

func (s *memStore) addMission(id uint, total, filled int) {
	s.missions[id] = domain.Mission{
		ID:          id,
		Title:       "Mission",
		CategoryID:  1,
		StartsAt:    time.Now().Add(24 * time.Hour),
		TotalSlots:  total,
		FilledSlots: filled,
		Status:      domain.MissionActive,
	}
}

func (s *memStore) addApplication(id, missionID, volunteerID uint, status domain.ApplicationStatus) {
	s.applications[id] = domain.MissionApplication{ID: id, MissionID: missionID, VolunteerID: volunteerID, Status: status}
}

func (s *memStore) addPoint(id uint, active bool) {
	s.points[id] = domain.CollectionPoint{ID: id, Name: "Point", CityID: 1, Active: active}
}

func (s *memStore) addNeed(id, pointID, itemTypeID uint, needed, received int64, active bool) {
	s.needs[id] = domain.Need{
		ID:                id,
		CollectionPointID: pointID,
		ItemTypeID:        itemTypeID,
		QuantityNeeded:    decimal.NewFromInt(needed),
		QuantityReceived:  decimal.NewFromInt(received),
		Priority:          domain.PriorityHigh,
		Active:            active,
	}
}

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

// people

type peopleRepo struct{ *memStore }

func (r peopleRepo) withProfile(p domain.Person) domain.Person {
	if profile, ok := r.profiles[p.ProfileID]; ok {
		p.Profile = &profile
	}
	return p
}

func (r peopleRepo) FindAll(_ context.Context, filter domain.PersonFilter) ([]domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.people, func(p domain.Person) bool {
		return filter.Active == nil || p.Active == *filter.Active
	}), nil
}

func (r peopleRepo) FindByID(_ context.Context, id uint) (domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := find(r.people, "person", id)
	if err != nil {
		return domain.Person{}, err
	}
	return r.withProfile(p), nil
}

func (r peopleRepo) Create(_ context.Context, p domain.Person) (domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID()
	r.people[p.ID] = p
	return r.withProfile(p), nil
}

func (r peopleRepo) Update(_ context.Context, p domain.Person) (domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.people[p.ID] = p
	return r.withProfile(p), nil
}

func (r peopleRepo) SetActive(_ context.Context, id uint, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := find(r.people, "person", id)
	if err != nil {
		return err
	}
	p.Active = active
	r.people[id] = p
	return nil
}

func (r peopleRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.people, id)
	return nil
}

func (r peopleRepo) Dependents(_ context.Context, id uint) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deps []string
	n := len(sortedValues(r.donations, func(d domain.Donation) bool { return d.PersonID == id }))
	if n > 0 {
		deps = append(deps, "donations")
	}
	return deps, nil
}

// catalog

type catalogRepo struct{ *memStore }

func (r catalogRepo) FindCities(context.Context) ([]domain.City, error) {
	return sortedValues(r.cities, nil), nil
}

func (r catalogRepo) FindCityByID(_ context.Context, id uint) (domain.City, error) {
	return find(r.cities, "city", id)
}

func (r catalogRepo) FindMissionCategories(context.Context) ([]domain.MissionCategory, error) {
	return sortedValues(r.missionCats, nil), nil
}

func (r catalogRepo) FindMissionCategoryByID(_ context.Context, id uint) (domain.MissionCategory, error) {
	return find(r.missionCats, "mission category", id)
}

func (r catalogRepo) FindNewsCategories(context.Context) ([]domain.NewsCategory, error) {
	return sortedValues(r.newsCats, nil), nil
}

func (r catalogRepo) FindNewsCategoryByID(_ context.Context, id uint) (domain.NewsCategory, error) {
	return find(r.newsCats, "news category", id)
}

func (r catalogRepo) FindItemTypes(context.Context) ([]domain.ItemType, error) {
	return sortedValues(r.itemTypes, nil), nil
}

func (r catalogRepo) FindItemTypeByID(_ context.Context, id uint) (domain.ItemType, error) {
	return find(r.itemTypes, "item type", id)
}

// missions

type missionRepo struct{ *memStore }

func (r missionRepo) FindAll(_ context.Context, filter domain.MissionFilter) ([]domain.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.missions, func(m domain.Mission) bool {
		if filter.Status != nil && m.Status != *filter.Status {
			return false
		}
		if filter.CategoryID != nil && m.CategoryID != *filter.CategoryID {
			return false
		}
		if filter.Available && (m.Status != domain.MissionActive || !m.HasOpenSlot()) {
			return false
		}
		return true
	}), nil
}

func (r missionRepo) FindByID(_ context.Context, id uint) (domain.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.missions, "mission", id)
}

func (r missionRepo) FindByIDForUpdate(ctx context.Context, id uint) (domain.Mission, error) {
	return r.FindByID(ctx, id)
}

func (r missionRepo) Create(_ context.Context, m domain.Mission) (domain.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID()
	r.missions[m.ID] = m
	return m, nil
}

func (r missionRepo) Update(_ context.Context, m domain.Mission) (domain.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := find(r.missions, "mission", m.ID); err != nil {
		return domain.Mission{}, err
	}
	r.missions[m.ID] = m
	return m, nil
}

func (r missionRepo) UpdateStatus(_ context.Context, id uint, status domain.MissionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := find(r.missions, "mission", id)
	if err != nil {
		return err
	}
	m.Status = status
	r.missions[id] = m
	return nil
}

func (r missionRepo) IncrementFilledSlots(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := find(r.missions, "mission", id)
	if err != nil {
		return err
	}
	if m.FilledSlots >= m.TotalSlots {
		return domain.ErrCapacityExceeded
	}
	m.FilledSlots++
	r.missions[id] = m
	return nil
}

func (r missionRepo) DecrementFilledSlots(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := find(r.missions, "mission", id)
	if err != nil {
		return err
	}
	if m.FilledSlots > 0 {
		m.FilledSlots--
	}
	r.missions[id] = m
	return nil
}

func (r missionRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.missions, id)
	return nil
}

func (r missionRepo) CountApplications(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := sortedValues(r.applications, func(a domain.MissionApplication) bool { return a.MissionID == id })
	return int64(len(apps)), nil
}

// volunteers

type volunteerRepo struct{ *memStore }

func (r volunteerRepo) FindAll(_ context.Context, status *domain.VolunteerStatus) ([]domain.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.volunteers, func(v domain.Volunteer) bool {
		return status == nil || v.Status == *status
	}), nil
}

func (r volunteerRepo) FindByID(_ context.Context, id uint) (domain.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.volunteers, "volunteer", id)
}

func (r volunteerRepo) ExistsForPerson(_ context.Context, personID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vs := sortedValues(r.volunteers, func(v domain.Volunteer) bool { return v.PersonID == personID })
	return len(vs) > 0, nil
}

func (r volunteerRepo) Create(_ context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = r.nextID()
	r.volunteers[v.ID] = v
	return v, nil
}

func (r volunteerRepo) Update(_ context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volunteers[v.ID] = v
	return v, nil
}

func (r volunteerRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.volunteers, id)
	return nil
}

func (r volunteerRepo) CountApplications(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := sortedValues(r.applications, func(a domain.MissionApplication) bool { return a.VolunteerID == id })
	return int64(len(apps)), nil
}

// applications

type applicationRepo struct{ *memStore }

func (r applicationRepo) FindAll(_ context.Context, filter domain.ApplicationFilter) ([]domain.MissionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.applications, func(a domain.MissionApplication) bool {
		if filter.MissionID != nil && a.MissionID != *filter.MissionID {
			return false
		}
		if filter.VolunteerID != nil && a.VolunteerID != *filter.VolunteerID {
			return false
		}
		return filter.Status == nil || a.Status == *filter.Status
	}), nil
}

func (r applicationRepo) FindByID(_ context.Context, id uint) (domain.MissionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.applications, "mission application", id)
}

func (r applicationRepo) FindByIDForUpdate(ctx context.Context, id uint) (domain.MissionApplication, error) {
	return r.FindByID(ctx, id)
}

func (r applicationRepo) Exists(_ context.Context, missionID, volunteerID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := sortedValues(r.applications, func(a domain.MissionApplication) bool {
		return a.MissionID == missionID && a.VolunteerID == volunteerID
	})
	return len(apps) > 0, nil
}

func (r applicationRepo) Create(_ context.Context, a domain.MissionApplication) (domain.MissionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID()
	r.applications[a.ID] = a
	return a, nil
}

func (r applicationRepo) Update(_ context.Context, a domain.MissionApplication) (domain.MissionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[a.ID] = a
	return a, nil
}

func (r applicationRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := find(r.applications, "mission application", id); err != nil {
		return err
	}
	delete(r.applications, id)
	return nil
}

// addresses

type addressRepo struct{ *memStore }

func (r addressRepo) FindByPersonID(_ context.Context, personID uint) ([]domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.addresses, func(a domain.Address) bool { return a.PersonID == personID }), nil
}

func (r addressRepo) FindByID(_ context.Context, id uint) (domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.addresses, "address", id)
}

func (r addressRepo) FindPrimary(_ context.Context, personID uint) (domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	primary := sortedValues(r.addresses, func(a domain.Address) bool { return a.PersonID == personID && a.IsPrimary })
	if len(primary) == 0 {
		return domain.Address{}, domain.NotFound("primary address for person", personID)
	}
	return primary[0], nil
}

func (r addressRepo) Create(_ context.Context, a domain.Address) (domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID()
	r.addresses[a.ID] = a
	return a, nil
}

func (r addressRepo) Update(_ context.Context, a domain.Address) (domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses[a.ID] = a
	return a, nil
}

func (r addressRepo) ClearPrimary(_ context.Context, personID, keepID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.addresses {
		if a.PersonID == personID && id != keepID {
			a.IsPrimary = false
			r.addresses[id] = a
		}
	}
	return nil
}

func (r addressRepo) SetPrimary(ctx context.Context, personID, id uint) error {
	if err := r.ClearPrimary(ctx, personID, id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := find(r.addresses, "address", id)
	if err != nil {
		return err
	}
	a.IsPrimary = true
	r.addresses[id] = a
	return nil
}

func (r addressRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.addresses, id)
	return nil
}

// news images

type newsFinder struct{ *memStore }

func (r newsFinder) FindByID(_ context.Context, id uint) (domain.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.news, "news", id)
}

type imageRepo struct{ *memStore }

func (r imageRepo) FindByNewsID(_ context.Context, newsID uint) ([]domain.NewsImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	images := sortedValues(r.images, func(i domain.NewsImage) bool { return i.NewsID == newsID })
	sort.SliceStable(images, func(i, j int) bool { return images[i].Position < images[j].Position })
	return images, nil
}

func (r imageRepo) FindByID(_ context.Context, id uint) (domain.NewsImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.images, "news image", id)
}

func (r imageRepo) FindPrimary(_ context.Context, newsID uint) (domain.NewsImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	primary := sortedValues(r.images, func(i domain.NewsImage) bool { return i.NewsID == newsID && i.IsPrimary })
	if len(primary) == 0 {
		return domain.NewsImage{}, domain.NotFound("primary image for news", newsID)
	}
	return primary[0], nil
}

func (r imageRepo) MaxPosition(_ context.Context, newsID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxPosition := -1
	for _, i := range r.images {
		if i.NewsID == newsID && i.Position > maxPosition {
			maxPosition = i.Position
		}
	}
	return maxPosition, nil
}

func (r imageRepo) Create(_ context.Context, i domain.NewsImage) (domain.NewsImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i.ID = r.nextID()
	r.images[i.ID] = i
	return i, nil
}

func (r imageRepo) Update(_ context.Context, i domain.NewsImage) (domain.NewsImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images[i.ID] = i
	return i, nil
}

func (r imageRepo) ClearPrimary(_ context.Context, newsID, keepID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, i := range r.images {
		if i.NewsID == newsID && id != keepID {
			i.IsPrimary = false
			r.images[id] = i
		}
	}
	return nil
}

func (r imageRepo) SetPrimary(ctx context.Context, newsID, id uint) error {
	if err := r.ClearPrimary(ctx, newsID, id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := find(r.images, "news image", id)
	if err != nil {
		return err
	}
	i.IsPrimary = true
	r.images[id] = i
	return nil
}

func (r imageRepo) UpdatePosition(_ context.Context, newsID, id uint, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.images[id]
	if !ok || i.NewsID != newsID {
		return domain.NotFound("news image", id)
	}
	i.Position = position
	r.images[id] = i
	return nil
}

func (r imageRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.images, id)
	return nil
}

// collection points and needs

type pointRepo struct{ *memStore }

func (r pointRepo) FindAll(_ context.Context, filter domain.CollectionPointFilter) ([]domain.CollectionPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.points, func(p domain.CollectionPoint) bool {
		return filter.Active == nil || p.Active == *filter.Active
	}), nil
}

func (r pointRepo) FindByID(_ context.Context, id uint) (domain.CollectionPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.points, "collection point", id)
}

func (r pointRepo) Create(_ context.Context, p domain.CollectionPoint) (domain.CollectionPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID()
	r.points[p.ID] = p
	return p, nil
}

func (r pointRepo) Update(_ context.Context, p domain.CollectionPoint) (domain.CollectionPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points[p.ID] = p
	return p, nil
}

func (r pointRepo) SetActive(_ context.Context, id uint, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := find(r.points, "collection point", id)
	if err != nil {
		return err
	}
	p.Active = active
	r.points[id] = p
	return nil
}

func (r pointRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.points, id)
	return nil
}

func (r pointRepo) CountDependents(_ context.Context, id uint) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needs := sortedValues(r.needs, func(n domain.Need) bool { return n.CollectionPointID == id })
	donations := sortedValues(r.donations, func(d domain.Donation) bool { return d.CollectionPointID == id })
	return int64(len(needs)), int64(len(donations)), nil
}

type needRepo struct{ *memStore }

func (r needRepo) FindAll(_ context.Context, filter domain.NeedFilter) ([]domain.Need, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.needs, func(n domain.Need) bool {
		if filter.CollectionPointID != nil && n.CollectionPointID != *filter.CollectionPointID {
			return false
		}
		if filter.Priority != nil && n.Priority != *filter.Priority {
			return false
		}
		return filter.Active == nil || n.Active == *filter.Active
	}), nil
}

func (r needRepo) FindByID(_ context.Context, id uint) (domain.Need, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.needs, "need", id)
}

func (r needRepo) FindByIDForUpdate(ctx context.Context, id uint) (domain.Need, error) {
	return r.FindByID(ctx, id)
}

func (r needRepo) FindActiveForUpdate(_ context.Context, pointID, itemTypeID uint) ([]domain.Need, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.needs, func(n domain.Need) bool {
		return n.CollectionPointID == pointID && n.ItemTypeID == itemTypeID && n.Active
	}), nil
}

func (r needRepo) Create(_ context.Context, n domain.Need) (domain.Need, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.needs {
		if existing.CollectionPointID == n.CollectionPointID && existing.ItemTypeID == n.ItemTypeID {
			return domain.Need{}, domain.Conflict("collection point already has a need for this item type")
		}
	}
	n.ID = r.nextID()
	r.needs[n.ID] = n
	return n, nil
}

func (r needRepo) Update(_ context.Context, n domain.Need, withReceived bool) (domain.Need, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := find(r.needs, "need", n.ID)
	if err != nil {
		return domain.Need{}, err
	}
	if !withReceived {
		n.QuantityReceived = current.QuantityReceived
	}
	n.Active = current.Active
	r.needs[n.ID] = n
	return n, nil
}

func (r needRepo) UpdateReceived(_ context.Context, id uint, received decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := find(r.needs, "need", id)
	if err != nil {
		return err
	}
	n.QuantityReceived = received
	r.needs[id] = n
	return nil
}

func (r needRepo) SetActive(_ context.Context, id uint, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := find(r.needs, "need", id)
	if err != nil {
		return err
	}
	n.Active = active
	r.needs[id] = n
	return nil
}

func (r needRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.needs, id)
	return nil
}

// donations

type donationRepo struct{ *memStore }

func (r donationRepo) withItems(d domain.Donation) domain.Donation {
	d.Items = sortedValues(r.items, func(i domain.DonationItem) bool { return i.DonationID == d.ID })
	return d
}

func (r donationRepo) FindAll(_ context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.donations, func(d domain.Donation) bool {
		return filter.Status == nil || d.Status == *filter.Status
	}), nil
}

func (r donationRepo) FindByID(_ context.Context, id uint) (domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := find(r.donations, "donation", id)
	if err != nil {
		return domain.Donation{}, err
	}
	return r.withItems(d), nil
}

func (r donationRepo) FindByIDForUpdate(ctx context.Context, id uint) (domain.Donation, error) {
	return r.FindByID(ctx, id)
}

func (r donationRepo) Create(_ context.Context, d domain.Donation) (domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = r.nextID()
	d.Items = nil
	r.donations[d.ID] = d
	return d, nil
}

func (r donationRepo) Update(_ context.Context, d domain.Donation) (domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.Items = nil
	r.donations[d.ID] = d
	return r.withItems(d), nil
}

func (r donationRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.donations, id)
	for itemID, i := range r.items {
		if i.DonationID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r donationRepo) FindItems(_ context.Context, donationID uint) ([]domain.DonationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.items, func(i domain.DonationItem) bool { return i.DonationID == donationID }), nil
}

func (r donationRepo) FindItemByID(_ context.Context, id uint) (domain.DonationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return find(r.items, "donation item", id)
}

func (r donationRepo) CreateItem(_ context.Context, i domain.DonationItem) (domain.DonationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateItemAfter > 0 && r.itemsCreated >= r.failCreateItemAfter {
		return domain.DonationItem{}, errInjected
	}
	r.itemsCreated++
	i.ID = r.nextID()
	r.items[i.ID] = i
	return i, nil
}

func (r donationRepo) UpdateItem(_ context.Context, i domain.DonationItem) (domain.DonationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[i.ID] = i
	return i, nil
}

func (r donationRepo) DeleteItem(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}
