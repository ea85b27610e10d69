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

func newMissionService(store *memStore) *MissionService {
	return NewMissionService(store, missionRepo{store}, catalogRepo{store}, peopleRepo{store}, 1)
}

func missionFixture() *memStore {
	store := newMemStore()
	store.addAdmin(5)
	store.addCitizen(6)
	store.missionCats[1] = domain.MissionCategory{ID: 1, Name: "Rescue"}
	store.cities[1] = domain.City{ID: 1, Name: "Lajeado"}
	return store
}

func TestMissionService_Create(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	fixNow(t, fixed)

	valid := func() domain.Mission {
		return domain.Mission{
			Title:       "Sandbag the riverbank",
			Description: "Bring gloves",
			CategoryID:  1,
			StartsAt:    fixed.Add(48 * time.Hour),
			TotalSlots:  10,
			FilledSlots: 4,
			Status:      domain.MissionCancelled,
		}
	}

	t.Run("defaults", func(t *testing.T) {
		store := missionFixture()

		created, err := newMissionService(store).Create(context.Background(), valid(), 5)
		require.NoError(t, err)
		assert.Equal(t, domain.MissionActive, created.Status)
		assert.Equal(t, 0, created.FilledSlots)
		assert.Equal(t, uint(5), created.CreatorID)
		require.NotNil(t, created.CityID)
		assert.Equal(t, uint(1), *created.CityID)
	})

	t.Run("no default city", func(t *testing.T) {
		store := missionFixture()
		svc := NewMissionService(store, missionRepo{store}, catalogRepo{store}, peopleRepo{store}, 0)

		created, err := svc.Create(context.Background(), valid(), 5)
		require.NoError(t, err)
		assert.Nil(t, created.CityID)
	})

	tests := []struct {
		name    string
		adminID uint
		mutate  func(m *domain.Mission)
		wantErr error
	}{
		{"not an admin", 6, func(*domain.Mission) {}, domain.ErrForbidden},
		{"unknown admin", 99, func(*domain.Mission) {}, domain.ErrNotFound},
		{"unknown category", 5, func(m *domain.Mission) { m.CategoryID = 9 }, domain.ErrNotFound},
		{"starts in the past", 5, func(m *domain.Mission) { m.StartsAt = fixed.Add(-time.Hour) }, domain.ErrInvalidArgument},
		{"ends before start", 5, func(m *domain.Mission) {
			end := m.StartsAt.Add(-time.Minute)
			m.EndsAt = &end
		}, domain.ErrInvalidArgument},
		{"no slots", 5, func(m *domain.Mission) { m.TotalSlots = 0 }, domain.ErrInvalidArgument},
		{"unknown city", 5, func(m *domain.Mission) {
			city := uint(42)
			m.CityID = &city
		}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := missionFixture()
			m := valid()
			tt.mutate(&m)

			_, err := newMissionService(store).Create(context.Background(), m, tt.adminID)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, store.missions)
		})
	}
}

func TestMissionService_Update(t *testing.T) {
	store := missionFixture()
	store.addMission(1, 5, 3)
	svc := newMissionService(store)

	t.Run("total below filled", func(t *testing.T) {
		total := 2
		_, err := svc.Update(context.Background(), 1, MissionUpdate{TotalSlots: &total})
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		assert.Equal(t, 5, store.missions[1].TotalSlots)
	})

	t.Run("end before merged start", func(t *testing.T) {
		end := store.missions[1].StartsAt.Add(-time.Hour)
		_, err := svc.Update(context.Background(), 1, MissionUpdate{EndsAt: &end})
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	})

	t.Run("unknown category", func(t *testing.T) {
		category := uint(9)
		_, err := svc.Update(context.Background(), 1, MissionUpdate{CategoryID: &category})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("partial update", func(t *testing.T) {
		title := "Clean the school"
		total := 3
		updated, err := svc.Update(context.Background(), 1, MissionUpdate{Title: &title, TotalSlots: &total})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, 3, updated.TotalSlots)
		assert.Equal(t, 3, updated.FilledSlots)
	})
}

func TestMissionService_UpdateFilledSlots(t *testing.T) {
	store := missionFixture()
	store.addMission(1, 4, 1)
	svc := newMissionService(store)

	_, err := svc.UpdateFilledSlots(context.Background(), 1, 5)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = svc.UpdateFilledSlots(context.Background(), 1, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	updated, err := svc.UpdateFilledSlots(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.FilledSlots)
}

func TestMissionService_Delete(t *testing.T) {
	store := missionFixture()
	store.addMission(1, 4, 0)
	store.addMission(2, 4, 0)
	store.addVolunteer(10, 20, domain.VolunteerApproved)
	store.addApplication(30, 1, 10, domain.ApplicationRejected)
	svc := newMissionService(store)

	err := svc.Delete(context.Background(), 1)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "1 applications")
	assert.Contains(t, store.missions, uint(1))

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.NotContains(t, store.missions, uint(2))

	err = svc.Delete(context.Background(), 2)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMissionService_StatusAndListing(t *testing.T) {
	store := missionFixture()
	store.addMission(1, 2, 2)
	store.addMission(2, 2, 1)
	store.addMission(3, 2, 0)
	svc := newMissionService(store)

	cancelled, err := svc.Cancel(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionCancelled, cancelled.Status)

	finished, err := svc.Finish(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionFinished, finished.Status)

	available, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, uint(2), available[0].ID)

	_, err = svc.ListByStatus(context.Background(), "paused")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = svc.ListByCategory(context.Background(), 77)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
