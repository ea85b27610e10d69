package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

func newApplicationService(store *memStore) *ApplicationService {
	return NewApplicationService(store, applicationRepo{store}, missionRepo{store}, volunteerRepo{store})
}

func TestApplicationService_Approve_LastSlot(t *testing.T) {
	store := newMemStore()
	store.addMission(1, 1, 0)
	store.addVolunteer(10, 20, domain.VolunteerApproved)
	store.addVolunteer(11, 21, domain.VolunteerApproved)
	store.addApplication(30, 1, 10, domain.ApplicationPending)
	store.addApplication(31, 1, 11, domain.ApplicationPending)
	svc := newApplicationService(store)

	approved, err := svc.Approve(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, 1, store.missions[1].FilledSlots)

	_, err = svc.Approve(context.Background(), 31)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, domain.ApplicationPending, store.applications[31].Status)
	assert.Equal(t, 1, store.missions[1].FilledSlots)
}

func TestApplicationService_Approve_Concurrent(t *testing.T) {
	store := newMemStore()
	store.addMission(1, 1, 0)

	const racers = 8
	for i := uint(0); i < racers; i++ {
		store.addVolunteer(10+i, 20+i, domain.VolunteerApproved)
		store.addApplication(30+i, 1, 10+i, domain.ApplicationPending)
	}
	svc := newApplicationService(store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := uint(0); i < racers; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.Approve(context.Background(), id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrConflict):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(30 + i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, racers-1, rejected)
	assert.Equal(t, 1, store.missions[1].FilledSlots)
}

func TestApplicationService_Approve_NotPending(t *testing.T) {
	store := newMemStore()
	store.addMission(1, 5, 1)
	store.addVolunteer(10, 20, domain.VolunteerApproved)
	store.addApplication(30, 1, 10, domain.ApplicationApproved)
	svc := newApplicationService(store)

	_, err := svc.Approve(context.Background(), 30)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, 1, store.missions[1].FilledSlots)
}

func TestApplicationService_Approve_NotFound(t *testing.T) {
	svc := newApplicationService(newMemStore())

	_, err := svc.Approve(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApplicationService_Create(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	fixNow(t, fixed)

	t.Run("pending volunteer", func(t *testing.T) {
		store := newMemStore()
		store.addMission(1, 3, 0)
		store.addVolunteer(10, 20, domain.VolunteerPending)

		_, err := newApplicationService(store).Create(context.Background(), 1, 10)
		assert.True(t, errors.Is(err, domain.ErrInvalidState))
		assert.Empty(t, store.applications)
	})

	t.Run("unknown mission", func(t *testing.T) {
		store := newMemStore()
		store.addVolunteer(10, 20, domain.VolunteerApproved)

		_, err := newApplicationService(store).Create(context.Background(), 1, 10)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("duplicate pair", func(t *testing.T) {
		store := newMemStore()
		store.addMission(1, 3, 0)
		store.addVolunteer(10, 20, domain.VolunteerApproved)
		store.addApplication(30, 1, 10, domain.ApplicationRejected)

		_, err := newApplicationService(store).Create(context.Background(), 1, 10)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("created pending", func(t *testing.T) {
		store := newMemStore()
		store.addMission(1, 3, 0)
		store.addVolunteer(10, 20, domain.VolunteerApproved)

		app, err := newApplicationService(store).Create(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationPending, app.Status)
		assert.Equal(t, fixed, app.AppliedAt)
		assert.Equal(t, 0, store.missions[1].FilledSlots)
	})
}

func TestApplicationService_VolunteerMustBeApproved(t *testing.T) {
	store := newMemStore()
	store.addCitizen(20)
	store.addMission(1, 2, 0)

	volunteers := NewVolunteerService(volunteerRepo{store}, peopleRepo{store})
	volunteer, err := volunteers.Create(context.Background(), domain.Volunteer{PersonID: 20})
	require.NoError(t, err)
	require.Equal(t, domain.VolunteerPending, volunteer.Status)

	svc := newApplicationService(store)
	_, err = svc.Create(context.Background(), 1, volunteer.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))

	_, err = volunteers.Approve(context.Background(), volunteer.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, volunteer.ID)
	assert.NoError(t, err)
}

func TestApplicationService_Delete(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.ApplicationStatus
		wantFilled int
	}{
		{"approved releases slot", domain.ApplicationApproved, 1},
		{"pending keeps counter", domain.ApplicationPending, 2},
		{"completed keeps counter", domain.ApplicationCompleted, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.addMission(1, 3, 2)
			store.addVolunteer(10, 20, domain.VolunteerApproved)
			store.addApplication(30, 1, 10, tt.status)

			require.NoError(t, newApplicationService(store).Delete(context.Background(), 30))
			assert.Equal(t, tt.wantFilled, store.missions[1].FilledSlots)
			assert.NotContains(t, store.applications, uint(30))
		})
	}
}

func TestApplicationService_Complete(t *testing.T) {
	store := newMemStore()
	store.addMission(1, 3, 1)
	store.addVolunteer(10, 20, domain.VolunteerApproved)
	store.addApplication(30, 1, 10, domain.ApplicationApproved)
	svc := newApplicationService(store)

	bad := 0
	_, err := svc.Complete(context.Background(), 30, &bad, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	rating := 4
	note := "great help"
	completed, err := svc.Complete(context.Background(), 30, &rating, &note)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	assert.Equal(t, 1, store.missions[1].FilledSlots)
}

func TestApplicationService_Reject(t *testing.T) {
	store := newMemStore()
	store.addMission(1, 3, 0)
	store.addVolunteer(10, 20, domain.VolunteerApproved)
	store.addApplication(30, 1, 10, domain.ApplicationPending)
	svc := newApplicationService(store)

	note := "mission is full"
	rejected, err := svc.Reject(context.Background(), 30, &note)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, rejected.Status)
	assert.Equal(t, note, rejected.ReviewNote)

	_, err = svc.Reject(context.Background(), 30, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestApplicationService_Update(t *testing.T) {
	store := newMemStore()
	store.addMission(1, 3, 0)
	store.addMission(2, 3, 0)
	store.addVolunteer(10, 20, domain.VolunteerApproved)
	store.addApplication(30, 1, 10, domain.ApplicationPending)
	store.addApplication(31, 2, 10, domain.ApplicationApproved)
	svc := newApplicationService(store)

	missionID := uint(2)
	_, err := svc.Update(context.Background(), 30, &missionID, nil)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, uint(1), store.applications[30].MissionID)

	_, err = svc.Update(context.Background(), 31, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}
