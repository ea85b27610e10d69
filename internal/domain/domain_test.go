package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissionApplication_Transitions(t *testing.T) {
	now := time.Now()

	t.Run("approve from pending", func(t *testing.T) {
		app := MissionApplication{Status: ApplicationPending}
		require.NoError(t, app.Approve(now))
		assert.Equal(t, ApplicationApproved, app.Status)
		assert.NotNil(t, app.ApprovedAt)
	})

	t.Run("approve twice", func(t *testing.T) {
		app := MissionApplication{Status: ApplicationApproved}
		err := app.Approve(now)
		assert.True(t, errors.Is(err, ErrInvalidState))
	})

	t.Run("reject keeps note", func(t *testing.T) {
		note := "not enough experience"
		app := MissionApplication{Status: ApplicationPending}
		require.NoError(t, app.Reject(&note))
		assert.Equal(t, ApplicationRejected, app.Status)
		assert.Equal(t, note, app.ReviewNote)
	})

	t.Run("complete requires approval", func(t *testing.T) {
		app := MissionApplication{Status: ApplicationPending}
		err := app.Complete(now, nil, nil)
		assert.True(t, errors.Is(err, ErrInvalidState))
	})

	t.Run("complete with out of range rating", func(t *testing.T) {
		rating := 6
		app := MissionApplication{Status: ApplicationApproved}
		err := app.Complete(now, &rating, nil)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Equal(t, ApplicationApproved, app.Status)
	})

	t.Run("complete", func(t *testing.T) {
		rating := 5
		app := MissionApplication{Status: ApplicationApproved}
		require.NoError(t, app.Complete(now, &rating, nil))
		assert.Equal(t, ApplicationCompleted, app.Status)
		assert.Equal(t, 5, *app.Rating)
		assert.False(t, app.HoldsReleasableSlot())
	})
}

func TestMission_ValidateSlots(t *testing.T) {
	tests := []struct {
		name    string
		mission Mission
		wantErr bool
	}{
		{"valid", Mission{TotalSlots: 3, FilledSlots: 3}, false},
		{"zero total", Mission{TotalSlots: 0}, true},
		{"overfilled", Mission{TotalSlots: 2, FilledSlots: 3}, true},
		{"negative filled", Mission{TotalSlots: 2, FilledSlots: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mission.ValidateSlots()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidArgument))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNeed_Receive(t *testing.T) {
	need := Need{QuantityNeeded: decimal.NewFromInt(100), QuantityReceived: decimal.NewFromInt(90)}

	need.Receive(decimal.NewFromInt(30))

	assert.True(t, need.QuantityReceived.Equal(decimal.NewFromInt(100)))
	assert.True(t, need.Outstanding().IsZero())
}

func TestNeed_Validate(t *testing.T) {
	need := Need{
		QuantityNeeded:   decimal.NewFromInt(10),
		QuantityReceived: decimal.NewFromInt(11),
		Priority:         PriorityHigh,
	}
	assert.True(t, errors.Is(need.Validate(), ErrInvalidArgument))

	need.QuantityReceived = decimal.RequireFromString("9.5")
	assert.NoError(t, need.Validate())
}

func TestDonation_Deliver(t *testing.T) {
	d := Donation{ID: 7, Status: DonationCancelled}
	assert.True(t, errors.Is(d.Deliver(time.Now()), ErrConflict))

	d.Status = DonationPending
	require.NoError(t, d.Deliver(time.Now()))
	assert.Equal(t, DonationDelivered, d.Status)

	err := d.Deliver(time.Now())
	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(d.Cancel(), ErrConflict))
}

func TestErrCapacityExceeded(t *testing.T) {
	var err error = ErrCapacityExceeded
	assert.True(t, errors.Is(err, ErrConflict))

	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "mission has no open slots left", derr.Msg)
}
