package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

func newDonationService(store *memStore) *DonationService {
	return NewDonationService(store, donationRepo{store}, needRepo{store}, pointRepo{store}, peopleRepo{store}, catalogRepo{store})
}

func donationFixture() *memStore {
	store := newMemStore()
	store.addCitizen(6)
	store.addPoint(1, true)
	store.addPoint(2, false)
	store.itemTypes[1] = domain.ItemType{ID: 1, Name: "Drinking water", Unit: "l"}
	store.itemTypes[2] = domain.ItemType{ID: 2, Name: "Blanket", Unit: "unit"}
	return store
}

func item(itemTypeID uint, qty string) domain.DonationItem {
	return domain.DonationItem{ItemTypeID: itemTypeID, Quantity: decimal.RequireFromString(qty)}
}

func TestDonationService_Create(t *testing.T) {
	t.Run("header and items", func(t *testing.T) {
		store := donationFixture()

		donation, err := newDonationService(store).Create(context.Background(),
			domain.Donation{PersonID: 6, CollectionPointID: 1, Status: domain.DonationDelivered},
			[]domain.DonationItem{item(1, "10"), item(2, "2.456")})
		require.NoError(t, err)
		assert.Equal(t, domain.DonationPending, donation.Status)
		assert.Nil(t, donation.DeliveredAt)
		require.Len(t, donation.Items, 2)
		assert.Equal(t, "2.46", donation.Items[1].Quantity.StringFixed(2))
	})

	tests := []struct {
		name    string
		header  domain.Donation
		items   []domain.DonationItem
		wantErr error
	}{
		{"no items", domain.Donation{PersonID: 6, CollectionPointID: 1}, nil, domain.ErrInvalidArgument},
		{"zero quantity", domain.Donation{PersonID: 6, CollectionPointID: 1},
			[]domain.DonationItem{item(1, "3"), item(2, "0")}, domain.ErrInvalidArgument},
		{"unknown item type", domain.Donation{PersonID: 6, CollectionPointID: 1},
			[]domain.DonationItem{item(1, "3"), item(99, "1")}, domain.ErrInvalidArgument},
		{"inactive point", domain.Donation{PersonID: 6, CollectionPointID: 2},
			[]domain.DonationItem{item(1, "3")}, domain.ErrInvalidState},
		{"unknown person", domain.Donation{PersonID: 60, CollectionPointID: 1},
			[]domain.DonationItem{item(1, "3")}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := donationFixture()

			_, err := newDonationService(store).Create(context.Background(), tt.header, tt.items)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, store.donations)
			assert.Empty(t, store.items)
		})
	}

	t.Run("storage failure rolls back", func(t *testing.T) {
		store := donationFixture()
		store.failCreateItemAfter = 1

		_, err := newDonationService(store).Create(context.Background(),
			domain.Donation{PersonID: 6, CollectionPointID: 1},
			[]domain.DonationItem{item(1, "1"), item(2, "1")})
		assert.ErrorIs(t, err, errInjected)
		assert.Empty(t, store.donations)
		assert.Empty(t, store.items)
	})
}

func TestDonationService_RegisterDelivery_ClampsNeed(t *testing.T) {
	store := donationFixture()
	store.addNeed(40, 1, 1, 3, 0, true)
	store.addNeed(41, 1, 2, 10, 9, false)
	svc := newDonationService(store)

	donation, err := svc.Create(context.Background(),
		domain.Donation{PersonID: 6, CollectionPointID: 1},
		[]domain.DonationItem{item(1, "5"), item(2, "4")})
	require.NoError(t, err)

	delivered, err := svc.RegisterDelivery(context.Background(), donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)

	assert.True(t, store.needs[40].QuantityReceived.Equal(decimal.NewFromInt(3)))
	assert.True(t, store.needs[41].QuantityReceived.Equal(decimal.NewFromInt(9)), "inactive needs are not credited")

	_, err = svc.RegisterDelivery(context.Background(), donation.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.True(t, store.needs[40].QuantityReceived.Equal(decimal.NewFromInt(3)))
}

func TestDonationService_RegisterDelivery_Accumulates(t *testing.T) {
	store := donationFixture()
	store.addNeed(40, 1, 1, 100, 0, true)
	svc := newDonationService(store)

	for _, qty := range []string{"30.5", "30.5", "50"} {
		donation, err := svc.Create(context.Background(),
			domain.Donation{PersonID: 6, CollectionPointID: 1},
			[]domain.DonationItem{item(1, qty)})
		require.NoError(t, err)
		_, err = svc.RegisterDelivery(context.Background(), donation.ID)
		require.NoError(t, err)

		need := store.needs[40]
		assert.True(t, need.QuantityReceived.LessThanOrEqual(need.QuantityNeeded))
	}
	assert.Equal(t, "100.00", store.needs[40].QuantityReceived.StringFixed(2))
}

func TestDonationService_CancelAndDelete(t *testing.T) {
	store := donationFixture()
	svc := newDonationService(store)
	ctx := context.Background()

	pending, err := svc.Create(ctx, domain.Donation{PersonID: 6, CollectionPointID: 1}, []domain.DonationItem{item(1, "1")})
	require.NoError(t, err)
	delivered, err := svc.Create(ctx, domain.Donation{PersonID: 6, CollectionPointID: 1}, []domain.DonationItem{item(1, "1")})
	require.NoError(t, err)
	_, err = svc.RegisterDelivery(ctx, delivered.ID)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCancelled, cancelled.Status)

	_, err = svc.RegisterDelivery(ctx, pending.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = svc.Cancel(ctx, delivered.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = svc.Delete(ctx, delivered.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, store.donations, delivered.ID)

	require.NoError(t, svc.Delete(ctx, pending.ID))
	assert.NotContains(t, store.donations, pending.ID)
}

func TestDonationService_Update(t *testing.T) {
	store := donationFixture()
	svc := newDonationService(store)
	ctx := context.Background()

	donation, err := svc.Create(ctx, domain.Donation{PersonID: 6, CollectionPointID: 1}, []domain.DonationItem{item(1, "1")})
	require.NoError(t, err)

	inactive := uint(2)
	_, err = svc.Update(ctx, donation.ID, DonationUpdate{CollectionPointID: &inactive})
	assert.True(t, errors.Is(err, domain.ErrInvalidState))

	note := "left at the front desk"
	updated, err := svc.Update(ctx, donation.ID, DonationUpdate{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, note, updated.Note)
}

func TestDonationItemService(t *testing.T) {
	store := donationFixture()
	donations := newDonationService(store)
	svc := NewDonationItemService(store, donationRepo{store}, catalogRepo{store})
	ctx := context.Background()

	donation, err := donations.Create(ctx, domain.Donation{PersonID: 6, CollectionPointID: 1}, []domain.DonationItem{item(1, "1")})
	require.NoError(t, err)
	only := donation.Items[0]

	err = svc.Delete(ctx, only.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))

	added, err := svc.Create(ctx, domain.DonationItem{DonationID: donation.ID, ItemTypeID: 2, Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)

	qty := decimal.Zero
	_, err = svc.Update(ctx, added.ID, DonationItemUpdate{Quantity: &qty})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	require.NoError(t, svc.Delete(ctx, only.ID))

	_, err = donations.RegisterDelivery(ctx, donation.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.DonationItem{DonationID: donation.ID, ItemTypeID: 1, Quantity: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = svc.Delete(ctx, added.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
