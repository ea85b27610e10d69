package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type fakeDonationService struct {
	DonationService

	donation domain.Donation
	items    []domain.DonationItem
	filter   domain.DonationFilter
	err      error
}

func (f *fakeDonationService) List(_ context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	f.filter = filter
	return nil, f.err
}

func (f *fakeDonationService) Create(_ context.Context, d domain.Donation, items []domain.DonationItem) (domain.Donation, error) {
	f.donation, f.items = d, items
	d.ID = 1
	d.Status = domain.DonationPending
	return d, f.err
}

func (f *fakeDonationService) RegisterDelivery(_ context.Context, id uint) (domain.Donation, error) {
	return domain.Donation{ID: id, Status: domain.DonationDelivered}, f.err
}

func newDonationRouter(svc DonationService) *gin.Engine {
	h := NewDonationHandler(svc)
	router := gin.New()
	router.GET("/donations", h.HandleListDonations)
	router.POST("/donations", h.HandleCreateDonation)
	router.PATCH("/donations/:id/deliver", h.HandleDeliverDonation)

	return router
}

func TestDonationHandler_Create(t *testing.T) {
	svc := &fakeDonationService{}
	router := newDonationRouter(svc)

	rec := serve(t, router, http.MethodPost, "/donations", `{
		"person_id": 3,
		"collection_point_id": 2,
		"items": [
			{"item_type_id": 1, "quantity": 12.5},
			{"item_type_id": 4, "quantity": "3"}
		]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, uint(3), svc.donation.PersonID)
	require.Len(t, svc.items, 2)
	assert.True(t, svc.items[0].Quantity.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, uint(4), svc.items[1].ItemTypeID)
}

func TestDonationHandler_Create_Validation(t *testing.T) {
	router := newDonationRouter(&fakeDonationService{})

	rec := serve(t, router, http.MethodPost, "/donations", `{
		"person_id": 3,
		"collection_point_id": 2,
		"items": [
			{"item_type_id": 1, "quantity": 2},
			{"item_type_id": 0, "quantity": 0}
		]
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeErr(t, rec)
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, "must be greater than zero", body.Errors["items.1.quantity"])
	assert.Contains(t, body.Errors, "items.1.item_type_id")
	assert.NotContains(t, body.Errors, "items.0.quantity")

	rec = serve(t, router, http.MethodPost, "/donations", map[string]any{"person_id": 3, "collection_point_id": 2})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeErr(t, rec).Errors, "items")
}

func TestDonationHandler_ListFilters(t *testing.T) {
	svc := &fakeDonationService{}
	router := newDonationRouter(svc)

	rec := serve(t, router, http.MethodGet, "/donations?person_id=3&status=delivered", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.PersonID)
	assert.Equal(t, uint(3), *svc.filter.PersonID)
	require.NotNil(t, svc.filter.Status)
	assert.Equal(t, domain.DonationDelivered, *svc.filter.Status)
	assert.Nil(t, svc.filter.CollectionPointID)

	rec = serve(t, router, http.MethodGet, "/donations?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDonationHandler_Deliver(t *testing.T) {
	rec := serve(t, newDonationRouter(&fakeDonationService{}), http.MethodPatch, "/donations/8/deliver", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DonationDelivered, decodeData[domain.Donation](t, rec).Status)

	cancelled := &fakeDonationService{err: domain.InvalidState("only pending donations can be delivered")}
	rec = serve(t, newDonationRouter(cancelled), http.MethodPatch, "/donations/8/deliver", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "only pending donations can be delivered", decodeErr(t, rec).Error)
}
