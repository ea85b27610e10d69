package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type fakeApplicationService struct {
	ApplicationService

	note   *string
	rating *int
	err    error
}

func (f *fakeApplicationService) Approve(_ context.Context, id uint) (domain.MissionApplication, error) {
	return domain.MissionApplication{ID: id, Status: domain.ApplicationApproved}, f.err
}

func (f *fakeApplicationService) Reject(_ context.Context, id uint, note *string) (domain.MissionApplication, error) {
	f.note = note
	return domain.MissionApplication{ID: id, Status: domain.ApplicationRejected}, f.err
}

func (f *fakeApplicationService) Complete(_ context.Context, id uint, rating *int, note *string) (domain.MissionApplication, error) {
	f.rating, f.note = rating, note
	return domain.MissionApplication{ID: id, Status: domain.ApplicationCompleted}, f.err
}

func (f *fakeApplicationService) ListByStatus(_ context.Context, status domain.ApplicationStatus) ([]domain.MissionApplication, error) {
	return []domain.MissionApplication{{ID: 1, Status: status}}, f.err
}

func newApplicationRouter(svc ApplicationService) *gin.Engine {
	h := NewApplicationHandler(svc)
	router := gin.New()
	router.GET("/applications/status/:status", h.HandleListApplicationsByStatus)
	router.PATCH("/applications/:id/approve", h.HandleApproveApplication)
	router.PATCH("/applications/:id/reject", h.HandleRejectApplication)
	router.PATCH("/applications/:id/complete", h.HandleCompleteApplication)

	return router
}

func TestApplicationHandler_Approve(t *testing.T) {
	rec := serve(t, newApplicationRouter(&fakeApplicationService{}), http.MethodPatch, "/applications/4/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ApplicationApproved, decodeData[domain.MissionApplication](t, rec).Status)

	full := &fakeApplicationService{err: domain.ErrCapacityExceeded}
	rec = serve(t, newApplicationRouter(full), http.MethodPatch, "/applications/4/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "mission has no open slots left", decodeErr(t, rec).Error)

	notPending := &fakeApplicationService{err: domain.InvalidState("only pending applications can be approved")}
	rec = serve(t, newApplicationRouter(notPending), http.MethodPatch, "/applications/4/approve", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationHandler_RejectOptionalBody(t *testing.T) {
	svc := &fakeApplicationService{}
	router := newApplicationRouter(svc)

	rec := serve(t, router, http.MethodPatch, "/applications/4/reject", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.note)

	rec = serve(t, router, http.MethodPatch, "/applications/4/reject", map[string]any{"note": "no driver license"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.note)
	assert.Equal(t, "no driver license", *svc.note)
}

func TestApplicationHandler_Complete(t *testing.T) {
	svc := &fakeApplicationService{}
	router := newApplicationRouter(svc)

	rec := serve(t, router, http.MethodPatch, "/applications/4/complete", map[string]any{"rating": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.rating)
	assert.Equal(t, 5, *svc.rating)

	rec = serve(t, router, http.MethodPatch, "/applications/4/complete", map[string]any{"rating": 9})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeErr(t, rec).Errors, "rating")
}

func TestApplicationHandler_ListByStatus(t *testing.T) {
	router := newApplicationRouter(&fakeApplicationService{})

	rec := serve(t, router, http.MethodGet, "/applications/status/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]domain.MissionApplication](t, rec), 1)

	rec = serve(t, router, http.MethodGet, "/applications/status/waiting", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
