package v1

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

// fakeMissionService only implements what the tests call; anything else panics.
type fakeMissionService struct {
	MissionService

	filter  domain.MissionFilter
	created domain.Mission
	adminID uint
	upd     service.MissionUpdate
	err     error
}

func (f *fakeMissionService) List(_ context.Context, filter domain.MissionFilter) ([]domain.Mission, error) {
	f.filter = filter
	return []domain.Mission{{ID: 1, Title: "Sandbags"}}, f.err
}

func (f *fakeMissionService) Get(_ context.Context, id uint) (domain.Mission, error) {
	if f.err != nil {
		return domain.Mission{}, f.err
	}
	return domain.Mission{ID: id}, nil
}

func (f *fakeMissionService) Create(_ context.Context, m domain.Mission, adminID uint) (domain.Mission, error) {
	f.created, f.adminID = m, adminID
	m.ID = 10
	return m, f.err
}

func (f *fakeMissionService) Update(_ context.Context, id uint, upd service.MissionUpdate) (domain.Mission, error) {
	f.upd = upd
	return domain.Mission{ID: id}, f.err
}

func (f *fakeMissionService) UpdateFilledSlots(_ context.Context, id uint, filled int) (domain.Mission, error) {
	return domain.Mission{ID: id, FilledSlots: filled}, f.err
}

func (f *fakeMissionService) Delete(context.Context, uint) error {
	return f.err
}

func newMissionRouter(svc MissionService) *gin.Engine {
	h := NewMissionHandler(svc)
	router := gin.New()
	router.GET("/missions", h.HandleListMissions)
	router.POST("/missions", h.HandleCreateMission)
	router.GET("/missions/:id", h.HandleGetMission)
	router.PUT("/missions/:id", h.HandleUpdateMission)
	router.PATCH("/missions/:id/slots", h.HandleUpdateFilledSlots)
	router.DELETE("/missions/:id", h.HandleDeleteMission)

	return router
}

func TestMissionHandler_List(t *testing.T) {
	svc := &fakeMissionService{}
	router := newMissionRouter(svc)

	rec := serve(t, router, http.MethodGet, "/missions?status=active&category_id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.Status)
	assert.Equal(t, domain.MissionActive, *svc.filter.Status)
	require.NotNil(t, svc.filter.CategoryID)
	assert.Equal(t, uint(2), *svc.filter.CategoryID)
	assert.Nil(t, svc.filter.CityID)

	missions := decodeData[[]domain.Mission](t, rec)
	assert.Len(t, missions, 1)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"unknown status", "?status=paused", `invalid status "paused"`},
		{"bad category", "?category_id=x", "query parameter category_id must be a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, router, http.MethodGet, "/missions"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeErr(t, rec).Error)
		})
	}
}

func TestMissionHandler_Create(t *testing.T) {
	svc := &fakeMissionService{}
	router := newMissionRouter(svc)

	startsAt := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	rec := serve(t, router, http.MethodPost, "/missions", map[string]any{
		"title":         "Sandbags",
		"description":   "Fill sandbags at the riverside",
		"category_id":   1,
		"meeting_point": "Harbour",
		"starts_at":     startsAt,
		"total_slots":   10,
		"admin_id":      5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, uint(5), svc.adminID)
	assert.Equal(t, 10, svc.created.TotalSlots)
	assert.True(t, svc.created.StartsAt.Equal(startsAt))

	rec = serve(t, router, http.MethodPost, "/missions", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeErr(t, rec)
	assert.Equal(t, "validation failed", body.Error)
	assert.Contains(t, body.Errors, "starts_at")
	assert.Contains(t, body.Errors, "admin_id")

	rec = serve(t, router, http.MethodPost, "/missions", `{"title":`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMissionHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", domain.NotFound("mission", 7), http.StatusNotFound, "mission with ID 7 not found"},
		{"business rule", domain.InvalidArgument("total slots cannot be lower than filled slots"), http.StatusBadRequest,
			"total slots cannot be lower than filled slots"},
		{"conflict", domain.Conflict("mission has 2 applications"), http.StatusConflict, "mission has 2 applications"},
		{"unexpected", errors.New("db closed"), http.StatusInternalServerError,
			"HandleGetMission -> h.svc.Get -> db closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMissionRouter(&fakeMissionService{err: tt.err})

			rec := serve(t, router, http.MethodGet, "/missions/7", nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeErr(t, rec).Error)
		})
	}
}

func TestMissionHandler_UpdateAndSlots(t *testing.T) {
	svc := &fakeMissionService{}
	router := newMissionRouter(svc)

	rec := serve(t, router, http.MethodPut, "/missions/3", map[string]any{"total_slots": 4, "status": "finished"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, svc.upd.TotalSlots)
	assert.Equal(t, 4, *svc.upd.TotalSlots)
	require.NotNil(t, svc.upd.Status)
	assert.Equal(t, domain.MissionFinished, *svc.upd.Status)
	assert.Nil(t, svc.upd.Title)

	rec = serve(t, router, http.MethodPatch, "/missions/3/slots", map[string]any{"filled_slots": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeData[domain.Mission](t, rec).FilledSlots)

	rec = serve(t, router, http.MethodPatch, "/missions/3/slots", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeErr(t, rec).Errors, "filled_slots")

	rec = serve(t, router, http.MethodPatch, "/missions/3/slots", map[string]any{"filled_slots": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMissionHandler_Delete(t *testing.T) {
	router := newMissionRouter(&fakeMissionService{})

	rec := serve(t, router, http.MethodDelete, "/missions/3", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
