package v1

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type MissionService interface {
	List(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error)
	ListByStatus(ctx context.Context, status domain.MissionStatus) ([]domain.Mission, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]domain.Mission, error)
	ListAvailable(ctx context.Context) ([]domain.Mission, error)
	Get(ctx context.Context, id uint) (domain.Mission, error)
	Create(ctx context.Context, mission domain.Mission, adminID uint) (domain.Mission, error)
	Update(ctx context.Context, id uint, upd service.MissionUpdate) (domain.Mission, error)
	UpdateFilledSlots(ctx context.Context, id uint, filled int) (domain.Mission, error)
	Finish(ctx context.Context, id uint) (domain.Mission, error)
	Cancel(ctx context.Context, id uint) (domain.Mission, error)
	Delete(ctx context.Context, id uint) error
}

type MissionHandler struct {
	svc MissionService
}

func NewMissionHandler(svc MissionService) *MissionHandler {
	return &MissionHandler{
		svc: svc,
	}
}

// HandleListMissions godoc
// @Summary      List missions
// @Tags         missions
// @Produce      json
// @Param        status       query     string  false  "active, finished or cancelled"
// @Param        category_id  query     int     false  "Filter by category"
// @Param        city_id      query     int     false  "Filter by city"
// @Success      200          {object}  response.Data{data=[]domain.Mission}
// @Failure      400          {object}  response.Err
// @Router       /missions [get]
// @Security     BearerAuth
func (h *MissionHandler) HandleListMissions(ctx *gin.Context) {
	status, err := queryEnum(ctx, "status", domain.MissionStatus.Valid)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	categoryID, err := queryUint(ctx, "category_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	cityID, err := queryUint(ctx, "city_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.MissionFilter{Status: status, CategoryID: categoryID, CityID: cityID}
	missions, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		renderServiceErr(ctx, "HandleListMissions", "h.svc.List", err)
		return
	}

	response.OK(ctx, missions)
}

// HandleListAvailableMissions godoc
// @Summary      List active missions with open slots
// @Tags         missions
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.Mission}
// @Router       /missions/available [get]
// @Security     BearerAuth
func (h *MissionHandler) HandleListAvailableMissions(ctx *gin.Context) {
	missions, err := h.svc.ListAvailable(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListAvailableMissions", "h.svc.ListAvailable", err)
		return
	}

	response.OK(ctx, missions)
}

// HandleListMissionsByStatus godoc
// @Summary      List missions in a status
// @Tags         missions
// @Produce      json
// @Param        status  path      string  true  "active, finished or cancelled"
// @Success      200     {object}  response.Data{data=[]domain.Mission}
// @Failure      400     {object}  response.Err
// @Router       /missions/status/{status} [get]
// @Security     BearerAuth
func (h *MissionHandler) HandleListMissionsByStatus(ctx *gin.Context) {
	status := domain.MissionStatus(ctx.Param("status"))
	if !status.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid status %q", status)))
		return
	}

	missions, err := h.svc.ListByStatus(ctx.Request.Context(), status)
	if err != nil {
		renderServiceErr(ctx, "HandleListMissionsByStatus", "h.svc.ListByStatus", err)
		return
	}

	response.OK(ctx, missions)
}

// HandleListMissionsByCategory godoc
// @Summary      List missions of a category
// @Tags         missions
// @Produce      json
// @Param        id   path      int  true  "Mission category ID"
// @Success      200  {object}  response.Data{data=[]domain.Mission}
// @Failure      404  {object}  response.Err
// @Router       /missions/category/{id} [get]
// @Security     BearerAuth
func (h *MissionHandler) HandleListMissionsByCategory(ctx *gin.Context) {
	categoryID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	missions, err := h.svc.ListByCategory(ctx.Request.Context(), categoryID)
	if err != nil {
		renderServiceErr(ctx, "HandleListMissionsByCategory", "h.svc.ListByCategory", err)
		return
	}

	response.OK(ctx, missions)
}

// HandleGetMission godoc
// @Summary      Get a mission
// @Tags         missions
// @Produce      json
// @Param        id   path      int  true  "Mission ID"
// @Success      200  {object}  response.Data{data=domain.Mission}
// @Failure      404  {object}  response.Err
// @Router       /missions/{id} [get]
// @Security     BearerAuth
func (h *MissionHandler) HandleGetMission(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	mission, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetMission", "h.svc.Get", err)
		return
	}

	response.OK(ctx, mission)
}

// HandleCreateMission godoc
// @Summary      Create a mission
// @Description  Only admins may create missions. The city falls back to the configured default.
// @Tags         missions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateMissionRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.Mission}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /missions [post]
// @Security     BearerAuth
func (h *MissionHandler) HandleCreateMission(ctx *gin.Context) {
	var req request.CreateMissionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mission, err := h.svc.Create(ctx.Request.Context(), req.ToDomain(), req.AdminID)
	if err != nil {
		renderServiceErr(ctx, "HandleCreateMission", "h.svc.Create", err)
		return
	}

	response.Created(ctx, mission)
}

// HandleUpdateMission godoc
// @Summary      Update a mission
// @Tags         missions
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Mission ID"
// @Param        request  body      request.UpdateMissionRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Mission}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /missions/{id} [put]
// @Security     BearerAuth
func (h *MissionHandler) HandleUpdateMission(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateMissionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mission, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateMission", "h.svc.Update", err)
		return
	}

	response.OK(ctx, mission)
}

// HandleUpdateFilledSlots godoc
// @Summary      Overwrite the filled slot counter
// @Tags         missions
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Mission ID"
// @Param        request  body      request.UpdateSlotsRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Mission}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /missions/{id}/slots [patch]
// @Security     BearerAuth
func (h *MissionHandler) HandleUpdateFilledSlots(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateSlotsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mission, err := h.svc.UpdateFilledSlots(ctx.Request.Context(), id, *req.FilledSlots)
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateFilledSlots", "h.svc.UpdateFilledSlots", err)
		return
	}

	response.OK(ctx, mission)
}

// HandleFinishMission godoc
// @Summary      Mark a mission finished
// @Tags         missions
// @Produce      json
// @Param        id   path      int  true  "Mission ID"
// @Success      200  {object}  response.Data{data=domain.Mission}
// @Failure      404  {object}  response.Err
// @Router       /missions/{id}/finish [patch]
// @Security     BearerAuth
func (h *MissionHandler) HandleFinishMission(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	mission, err := h.svc.Finish(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleFinishMission", "h.svc.Finish", err)
		return
	}

	response.OK(ctx, mission)
}

// HandleCancelMission godoc
// @Summary      Cancel a mission
// @Tags         missions
// @Produce      json
// @Param        id   path      int  true  "Mission ID"
// @Success      200  {object}  response.Data{data=domain.Mission}
// @Failure      404  {object}  response.Err
// @Router       /missions/{id}/cancel [patch]
// @Security     BearerAuth
func (h *MissionHandler) HandleCancelMission(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	mission, err := h.svc.Cancel(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleCancelMission", "h.svc.Cancel", err)
		return
	}

	response.OK(ctx, mission)
}

// HandleDeleteMission godoc
// @Summary      Delete a mission without applications
// @Tags         missions
// @Param        id   path  int  true  "Mission ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /missions/{id} [delete]
// @Security     BearerAuth
func (h *MissionHandler) HandleDeleteMission(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteMission", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
