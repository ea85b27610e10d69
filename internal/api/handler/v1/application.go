package v1

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type ApplicationService interface {
	List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.MissionApplication, error)
	ListByMission(ctx context.Context, missionID uint) ([]domain.MissionApplication, error)
	ListByVolunteer(ctx context.Context, volunteerID uint) ([]domain.MissionApplication, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.MissionApplication, error)
	Get(ctx context.Context, id uint) (domain.MissionApplication, error)
	Create(ctx context.Context, missionID, volunteerID uint) (domain.MissionApplication, error)
	Update(ctx context.Context, id uint, missionID, volunteerID *uint) (domain.MissionApplication, error)
	Approve(ctx context.Context, id uint) (domain.MissionApplication, error)
	Reject(ctx context.Context, id uint, note *string) (domain.MissionApplication, error)
	Complete(ctx context.Context, id uint, rating *int, note *string) (domain.MissionApplication, error)
	Delete(ctx context.Context, id uint) error
}

type ApplicationHandler struct {
	svc ApplicationService
}

func NewApplicationHandler(svc ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		svc: svc,
	}
}

// HandleListApplications godoc
// @Summary      List mission applications
// @Tags         applications
// @Produce      json
// @Param        mission_id    query     int     false  "Filter by mission"
// @Param        volunteer_id  query     int     false  "Filter by volunteer"
// @Param        status        query     string  false  "pending, approved, rejected or completed"
// @Success      200           {object}  response.Data{data=[]domain.MissionApplication}
// @Failure      400           {object}  response.Err
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleListApplications(ctx *gin.Context) {
	missionID, err := queryUint(ctx, "mission_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	volunteerID, err := queryUint(ctx, "volunteer_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	status, err := queryEnum(ctx, "status", domain.ApplicationStatus.Valid)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.ApplicationFilter{MissionID: missionID, VolunteerID: volunteerID, Status: status}
	applications, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		renderServiceErr(ctx, "HandleListApplications", "h.svc.List", err)
		return
	}

	response.OK(ctx, applications)
}

// HandleListApplicationsByStatus godoc
// @Summary      List applications in a status
// @Tags         applications
// @Produce      json
// @Param        status  path      string  true  "pending, approved, rejected or completed"
// @Success      200     {object}  response.Data{data=[]domain.MissionApplication}
// @Failure      400     {object}  response.Err
// @Router       /applications/status/{status} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleListApplicationsByStatus(ctx *gin.Context) {
	status := domain.ApplicationStatus(ctx.Param("status"))
	if !status.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid status %q", status)))
		return
	}

	applications, err := h.svc.ListByStatus(ctx.Request.Context(), status)
	if err != nil {
		renderServiceErr(ctx, "HandleListApplicationsByStatus", "h.svc.ListByStatus", err)
		return
	}

	response.OK(ctx, applications)
}

// HandleListMissionApplications godoc
// @Summary      List the applications of a mission
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Mission ID"
// @Success      200  {object}  response.Data{data=[]domain.MissionApplication}
// @Failure      404  {object}  response.Err
// @Router       /missions/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleListMissionApplications(ctx *gin.Context) {
	missionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	applications, err := h.svc.ListByMission(ctx.Request.Context(), missionID)
	if err != nil {
		renderServiceErr(ctx, "HandleListMissionApplications", "h.svc.ListByMission", err)
		return
	}

	response.OK(ctx, applications)
}

// HandleListVolunteerApplications godoc
// @Summary      List the applications of a volunteer
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Volunteer ID"
// @Success      200  {object}  response.Data{data=[]domain.MissionApplication}
// @Failure      404  {object}  response.Err
// @Router       /volunteers/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleListVolunteerApplications(ctx *gin.Context) {
	volunteerID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	applications, err := h.svc.ListByVolunteer(ctx.Request.Context(), volunteerID)
	if err != nil {
		renderServiceErr(ctx, "HandleListVolunteerApplications", "h.svc.ListByVolunteer", err)
		return
	}

	response.OK(ctx, applications)
}

// HandleGetApplication godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Data{data=domain.MissionApplication}
// @Failure      404  {object}  response.Err
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleGetApplication(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	application, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetApplication", "h.svc.Get", err)
		return
	}

	response.OK(ctx, application)
}

// HandleCreateApplication godoc
// @Summary      Apply a volunteer to a mission
// @Description  The volunteer must be approved and the mission active with open slots.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateApplicationRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.MissionApplication}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleCreateApplication(ctx *gin.Context) {
	var req request.CreateApplicationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := h.svc.Create(ctx.Request.Context(), req.MissionID, req.VolunteerID)
	if err != nil {
		renderServiceErr(ctx, "HandleCreateApplication", "h.svc.Create", err)
		return
	}

	response.Created(ctx, application)
}

// HandleUpdateApplication godoc
// @Summary      Move a pending application to another mission or volunteer
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path      int                               true  "Application ID"
// @Param        request  body      request.UpdateApplicationRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.MissionApplication}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleUpdateApplication(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateApplicationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := h.svc.Update(ctx.Request.Context(), id, req.MissionID, req.VolunteerID)
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateApplication", "h.svc.Update", err)
		return
	}

	response.OK(ctx, application)
}

// HandleApproveApplication godoc
// @Summary      Approve a pending application
// @Description  Takes one slot of the mission. Fails with 409 when the mission is full.
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Data{data=domain.MissionApplication}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /applications/{id}/approve [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleApproveApplication(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	application, err := h.svc.Approve(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleApproveApplication", "h.svc.Approve", err)
		return
	}

	response.OK(ctx, application)
}

// HandleRejectApplication godoc
// @Summary      Reject a pending application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true   "Application ID"
// @Param        request  body      request.NoteRequest  false  "optional note"
// @Success      200      {object}  response.Data{data=domain.MissionApplication}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /applications/{id}/reject [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleRejectApplication(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.NoteRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	application, err := h.svc.Reject(ctx.Request.Context(), id, req.Note)
	if err != nil {
		renderServiceErr(ctx, "HandleRejectApplication", "h.svc.Reject", err)
		return
	}

	response.OK(ctx, application)
}

// HandleCompleteApplication godoc
// @Summary      Complete an approved application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path      int                                 true   "Application ID"
// @Param        request  body      request.CompleteApplicationRequest  false  "optional rating and note"
// @Success      200      {object}  response.Data{data=domain.MissionApplication}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /applications/{id}/complete [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleCompleteApplication(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.CompleteApplicationRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	application, err := h.svc.Complete(ctx.Request.Context(), id, req.Rating, req.Note)
	if err != nil {
		renderServiceErr(ctx, "HandleCompleteApplication", "h.svc.Complete", err)
		return
	}

	response.OK(ctx, application)
}

// HandleDeleteApplication godoc
// @Summary      Delete an application
// @Description  Deleting an approved application frees its mission slot.
// @Tags         applications
// @Param        id   path  int  true  "Application ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) HandleDeleteApplication(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteApplication", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
