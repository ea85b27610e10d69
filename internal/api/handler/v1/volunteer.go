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

type VolunteerService interface {
	List(ctx context.Context) ([]domain.Volunteer, error)
	ListByStatus(ctx context.Context, status domain.VolunteerStatus) ([]domain.Volunteer, error)
	ListApproved(ctx context.Context) ([]domain.Volunteer, error)
	Get(ctx context.Context, id uint) (domain.Volunteer, error)
	Create(ctx context.Context, volunteer domain.Volunteer) (domain.Volunteer, error)
	Update(ctx context.Context, id uint, upd service.VolunteerUpdate) (domain.Volunteer, error)
	Approve(ctx context.Context, id uint) (domain.Volunteer, error)
	Reject(ctx context.Context, id uint, note *string) (domain.Volunteer, error)
	Delete(ctx context.Context, id uint) error
}

type VolunteerHandler struct {
	svc VolunteerService
}

func NewVolunteerHandler(svc VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{
		svc: svc,
	}
}

// HandleListVolunteers godoc
// @Summary      List volunteers
// @Tags         volunteers
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.Volunteer}
// @Router       /volunteers [get]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleListVolunteers(ctx *gin.Context) {
	volunteers, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListVolunteers", "h.svc.List", err)
		return
	}

	response.OK(ctx, volunteers)
}

// HandleListApprovedVolunteers godoc
// @Summary      List approved volunteers
// @Tags         volunteers
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.Volunteer}
// @Router       /volunteers/approved [get]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleListApprovedVolunteers(ctx *gin.Context) {
	volunteers, err := h.svc.ListApproved(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListApprovedVolunteers", "h.svc.ListApproved", err)
		return
	}

	response.OK(ctx, volunteers)
}

// HandleListVolunteersByStatus godoc
// @Summary      List volunteers in a status
// @Tags         volunteers
// @Produce      json
// @Param        status  path      string  true  "pending, approved or rejected"
// @Success      200     {object}  response.Data{data=[]domain.Volunteer}
// @Failure      400     {object}  response.Err
// @Router       /volunteers/status/{status} [get]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleListVolunteersByStatus(ctx *gin.Context) {
	status := domain.VolunteerStatus(ctx.Param("status"))
	if !status.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid status %q", status)))
		return
	}

	volunteers, err := h.svc.ListByStatus(ctx.Request.Context(), status)
	if err != nil {
		renderServiceErr(ctx, "HandleListVolunteersByStatus", "h.svc.ListByStatus", err)
		return
	}

	response.OK(ctx, volunteers)
}

// HandleGetVolunteer godoc
// @Summary      Get a volunteer
// @Tags         volunteers
// @Produce      json
// @Param        id   path      int  true  "Volunteer ID"
// @Success      200  {object}  response.Data{data=domain.Volunteer}
// @Failure      404  {object}  response.Err
// @Router       /volunteers/{id} [get]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleGetVolunteer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	volunteer, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetVolunteer", "h.svc.Get", err)
		return
	}

	response.OK(ctx, volunteer)
}

// HandleCreateVolunteer godoc
// @Summary      Register a person as volunteer
// @Description  The record starts pending until an admin approves it.
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateVolunteerRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.Volunteer}
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /volunteers [post]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleCreateVolunteer(ctx *gin.Context) {
	var req request.CreateVolunteerRequest
	if !bindJSON(ctx, &req) {
		return
	}

	volunteer, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "HandleCreateVolunteer", "h.svc.Create", err)
		return
	}

	response.Created(ctx, volunteer)
}

// HandleUpdateVolunteer godoc
// @Summary      Update a volunteer
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id       path      int                             true  "Volunteer ID"
// @Param        request  body      request.UpdateVolunteerRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Volunteer}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /volunteers/{id} [put]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleUpdateVolunteer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateVolunteerRequest
	if !bindJSON(ctx, &req) {
		return
	}

	volunteer, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateVolunteer", "h.svc.Update", err)
		return
	}

	response.OK(ctx, volunteer)
}

// HandleApproveVolunteer godoc
// @Summary      Approve a pending volunteer
// @Tags         volunteers
// @Produce      json
// @Param        id   path      int  true  "Volunteer ID"
// @Success      200  {object}  response.Data{data=domain.Volunteer}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /volunteers/{id}/approve [patch]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleApproveVolunteer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	volunteer, err := h.svc.Approve(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleApproveVolunteer", "h.svc.Approve", err)
		return
	}

	response.OK(ctx, volunteer)
}

// HandleRejectVolunteer godoc
// @Summary      Reject a pending volunteer
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true   "Volunteer ID"
// @Param        request  body      request.NoteRequest  false  "optional note"
// @Success      200      {object}  response.Data{data=domain.Volunteer}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /volunteers/{id}/reject [patch]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleRejectVolunteer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.NoteRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	volunteer, err := h.svc.Reject(ctx.Request.Context(), id, req.Note)
	if err != nil {
		renderServiceErr(ctx, "HandleRejectVolunteer", "h.svc.Reject", err)
		return
	}

	response.OK(ctx, volunteer)
}

// HandleDeleteVolunteer godoc
// @Summary      Delete a volunteer without applications
// @Tags         volunteers
// @Param        id   path  int  true  "Volunteer ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /volunteers/{id} [delete]
// @Security     BearerAuth
func (h *VolunteerHandler) HandleDeleteVolunteer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteVolunteer", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
