package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type ProfileService interface {
	List(ctx context.Context) ([]domain.Profile, error)
	Get(ctx context.Context, id uint) (domain.Profile, error)
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	Update(ctx context.Context, id uint, name, description *string) (domain.Profile, error)
	Delete(ctx context.Context, id uint) error
}

type ProfileHandler struct {
	svc ProfileService
}

func NewProfileHandler(svc ProfileService) *ProfileHandler {
	return &ProfileHandler{
		svc: svc,
	}
}

// HandleListProfiles godoc
// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.Profile}
// @Failure      500  {object}  response.Err
// @Router       /profiles [get]
// @Security     BearerAuth
func (h *ProfileHandler) HandleListProfiles(ctx *gin.Context) {
	profiles, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListProfiles", "h.svc.List", err)
		return
	}

	response.OK(ctx, profiles)
}

// HandleGetProfile godoc
// @Summary      Get a profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.Data{data=domain.Profile}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /profiles/{id} [get]
// @Security     BearerAuth
func (h *ProfileHandler) HandleGetProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	profile, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetProfile", "h.svc.Get", err)
		return
	}

	response.OK(ctx, profile)
}

// HandleCreateProfile godoc
// @Summary      Create a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateProfileRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.Profile}
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /profiles [post]
// @Security     BearerAuth
func (h *ProfileHandler) HandleCreateProfile(ctx *gin.Context) {
	var req request.CreateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "HandleCreateProfile", "h.svc.Create", err)
		return
	}

	response.Created(ctx, profile)
}

// HandleUpdateProfile godoc
// @Summary      Update a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Profile ID"
// @Param        request  body      request.UpdateProfileRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Profile}
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /profiles/{id} [put]
// @Security     BearerAuth
func (h *ProfileHandler) HandleUpdateProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := h.svc.Update(ctx.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateProfile", "h.svc.Update", err)
		return
	}

	response.OK(ctx, profile)
}

// HandleDeleteProfile godoc
// @Summary      Delete a profile that no person uses
// @Tags         profiles
// @Param        id   path  int  true  "Profile ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /profiles/{id} [delete]
// @Security     BearerAuth
func (h *ProfileHandler) HandleDeleteProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteProfile", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
