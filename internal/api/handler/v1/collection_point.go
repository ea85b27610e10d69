package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type CollectionPointService interface {
	List(ctx context.Context, filter domain.CollectionPointFilter) ([]domain.CollectionPoint, error)
	ListActive(ctx context.Context) ([]domain.CollectionPoint, error)
	ListByCity(ctx context.Context, cityID uint) ([]domain.CollectionPoint, error)
	Get(ctx context.Context, id uint) (domain.CollectionPoint, error)
	Create(ctx context.Context, point domain.CollectionPoint, adminID uint) (domain.CollectionPoint, error)
	Update(ctx context.Context, id uint, upd service.CollectionPointUpdate) (domain.CollectionPoint, error)
	Activate(ctx context.Context, id uint) (domain.CollectionPoint, error)
	Deactivate(ctx context.Context, id uint) (domain.CollectionPoint, error)
	Delete(ctx context.Context, id uint) error
}

type CollectionPointHandler struct {
	svc CollectionPointService
}

func NewCollectionPointHandler(svc CollectionPointService) *CollectionPointHandler {
	return &CollectionPointHandler{
		svc: svc,
	}
}

// HandleListCollectionPoints godoc
// @Summary      List collection points
// @Tags         collection-points
// @Produce      json
// @Param        active   query     bool  false  "Filter by active flag"
// @Param        city_id  query     int   false  "Filter by city"
// @Success      200      {object}  response.Data{data=[]domain.CollectionPoint}
// @Failure      400      {object}  response.Err
// @Router       /collection-points [get]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleListCollectionPoints(ctx *gin.Context) {
	active, err := queryBool(ctx, "active")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	cityID, err := queryUint(ctx, "city_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	points, err := h.svc.List(ctx.Request.Context(), domain.CollectionPointFilter{Active: active, CityID: cityID})
	if err != nil {
		renderServiceErr(ctx, "HandleListCollectionPoints", "h.svc.List", err)
		return
	}

	response.OK(ctx, points)
}

// HandleListActiveCollectionPoints godoc
// @Summary      List active collection points
// @Tags         collection-points
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.CollectionPoint}
// @Router       /collection-points/active [get]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleListActiveCollectionPoints(ctx *gin.Context) {
	points, err := h.svc.ListActive(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListActiveCollectionPoints", "h.svc.ListActive", err)
		return
	}

	response.OK(ctx, points)
}

// HandleListCollectionPointsByCity godoc
// @Summary      List the collection points of a city
// @Tags         collection-points
// @Produce      json
// @Param        id   path      int  true  "City ID"
// @Success      200  {object}  response.Data{data=[]domain.CollectionPoint}
// @Failure      404  {object}  response.Err
// @Router       /collection-points/city/{id} [get]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleListCollectionPointsByCity(ctx *gin.Context) {
	cityID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	points, err := h.svc.ListByCity(ctx.Request.Context(), cityID)
	if err != nil {
		renderServiceErr(ctx, "HandleListCollectionPointsByCity", "h.svc.ListByCity", err)
		return
	}

	response.OK(ctx, points)
}

// HandleGetCollectionPoint godoc
// @Summary      Get a collection point
// @Tags         collection-points
// @Produce      json
// @Param        id   path      int  true  "Collection point ID"
// @Success      200  {object}  response.Data{data=domain.CollectionPoint}
// @Failure      404  {object}  response.Err
// @Router       /collection-points/{id} [get]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleGetCollectionPoint(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	point, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetCollectionPoint", "h.svc.Get", err)
		return
	}

	response.OK(ctx, point)
}

// HandleCreateCollectionPoint godoc
// @Summary      Create a collection point
// @Tags         collection-points
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCollectionPointRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.CollectionPoint}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /collection-points [post]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleCreateCollectionPoint(ctx *gin.Context) {
	var req request.CreateCollectionPointRequest
	if !bindJSON(ctx, &req) {
		return
	}

	point, err := h.svc.Create(ctx.Request.Context(), req.ToDomain(), req.AdminID)
	if err != nil {
		renderServiceErr(ctx, "HandleCreateCollectionPoint", "h.svc.Create", err)
		return
	}

	response.Created(ctx, point)
}

// HandleUpdateCollectionPoint godoc
// @Summary      Update a collection point
// @Tags         collection-points
// @Accept       json
// @Produce      json
// @Param        id       path      int                                   true  "Collection point ID"
// @Param        request  body      request.UpdateCollectionPointRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.CollectionPoint}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /collection-points/{id} [put]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleUpdateCollectionPoint(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateCollectionPointRequest
	if !bindJSON(ctx, &req) {
		return
	}

	point, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateCollectionPoint", "h.svc.Update", err)
		return
	}

	response.OK(ctx, point)
}

// HandleActivateCollectionPoint godoc
// @Summary      Activate a collection point
// @Tags         collection-points
// @Produce      json
// @Param        id   path      int  true  "Collection point ID"
// @Success      200  {object}  response.Data{data=domain.CollectionPoint}
// @Failure      404  {object}  response.Err
// @Router       /collection-points/{id}/activate [patch]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleActivateCollectionPoint(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	point, err := h.svc.Activate(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleActivateCollectionPoint", "h.svc.Activate", err)
		return
	}

	response.OK(ctx, point)
}

// HandleDeactivateCollectionPoint godoc
// @Summary      Deactivate a collection point
// @Tags         collection-points
// @Produce      json
// @Param        id   path      int  true  "Collection point ID"
// @Success      200  {object}  response.Data{data=domain.CollectionPoint}
// @Failure      404  {object}  response.Err
// @Router       /collection-points/{id}/deactivate [patch]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleDeactivateCollectionPoint(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	point, err := h.svc.Deactivate(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleDeactivateCollectionPoint", "h.svc.Deactivate", err)
		return
	}

	response.OK(ctx, point)
}

// HandleDeleteCollectionPoint godoc
// @Summary      Delete a collection point without needs or donations
// @Tags         collection-points
// @Param        id   path  int  true  "Collection point ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /collection-points/{id} [delete]
// @Security     BearerAuth
func (h *CollectionPointHandler) HandleDeleteCollectionPoint(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteCollectionPoint", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
