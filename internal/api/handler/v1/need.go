package v1

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type NeedService interface {
	List(ctx context.Context, filter domain.NeedFilter) ([]domain.Need, error)
	ListByCollectionPoint(ctx context.Context, pointID uint) ([]domain.Need, error)
	ListActive(ctx context.Context) ([]domain.Need, error)
	ListByPriority(ctx context.Context, priority domain.Priority) ([]domain.Need, error)
	Get(ctx context.Context, id uint) (domain.Need, error)
	Create(ctx context.Context, need domain.Need) (domain.Need, error)
	Update(ctx context.Context, id uint, upd service.NeedUpdate) (domain.Need, error)
	UpdateReceived(ctx context.Context, id uint, received decimal.Decimal) (domain.Need, error)
	Activate(ctx context.Context, id uint) (domain.Need, error)
	Deactivate(ctx context.Context, id uint) (domain.Need, error)
	Delete(ctx context.Context, id uint) error
}

type NeedHandler struct {
	svc NeedService
}

func NewNeedHandler(svc NeedService) *NeedHandler {
	return &NeedHandler{
		svc: svc,
	}
}

// HandleListNeeds godoc
// @Summary      List needs
// @Tags         needs
// @Produce      json
// @Param        collection_point_id  query     int     false  "Filter by collection point"
// @Param        active               query     bool    false  "Filter by active flag"
// @Param        priority             query     string  false  "low, medium or high"
// @Success      200                  {object}  response.Data{data=[]domain.Need}
// @Failure      400                  {object}  response.Err
// @Router       /needs [get]
// @Security     BearerAuth
func (h *NeedHandler) HandleListNeeds(ctx *gin.Context) {
	pointID, err := queryUint(ctx, "collection_point_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	active, err := queryBool(ctx, "active")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	priority, err := queryEnum(ctx, "priority", domain.Priority.Valid)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.NeedFilter{CollectionPointID: pointID, Active: active, Priority: priority}
	needs, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		renderServiceErr(ctx, "HandleListNeeds", "h.svc.List", err)
		return
	}

	response.OK(ctx, needs)
}

// HandleListActiveNeeds godoc
// @Summary      List active needs
// @Tags         needs
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.Need}
// @Router       /needs/active [get]
// @Security     BearerAuth
func (h *NeedHandler) HandleListActiveNeeds(ctx *gin.Context) {
	needs, err := h.svc.ListActive(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListActiveNeeds", "h.svc.ListActive", err)
		return
	}

	response.OK(ctx, needs)
}

// HandleListNeedsByPriority godoc
// @Summary      List needs of a priority
// @Tags         needs
// @Produce      json
// @Param        priority  path      string  true  "low, medium or high"
// @Success      200       {object}  response.Data{data=[]domain.Need}
// @Failure      400       {object}  response.Err
// @Router       /needs/priority/{priority} [get]
// @Security     BearerAuth
func (h *NeedHandler) HandleListNeedsByPriority(ctx *gin.Context) {
	priority := domain.Priority(ctx.Param("priority"))
	if !priority.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid priority %q", priority)))
		return
	}

	needs, err := h.svc.ListByPriority(ctx.Request.Context(), priority)
	if err != nil {
		renderServiceErr(ctx, "HandleListNeedsByPriority", "h.svc.ListByPriority", err)
		return
	}

	response.OK(ctx, needs)
}

// HandleListCollectionPointNeeds godoc
// @Summary      List the needs of a collection point
// @Tags         needs
// @Produce      json
// @Param        id   path      int  true  "Collection point ID"
// @Success      200  {object}  response.Data{data=[]domain.Need}
// @Failure      404  {object}  response.Err
// @Router       /collection-points/{id}/needs [get]
// @Security     BearerAuth
func (h *NeedHandler) HandleListCollectionPointNeeds(ctx *gin.Context) {
	pointID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	needs, err := h.svc.ListByCollectionPoint(ctx.Request.Context(), pointID)
	if err != nil {
		renderServiceErr(ctx, "HandleListCollectionPointNeeds", "h.svc.ListByCollectionPoint", err)
		return
	}

	response.OK(ctx, needs)
}

// HandleGetNeed godoc
// @Summary      Get a need
// @Tags         needs
// @Produce      json
// @Param        id   path      int  true  "Need ID"
// @Success      200  {object}  response.Data{data=domain.Need}
// @Failure      404  {object}  response.Err
// @Router       /needs/{id} [get]
// @Security     BearerAuth
func (h *NeedHandler) HandleGetNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	need, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetNeed", "h.svc.Get", err)
		return
	}

	response.OK(ctx, need)
}

// HandleCreateNeed godoc
// @Summary      Declare a need at a collection point
// @Description  One need per collection point and item type.
// @Tags         needs
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateNeedRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.Need}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /needs [post]
// @Security     BearerAuth
func (h *NeedHandler) HandleCreateNeed(ctx *gin.Context) {
	var req request.CreateNeedRequest
	if !bindJSON(ctx, &req) {
		return
	}

	need, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "HandleCreateNeed", "h.svc.Create", err)
		return
	}

	response.Created(ctx, need)
}

// HandleUpdateNeed godoc
// @Summary      Update a need
// @Tags         needs
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Need ID"
// @Param        request  body      request.UpdateNeedRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Need}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /needs/{id} [put]
// @Security     BearerAuth
func (h *NeedHandler) HandleUpdateNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateNeedRequest
	if !bindJSON(ctx, &req) {
		return
	}

	need, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateNeed", "h.svc.Update", err)
		return
	}

	response.OK(ctx, need)
}

// HandleUpdateReceived godoc
// @Summary      Overwrite the received quantity of a need
// @Tags         needs
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Need ID"
// @Param        request  body      request.UpdateReceivedRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Need}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /needs/{id}/received [patch]
// @Security     BearerAuth
func (h *NeedHandler) HandleUpdateReceived(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateReceivedRequest
	if !bindJSON(ctx, &req) {
		return
	}

	need, err := h.svc.UpdateReceived(ctx.Request.Context(), id, *req.QuantityReceived)
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateReceived", "h.svc.UpdateReceived", err)
		return
	}

	response.OK(ctx, need)
}

// HandleActivateNeed godoc
// @Summary      Activate a need
// @Tags         needs
// @Produce      json
// @Param        id   path      int  true  "Need ID"
// @Success      200  {object}  response.Data{data=domain.Need}
// @Failure      404  {object}  response.Err
// @Router       /needs/{id}/activate [patch]
// @Security     BearerAuth
func (h *NeedHandler) HandleActivateNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	need, err := h.svc.Activate(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleActivateNeed", "h.svc.Activate", err)
		return
	}

	response.OK(ctx, need)
}

// HandleDeactivateNeed godoc
// @Summary      Deactivate a need
// @Tags         needs
// @Produce      json
// @Param        id   path      int  true  "Need ID"
// @Success      200  {object}  response.Data{data=domain.Need}
// @Failure      404  {object}  response.Err
// @Router       /needs/{id}/deactivate [patch]
// @Security     BearerAuth
func (h *NeedHandler) HandleDeactivateNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	need, err := h.svc.Deactivate(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleDeactivateNeed", "h.svc.Deactivate", err)
		return
	}

	response.OK(ctx, need)
}

// HandleDeleteNeed godoc
// @Summary      Delete a need
// @Tags         needs
// @Param        id   path  int  true  "Need ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /needs/{id} [delete]
// @Security     BearerAuth
func (h *NeedHandler) HandleDeleteNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteNeed", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
