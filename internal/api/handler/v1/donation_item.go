package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type DonationItemService interface {
	ListByDonation(ctx context.Context, donationID uint) ([]domain.DonationItem, error)
	Get(ctx context.Context, id uint) (domain.DonationItem, error)
	Create(ctx context.Context, item domain.DonationItem) (domain.DonationItem, error)
	Update(ctx context.Context, id uint, upd service.DonationItemUpdate) (domain.DonationItem, error)
	Delete(ctx context.Context, id uint) error
}

// DonationItemHandler edits the items of pending donations. Delivered or cancelled donations are
// read-only.
type DonationItemHandler struct {
	svc DonationItemService
}

func NewDonationItemHandler(svc DonationItemService) *DonationItemHandler {
	return &DonationItemHandler{
		svc: svc,
	}
}

// HandleListDonationItems godoc
// @Summary      List the items of a donation
// @Tags         donation-items
// @Produce      json
// @Param        id   path      int  true  "Donation ID"
// @Success      200  {object}  response.Data{data=[]domain.DonationItem}
// @Failure      404  {object}  response.Err
// @Router       /donations/{id}/items [get]
// @Security     BearerAuth
func (h *DonationItemHandler) HandleListDonationItems(ctx *gin.Context) {
	donationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	items, err := h.svc.ListByDonation(ctx.Request.Context(), donationID)
	if err != nil {
		renderServiceErr(ctx, "HandleListDonationItems", "h.svc.ListByDonation", err)
		return
	}

	response.OK(ctx, items)
}

// HandleGetDonationItem godoc
// @Summary      Get a donation item
// @Tags         donation-items
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  response.Data{data=domain.DonationItem}
// @Failure      404  {object}  response.Err
// @Router       /donation-items/{id} [get]
// @Security     BearerAuth
func (h *DonationItemHandler) HandleGetDonationItem(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	item, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetDonationItem", "h.svc.Get", err)
		return
	}

	response.OK(ctx, item)
}

// HandleCreateDonationItem godoc
// @Summary      Add an item to a pending donation
// @Tags         donation-items
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateDonationItemRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.DonationItem}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /donation-items [post]
// @Security     BearerAuth
func (h *DonationItemHandler) HandleCreateDonationItem(ctx *gin.Context) {
	var req request.CreateDonationItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	item, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "HandleCreateDonationItem", "h.svc.Create", err)
		return
	}

	response.Created(ctx, item)
}

// HandleUpdateDonationItem godoc
// @Summary      Update an item of a pending donation
// @Tags         donation-items
// @Accept       json
// @Produce      json
// @Param        id       path      int                                true  "Item ID"
// @Param        request  body      request.UpdateDonationItemRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.DonationItem}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /donation-items/{id} [put]
// @Security     BearerAuth
func (h *DonationItemHandler) HandleUpdateDonationItem(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateDonationItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	item, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateDonationItem", "h.svc.Update", err)
		return
	}

	response.OK(ctx, item)
}

// HandleDeleteDonationItem godoc
// @Summary      Remove an item from a pending donation
// @Tags         donation-items
// @Param        id   path  int  true  "Item ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /donation-items/{id} [delete]
// @Security     BearerAuth
func (h *DonationItemHandler) HandleDeleteDonationItem(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteDonationItem", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
