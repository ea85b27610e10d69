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

type DonationService interface {
	List(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error)
	ListByPerson(ctx context.Context, personID uint) ([]domain.Donation, error)
	ListByCollectionPoint(ctx context.Context, pointID uint) ([]domain.Donation, error)
	ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error)
	Get(ctx context.Context, id uint) (domain.Donation, error)
	Create(ctx context.Context, donation domain.Donation, items []domain.DonationItem) (domain.Donation, error)
	Update(ctx context.Context, id uint, upd service.DonationUpdate) (domain.Donation, error)
	RegisterDelivery(ctx context.Context, id uint) (domain.Donation, error)
	Cancel(ctx context.Context, id uint) (domain.Donation, error)
	Delete(ctx context.Context, id uint) error
}

type DonationHandler struct {
	svc DonationService
}

func NewDonationHandler(svc DonationService) *DonationHandler {
	return &DonationHandler{
		svc: svc,
	}
}

// HandleListDonations godoc
// @Summary      List donations
// @Tags         donations
// @Produce      json
// @Param        person_id            query     int     false  "Filter by donor"
// @Param        collection_point_id  query     int     false  "Filter by collection point"
// @Param        status               query     string  false  "pending, delivered or cancelled"
// @Success      200                  {object}  response.Data{data=[]domain.Donation}
// @Failure      400                  {object}  response.Err
// @Router       /donations [get]
// @Security     BearerAuth
func (h *DonationHandler) HandleListDonations(ctx *gin.Context) {
	personID, err := queryUint(ctx, "person_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	pointID, err := queryUint(ctx, "collection_point_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	status, err := queryEnum(ctx, "status", domain.DonationStatus.Valid)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.DonationFilter{PersonID: personID, CollectionPointID: pointID, Status: status}
	donations, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		renderServiceErr(ctx, "HandleListDonations", "h.svc.List", err)
		return
	}

	response.OK(ctx, donations)
}

// HandleListDonationsByStatus godoc
// @Summary      List donations in a status
// @Tags         donations
// @Produce      json
// @Param        status  path      string  true  "pending, delivered or cancelled"
// @Success      200     {object}  response.Data{data=[]domain.Donation}
// @Failure      400     {object}  response.Err
// @Router       /donations/status/{status} [get]
// @Security     BearerAuth
func (h *DonationHandler) HandleListDonationsByStatus(ctx *gin.Context) {
	status := domain.DonationStatus(ctx.Param("status"))
	if !status.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid status %q", status)))
		return
	}

	donations, err := h.svc.ListByStatus(ctx.Request.Context(), status)
	if err != nil {
		renderServiceErr(ctx, "HandleListDonationsByStatus", "h.svc.ListByStatus", err)
		return
	}

	response.OK(ctx, donations)
}

// HandleListPersonDonations godoc
// @Summary      List the donations of a person
// @Tags         donations
// @Produce      json
// @Param        id   path      int  true  "Person ID"
// @Success      200  {object}  response.Data{data=[]domain.Donation}
// @Failure      404  {object}  response.Err
// @Router       /people/{id}/donations [get]
// @Security     BearerAuth
func (h *DonationHandler) HandleListPersonDonations(ctx *gin.Context) {
	personID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	donations, err := h.svc.ListByPerson(ctx.Request.Context(), personID)
	if err != nil {
		renderServiceErr(ctx, "HandleListPersonDonations", "h.svc.ListByPerson", err)
		return
	}

	response.OK(ctx, donations)
}

// HandleListCollectionPointDonations godoc
// @Summary      List the donations addressed to a collection point
// @Tags         donations
// @Produce      json
// @Param        id   path      int  true  "Collection point ID"
// @Success      200  {object}  response.Data{data=[]domain.Donation}
// @Failure      404  {object}  response.Err
// @Router       /collection-points/{id}/donations [get]
// @Security     BearerAuth
func (h *DonationHandler) HandleListCollectionPointDonations(ctx *gin.Context) {
	pointID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	donations, err := h.svc.ListByCollectionPoint(ctx.Request.Context(), pointID)
	if err != nil {
		renderServiceErr(ctx, "HandleListCollectionPointDonations", "h.svc.ListByCollectionPoint", err)
		return
	}

	response.OK(ctx, donations)
}

// HandleGetDonation godoc
// @Summary      Get a donation with its items
// @Tags         donations
// @Produce      json
// @Param        id   path      int  true  "Donation ID"
// @Success      200  {object}  response.Data{data=domain.Donation}
// @Failure      404  {object}  response.Err
// @Router       /donations/{id} [get]
// @Security     BearerAuth
func (h *DonationHandler) HandleGetDonation(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	donation, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetDonation", "h.svc.Get", err)
		return
	}

	response.OK(ctx, donation)
}

// HandleCreateDonation godoc
// @Summary      Register a donation with its items
// @Description  The donation and all items are stored together or not at all.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateDonationRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.Donation}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /donations [post]
// @Security     BearerAuth
func (h *DonationHandler) HandleCreateDonation(ctx *gin.Context) {
	var req request.CreateDonationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	donation, items := req.ToDomain()
	created, err := h.svc.Create(ctx.Request.Context(), donation, items)
	if err != nil {
		renderServiceErr(ctx, "HandleCreateDonation", "h.svc.Create", err)
		return
	}

	response.Created(ctx, created)
}

// HandleUpdateDonation godoc
// @Summary      Update a pending donation
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Donation ID"
// @Param        request  body      request.UpdateDonationRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Donation}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /donations/{id} [put]
// @Security     BearerAuth
func (h *DonationHandler) HandleUpdateDonation(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateDonationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	donation, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateDonation", "h.svc.Update", err)
		return
	}

	response.OK(ctx, donation)
}

// HandleDeliverDonation godoc
// @Summary      Register the delivery of a pending donation
// @Description  Credits the matching active needs of the collection point, capped at what is still missing.
// @Tags         donations
// @Produce      json
// @Param        id   path      int  true  "Donation ID"
// @Success      200  {object}  response.Data{data=domain.Donation}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /donations/{id}/deliver [patch]
// @Security     BearerAuth
func (h *DonationHandler) HandleDeliverDonation(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	donation, err := h.svc.RegisterDelivery(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleDeliverDonation", "h.svc.RegisterDelivery", err)
		return
	}

	response.OK(ctx, donation)
}

// HandleCancelDonation godoc
// @Summary      Cancel a pending donation
// @Tags         donations
// @Produce      json
// @Param        id   path      int  true  "Donation ID"
// @Success      200  {object}  response.Data{data=domain.Donation}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /donations/{id}/cancel [patch]
// @Security     BearerAuth
func (h *DonationHandler) HandleCancelDonation(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	donation, err := h.svc.Cancel(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleCancelDonation", "h.svc.Cancel", err)
		return
	}

	response.OK(ctx, donation)
}

// HandleDeleteDonation godoc
// @Summary      Delete a donation that was never delivered
// @Tags         donations
// @Param        id   path  int  true  "Donation ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /donations/{id} [delete]
// @Security     BearerAuth
func (h *DonationHandler) HandleDeleteDonation(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteDonation", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
