package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type AddressService interface {
	ListByPerson(ctx context.Context, personID uint) ([]domain.Address, error)
	Get(ctx context.Context, id uint) (domain.Address, error)
	GetPrimary(ctx context.Context, personID uint) (domain.Address, error)
	Create(ctx context.Context, address domain.Address) (domain.Address, error)
	Update(ctx context.Context, id uint, upd service.AddressUpdate) (domain.Address, error)
	SetPrimary(ctx context.Context, id uint) (domain.Address, error)
	Delete(ctx context.Context, id uint) error
}

type AddressHandler struct {
	svc AddressService
}

func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{
		svc: svc,
	}
}

// HandleListPersonAddresses godoc
// @Summary      List the addresses of a person
// @Tags         addresses
// @Produce      json
// @Param        id   path      int  true  "Person ID"
// @Success      200  {object}  response.Data{data=[]domain.Address}
// @Failure      404  {object}  response.Err
// @Router       /people/{id}/addresses [get]
// @Security     BearerAuth
func (h *AddressHandler) HandleListPersonAddresses(ctx *gin.Context) {
	personID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	addresses, err := h.svc.ListByPerson(ctx.Request.Context(), personID)
	if err != nil {
		renderServiceErr(ctx, "HandleListPersonAddresses", "h.svc.ListByPerson", err)
		return
	}

	response.OK(ctx, addresses)
}

// HandleGetPrimaryAddress godoc
// @Summary      Get the primary address of a person
// @Tags         addresses
// @Produce      json
// @Param        id   path      int  true  "Person ID"
// @Success      200  {object}  response.Data{data=domain.Address}
// @Failure      404  {object}  response.Err
// @Router       /people/{id}/addresses/primary [get]
// @Security     BearerAuth
func (h *AddressHandler) HandleGetPrimaryAddress(ctx *gin.Context) {
	personID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	address, err := h.svc.GetPrimary(ctx.Request.Context(), personID)
	if err != nil {
		renderServiceErr(ctx, "HandleGetPrimaryAddress", "h.svc.GetPrimary", err)
		return
	}

	response.OK(ctx, address)
}

// HandleGetAddress godoc
// @Summary      Get an address
// @Tags         addresses
// @Produce      json
// @Param        id   path      int  true  "Address ID"
// @Success      200  {object}  response.Data{data=domain.Address}
// @Failure      404  {object}  response.Err
// @Router       /addresses/{id} [get]
// @Security     BearerAuth
func (h *AddressHandler) HandleGetAddress(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	address, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetAddress", "h.svc.Get", err)
		return
	}

	response.OK(ctx, address)
}

// HandleCreateAddress godoc
// @Summary      Add an address to a person
// @Description  A new primary address demotes the previous one.
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateAddressRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.Address}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /addresses [post]
// @Security     BearerAuth
func (h *AddressHandler) HandleCreateAddress(ctx *gin.Context) {
	var req request.CreateAddressRequest
	if !bindJSON(ctx, &req) {
		return
	}

	address, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "HandleCreateAddress", "h.svc.Create", err)
		return
	}

	response.Created(ctx, address)
}

// HandleUpdateAddress godoc
// @Summary      Update an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Address ID"
// @Param        request  body      request.UpdateAddressRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Address}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /addresses/{id} [put]
// @Security     BearerAuth
func (h *AddressHandler) HandleUpdateAddress(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateAddressRequest
	if !bindJSON(ctx, &req) {
		return
	}

	address, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateAddress", "h.svc.Update", err)
		return
	}

	response.OK(ctx, address)
}

// HandleSetPrimaryAddress godoc
// @Summary      Make an address the primary one of its person
// @Tags         addresses
// @Produce      json
// @Param        id   path      int  true  "Address ID"
// @Success      200  {object}  response.Data{data=domain.Address}
// @Failure      404  {object}  response.Err
// @Router       /addresses/{id}/primary [patch]
// @Security     BearerAuth
func (h *AddressHandler) HandleSetPrimaryAddress(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	address, err := h.svc.SetPrimary(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleSetPrimaryAddress", "h.svc.SetPrimary", err)
		return
	}

	response.OK(ctx, address)
}

// HandleDeleteAddress godoc
// @Summary      Delete an address
// @Tags         addresses
// @Param        id   path  int  true  "Address ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /addresses/{id} [delete]
// @Security     BearerAuth
func (h *AddressHandler) HandleDeleteAddress(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteAddress", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
