package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type PersonService interface {
	List(ctx context.Context, filter domain.PersonFilter) ([]domain.Person, error)
	ListActive(ctx context.Context) ([]domain.Person, error)
	Get(ctx context.Context, id uint) (domain.Person, error)
	Create(ctx context.Context, person domain.Person) (domain.Person, error)
	Update(ctx context.Context, id uint, upd service.PersonUpdate) (domain.Person, error)
	Activate(ctx context.Context, id uint) (domain.Person, error)
	Deactivate(ctx context.Context, id uint) (domain.Person, error)
	Delete(ctx context.Context, id uint) error
}

type PersonHandler struct {
	svc PersonService
}

func NewPersonHandler(svc PersonService) *PersonHandler {
	return &PersonHandler{
		svc: svc,
	}
}

// HandleListPeople godoc
// @Summary      List people
// @Tags         people
// @Produce      json
// @Param        active      query     bool  false  "Filter by active flag"
// @Param        profile_id  query     int   false  "Filter by profile"
// @Success      200         {object}  response.Data{data=[]domain.Person}
// @Failure      400         {object}  response.Err
// @Router       /people [get]
// @Security     BearerAuth
func (h *PersonHandler) HandleListPeople(ctx *gin.Context) {
	active, err := queryBool(ctx, "active")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	profileID, err := queryUint(ctx, "profile_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	people, err := h.svc.List(ctx.Request.Context(), domain.PersonFilter{Active: active, ProfileID: profileID})
	if err != nil {
		renderServiceErr(ctx, "HandleListPeople", "h.svc.List", err)
		return
	}

	response.OK(ctx, people)
}

// HandleListActivePeople godoc
// @Summary      List active people
// @Tags         people
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.Person}
// @Router       /people/active [get]
// @Security     BearerAuth
func (h *PersonHandler) HandleListActivePeople(ctx *gin.Context) {
	people, err := h.svc.ListActive(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListActivePeople", "h.svc.ListActive", err)
		return
	}

	response.OK(ctx, people)
}

// HandleGetPerson godoc
// @Summary      Get a person
// @Tags         people
// @Produce      json
// @Param        id   path      int  true  "Person ID"
// @Success      200  {object}  response.Data{data=domain.Person}
// @Failure      404  {object}  response.Err
// @Router       /people/{id} [get]
// @Security     BearerAuth
func (h *PersonHandler) HandleGetPerson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	person, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetPerson", "h.svc.Get", err)
		return
	}

	response.OK(ctx, person)
}

// HandleCreatePerson godoc
// @Summary      Register a person
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePersonRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.Person}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /people [post]
// @Security     BearerAuth
func (h *PersonHandler) HandleCreatePerson(ctx *gin.Context) {
	var req request.CreatePersonRequest
	if !bindJSON(ctx, &req) {
		return
	}

	person, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "HandleCreatePerson", "h.svc.Create", err)
		return
	}

	response.Created(ctx, person)
}

// HandleUpdatePerson godoc
// @Summary      Update a person
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Person ID"
// @Param        request  body      request.UpdatePersonRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.Person}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /people/{id} [put]
// @Security     BearerAuth
func (h *PersonHandler) HandleUpdatePerson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdatePersonRequest
	if !bindJSON(ctx, &req) {
		return
	}

	person, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdatePerson", "h.svc.Update", err)
		return
	}

	response.OK(ctx, person)
}

// HandleActivatePerson godoc
// @Summary      Activate a person
// @Tags         people
// @Produce      json
// @Param        id   path      int  true  "Person ID"
// @Success      200  {object}  response.Data{data=domain.Person}
// @Failure      404  {object}  response.Err
// @Router       /people/{id}/activate [patch]
// @Security     BearerAuth
func (h *PersonHandler) HandleActivatePerson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	person, err := h.svc.Activate(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleActivatePerson", "h.svc.Activate", err)
		return
	}

	response.OK(ctx, person)
}

// HandleDeactivatePerson godoc
// @Summary      Deactivate a person
// @Tags         people
// @Produce      json
// @Param        id   path      int  true  "Person ID"
// @Success      200  {object}  response.Data{data=domain.Person}
// @Failure      404  {object}  response.Err
// @Router       /people/{id}/deactivate [patch]
// @Security     BearerAuth
func (h *PersonHandler) HandleDeactivatePerson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	person, err := h.svc.Deactivate(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleDeactivatePerson", "h.svc.Deactivate", err)
		return
	}

	response.OK(ctx, person)
}

// HandleDeletePerson godoc
// @Summary      Delete a person without donations, missions, news or collection points
// @Tags         people
// @Param        id   path  int  true  "Person ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /people/{id} [delete]
// @Security     BearerAuth
func (h *PersonHandler) HandleDeletePerson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeletePerson", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
