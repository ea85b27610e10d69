package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type NewsService interface {
	List(ctx context.Context, filter domain.NewsFilter) ([]domain.News, error)
	ListPublished(ctx context.Context) ([]domain.News, error)
	ListHighlighted(ctx context.Context) ([]domain.News, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]domain.News, error)
	Get(ctx context.Context, id uint) (domain.News, error)
	Create(ctx context.Context, news domain.News, adminID uint) (domain.News, error)
	Update(ctx context.Context, id uint, upd service.NewsUpdate) (domain.News, error)
	Publish(ctx context.Context, id uint) (domain.News, error)
	SetHighlight(ctx context.Context, id uint, highlighted bool) (domain.News, error)
	IncrementViews(ctx context.Context, id uint) (domain.News, error)
	Delete(ctx context.Context, id uint) error
}

type NewsHandler struct {
	svc NewsService
}

func NewNewsHandler(svc NewsService) *NewsHandler {
	return &NewsHandler{
		svc: svc,
	}
}

// HandleListNews godoc
// @Summary      List news
// @Tags         news
// @Produce      json
// @Param        status       query     string  false  "draft or published"
// @Param        category_id  query     int     false  "Filter by category"
// @Param        highlighted  query     bool    false  "Filter by highlight flag"
// @Success      200          {object}  response.Data{data=[]domain.News}
// @Failure      400          {object}  response.Err
// @Router       /news [get]
// @Security     BearerAuth
func (h *NewsHandler) HandleListNews(ctx *gin.Context) {
	status, err := queryEnum(ctx, "status", domain.NewsStatus.Valid)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	categoryID, err := queryUint(ctx, "category_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	highlighted, err := queryBool(ctx, "highlighted")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.NewsFilter{Status: status, CategoryID: categoryID, Highlighted: highlighted}
	news, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		renderServiceErr(ctx, "HandleListNews", "h.svc.List", err)
		return
	}

	response.OK(ctx, news)
}

// HandleListPublishedNews godoc
// @Summary      List published news, newest first
// @Tags         news
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.News}
// @Router       /news/published [get]
// @Security     BearerAuth
func (h *NewsHandler) HandleListPublishedNews(ctx *gin.Context) {
	news, err := h.svc.ListPublished(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListPublishedNews", "h.svc.ListPublished", err)
		return
	}

	response.OK(ctx, news)
}

// HandleListHighlightedNews godoc
// @Summary      List highlighted published news
// @Tags         news
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.News}
// @Router       /news/highlighted [get]
// @Security     BearerAuth
func (h *NewsHandler) HandleListHighlightedNews(ctx *gin.Context) {
	news, err := h.svc.ListHighlighted(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListHighlightedNews", "h.svc.ListHighlighted", err)
		return
	}

	response.OK(ctx, news)
}

// HandleListNewsByCategory godoc
// @Summary      List news of a category
// @Tags         news
// @Produce      json
// @Param        id   path      int  true  "News category ID"
// @Success      200  {object}  response.Data{data=[]domain.News}
// @Failure      404  {object}  response.Err
// @Router       /news/category/{id} [get]
// @Security     BearerAuth
func (h *NewsHandler) HandleListNewsByCategory(ctx *gin.Context) {
	categoryID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	news, err := h.svc.ListByCategory(ctx.Request.Context(), categoryID)
	if err != nil {
		renderServiceErr(ctx, "HandleListNewsByCategory", "h.svc.ListByCategory", err)
		return
	}

	response.OK(ctx, news)
}

// HandleGetNews godoc
// @Summary      Get a news item
// @Tags         news
// @Produce      json
// @Param        id   path      int  true  "News ID"
// @Success      200  {object}  response.Data{data=domain.News}
// @Failure      404  {object}  response.Err
// @Router       /news/{id} [get]
// @Security     BearerAuth
func (h *NewsHandler) HandleGetNews(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	news, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetNews", "h.svc.Get", err)
		return
	}

	response.OK(ctx, news)
}

// HandleCreateNews godoc
// @Summary      Create a news item
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateNewsRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.News}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /news [post]
// @Security     BearerAuth
func (h *NewsHandler) HandleCreateNews(ctx *gin.Context) {
	var req request.CreateNewsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	news, err := h.svc.Create(ctx.Request.Context(), req.ToDomain(), req.AdminID)
	if err != nil {
		renderServiceErr(ctx, "HandleCreateNews", "h.svc.Create", err)
		return
	}

	response.Created(ctx, news)
}

// HandleUpdateNews godoc
// @Summary      Update a news item
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "News ID"
// @Param        request  body      request.UpdateNewsRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.News}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /news/{id} [put]
// @Security     BearerAuth
func (h *NewsHandler) HandleUpdateNews(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateNewsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	news, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateNews", "h.svc.Update", err)
		return
	}

	response.OK(ctx, news)
}

// HandlePublishNews godoc
// @Summary      Publish a news item
// @Description  Sets published_at on the first publication only.
// @Tags         news
// @Produce      json
// @Param        id   path      int  true  "News ID"
// @Success      200  {object}  response.Data{data=domain.News}
// @Failure      404  {object}  response.Err
// @Router       /news/{id}/publish [patch]
// @Security     BearerAuth
func (h *NewsHandler) HandlePublishNews(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	news, err := h.svc.Publish(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandlePublishNews", "h.svc.Publish", err)
		return
	}

	response.OK(ctx, news)
}

// HandleHighlightNews godoc
// @Summary      Set or clear the highlight flag
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "News ID"
// @Param        request  body      request.HighlightRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.News}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /news/{id}/highlight [patch]
// @Security     BearerAuth
func (h *NewsHandler) HandleHighlightNews(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.HighlightRequest
	if !bindJSON(ctx, &req) {
		return
	}

	news, err := h.svc.SetHighlight(ctx.Request.Context(), id, *req.Highlighted)
	if err != nil {
		renderServiceErr(ctx, "HandleHighlightNews", "h.svc.SetHighlight", err)
		return
	}

	response.OK(ctx, news)
}

// HandleIncrementNewsViews godoc
// @Summary      Count one view of a news item
// @Tags         news
// @Produce      json
// @Param        id   path      int  true  "News ID"
// @Success      200  {object}  response.Data{data=domain.News}
// @Failure      404  {object}  response.Err
// @Router       /news/{id}/views [patch]
// @Security     BearerAuth
func (h *NewsHandler) HandleIncrementNewsViews(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	news, err := h.svc.IncrementViews(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleIncrementNewsViews", "h.svc.IncrementViews", err)
		return
	}

	response.OK(ctx, news)
}

// HandleDeleteNews godoc
// @Summary      Delete a news item and its images
// @Tags         news
// @Param        id   path  int  true  "News ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /news/{id} [delete]
// @Security     BearerAuth
func (h *NewsHandler) HandleDeleteNews(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteNews", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
