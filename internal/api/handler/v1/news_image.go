package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

type NewsImageService interface {
	ListByNews(ctx context.Context, newsID uint) ([]domain.NewsImage, error)
	Get(ctx context.Context, id uint) (domain.NewsImage, error)
	GetPrimary(ctx context.Context, newsID uint) (domain.NewsImage, error)
	Create(ctx context.Context, image domain.NewsImage, position *int) (domain.NewsImage, error)
	Update(ctx context.Context, id uint, upd service.NewsImageUpdate) (domain.NewsImage, error)
	SetPrimary(ctx context.Context, id uint) (domain.NewsImage, error)
	Reorder(ctx context.Context, newsID uint, positions map[uint]int) ([]domain.NewsImage, error)
	Delete(ctx context.Context, id uint) error
}

type NewsImageHandler struct {
	svc NewsImageService
}

func NewNewsImageHandler(svc NewsImageService) *NewsImageHandler {
	return &NewsImageHandler{
		svc: svc,
	}
}

// HandleListNewsImages godoc
// @Summary      List the images of a news item in display order
// @Tags         news-images
// @Produce      json
// @Param        id   path      int  true  "News ID"
// @Success      200  {object}  response.Data{data=[]domain.NewsImage}
// @Failure      404  {object}  response.Err
// @Router       /news/{id}/images [get]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleListNewsImages(ctx *gin.Context) {
	newsID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	images, err := h.svc.ListByNews(ctx.Request.Context(), newsID)
	if err != nil {
		renderServiceErr(ctx, "HandleListNewsImages", "h.svc.ListByNews", err)
		return
	}

	response.OK(ctx, images)
}

// HandleGetPrimaryNewsImage godoc
// @Summary      Get the primary image of a news item
// @Tags         news-images
// @Produce      json
// @Param        id   path      int  true  "News ID"
// @Success      200  {object}  response.Data{data=domain.NewsImage}
// @Failure      404  {object}  response.Err
// @Router       /news/{id}/images/primary [get]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleGetPrimaryNewsImage(ctx *gin.Context) {
	newsID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	image, err := h.svc.GetPrimary(ctx.Request.Context(), newsID)
	if err != nil {
		renderServiceErr(ctx, "HandleGetPrimaryNewsImage", "h.svc.GetPrimary", err)
		return
	}

	response.OK(ctx, image)
}

// HandleReorderNewsImages godoc
// @Summary      Reorder the images of a news item
// @Tags         news-images
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "News ID"
// @Param        request  body      request.ReorderImagesRequest  true  "image ID to position"
// @Success      200      {object}  response.Data{data=[]domain.NewsImage}
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /news/{id}/images/reorder [post]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleReorderNewsImages(ctx *gin.Context) {
	newsID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.ReorderImagesRequest
	if !bindJSON(ctx, &req) {
		return
	}

	images, err := h.svc.Reorder(ctx.Request.Context(), newsID, req.Positions)
	if err != nil {
		renderServiceErr(ctx, "HandleReorderNewsImages", "h.svc.Reorder", err)
		return
	}

	response.OK(ctx, images)
}

// HandleGetNewsImage godoc
// @Summary      Get a news image
// @Tags         news-images
// @Produce      json
// @Param        id   path      int  true  "Image ID"
// @Success      200  {object}  response.Data{data=domain.NewsImage}
// @Failure      404  {object}  response.Err
// @Router       /news-images/{id} [get]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleGetNewsImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	image, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleGetNewsImage", "h.svc.Get", err)
		return
	}

	response.OK(ctx, image)
}

// HandleCreateNewsImage godoc
// @Summary      Attach an image to a news item
// @Description  Without a position the image is appended after the last one.
// @Tags         news-images
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateNewsImageRequest  true  "request body"
// @Success      201      {object}  response.Data{data=domain.NewsImage}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /news-images [post]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleCreateNewsImage(ctx *gin.Context) {
	var req request.CreateNewsImageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	image, err := h.svc.Create(ctx.Request.Context(), req.ToDomain(), req.Position)
	if err != nil {
		renderServiceErr(ctx, "HandleCreateNewsImage", "h.svc.Create", err)
		return
	}

	response.Created(ctx, image)
}

// HandleUpdateNewsImage godoc
// @Summary      Update a news image
// @Tags         news-images
// @Accept       json
// @Produce      json
// @Param        id       path      int                             true  "Image ID"
// @Param        request  body      request.UpdateNewsImageRequest  true  "request body"
// @Success      200      {object}  response.Data{data=domain.NewsImage}
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /news-images/{id} [put]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleUpdateNewsImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateNewsImageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	image, err := h.svc.Update(ctx.Request.Context(), id, req.ToUpdate())
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateNewsImage", "h.svc.Update", err)
		return
	}

	response.OK(ctx, image)
}

// HandleSetPrimaryNewsImage godoc
// @Summary      Make an image the primary one of its news item
// @Tags         news-images
// @Produce      json
// @Param        id   path      int  true  "Image ID"
// @Success      200  {object}  response.Data{data=domain.NewsImage}
// @Failure      404  {object}  response.Err
// @Router       /news-images/{id}/primary [patch]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleSetPrimaryNewsImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	image, err := h.svc.SetPrimary(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "HandleSetPrimaryNewsImage", "h.svc.SetPrimary", err)
		return
	}

	response.OK(ctx, image)
}

// HandleDeleteNewsImage godoc
// @Summary      Delete a news image
// @Tags         news-images
// @Param        id   path  int  true  "Image ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /news-images/{id} [delete]
// @Security     BearerAuth
func (h *NewsImageHandler) HandleDeleteNewsImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "HandleDeleteNewsImage", "h.svc.Delete", err)
		return
	}

	response.NoContent(ctx)
}
