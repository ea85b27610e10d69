package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type CatalogService interface {
	ListCities(ctx context.Context) ([]domain.City, error)
	ListMissionCategories(ctx context.Context) ([]domain.MissionCategory, error)
	ListNewsCategories(ctx context.Context) ([]domain.NewsCategory, error)
	ListItemTypes(ctx context.Context) ([]domain.ItemType, error)
}

// CatalogHandler serves the seeded reference data.
type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleListCities godoc
// @Summary      List cities
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.City}
// @Router       /cities [get]
// @Security     BearerAuth
func (h *CatalogHandler) HandleListCities(ctx *gin.Context) {
	cities, err := h.svc.ListCities(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListCities", "h.svc.ListCities", err)
		return
	}

	response.OK(ctx, cities)
}

// HandleListMissionCategories godoc
// @Summary      List mission categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.MissionCategory}
// @Router       /mission-categories [get]
// @Security     BearerAuth
func (h *CatalogHandler) HandleListMissionCategories(ctx *gin.Context) {
	categories, err := h.svc.ListMissionCategories(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListMissionCategories", "h.svc.ListMissionCategories", err)
		return
	}

	response.OK(ctx, categories)
}

// HandleListNewsCategories godoc
// @Summary      List news categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.NewsCategory}
// @Router       /news-categories [get]
// @Security     BearerAuth
func (h *CatalogHandler) HandleListNewsCategories(ctx *gin.Context) {
	categories, err := h.svc.ListNewsCategories(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListNewsCategories", "h.svc.ListNewsCategories", err)
		return
	}

	response.OK(ctx, categories)
}

// HandleListItemTypes godoc
// @Summary      List donation item types
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Data{data=[]domain.ItemType}
// @Router       /item-types [get]
// @Security     BearerAuth
func (h *CatalogHandler) HandleListItemTypes(ctx *gin.Context) {
	types, err := h.svc.ListItemTypes(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListItemTypes", "h.svc.ListItemTypes", err)
		return
	}

	response.OK(ctx, types)
}
