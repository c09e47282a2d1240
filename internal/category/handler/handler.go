package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.GET("/hierarchy", h.GetHierarchy)
	categories.GET("/:id", h.GetCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
	categories.GET("/:id/subcategories", h.GetSubcategories)
}

type createCategoryRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" binding:"required,min=3,max=100"`
	Description string  `json:"description"`
	ParentID    *string `json:"parentId"`
}

type updateCategoryRequest struct {
	Name        *string              `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string              `json:"description"`
	ParentID    model.OptionalString `json:"parentId"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		ID:          req.ID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Warn("failed to create category", zap.Error(err))
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, cat)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, cat)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	filters := &dto.CategoryFilters{}
	if parentID, ok := c.GetQuery("parentId"); ok {
		filters.ParentID = &parentID
	}

	cats, err := h.uc.ListCategories(c.Request.Context(), filters)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, nonNil(cats), len(cats))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:          c.Param("id"),
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Warn("failed to update category", zap.String("category_id", c.Param("id")), zap.Error(err))
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

func (h *CategoryHandler) GetHierarchy(c *gin.Context) {
	tree, err := h.uc.GetHierarchy(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, tree)
}

func (h *CategoryHandler) GetSubcategories(c *gin.Context) {
	cats, err := h.uc.GetSubcategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, nonNil(cats), len(cats))
}

func nonNil(cats []model.Category) []model.Category {
	if cats == nil {
		return []model.Category{}
	}
	return cats
}
