package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	productHandler "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/internal/search"
	"github.com/fekuna/omnipos-catalog-service/internal/search/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/search/usecase"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	uc     search.UseCase
	logger logger.ZapLogger
}

func NewSearchHandler(uc search.UseCase, log logger.ZapLogger) *SearchHandler {
	return &SearchHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	s := rg.Group("/search")
	s.GET("", h.Search)
	s.GET("/filter", h.Filter)
}

type filterRequest struct {
	Category   string   `form:"category"`
	MinPrice   *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice   *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Discount   bool     `form:"discount"`
	Attributes string   `form:"attributes"`
	Sort       string   `form:"sort"`
	Page       int      `form:"page"`
	Limit      int      `form:"limit" binding:"omitempty,gte=0"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	products, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := productHandler.MapProducts(products)
	response.List(c, out, len(out))
}

func (h *SearchHandler) Filter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	attrs, err := usecase.ParseAttributes(req.Attributes)
	if err != nil {
		h.logger.Debug("rejected attributes filter", zap.String("attributes", req.Attributes), zap.Error(err))
		response.Fail(c, err)
		return
	}

	result, err := h.uc.Query(c.Request.Context(), &dto.Query{
		Criteria: dto.FilterCriteria{
			Category:   req.Category,
			MinPrice:   req.MinPrice,
			MaxPrice:   req.MaxPrice,
			Discount:   req.Discount,
			Attributes: attrs,
		},
		Sort:  req.Sort,
		Page:  req.Page,
		Limit: req.Limit,
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			h.logger.Error("filter query failed", zap.Error(err))
		}
		response.Fail(c, err)
		return
	}

	response.Page(c, productHandler.MapProducts(result.Items), result.Pagination.Total, result.Pagination)
}
