package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.GET("/category/:categoryId", h.ListByCategory)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)
	products.GET("/:id/variants", h.ListVariants)
	products.POST("/:id/variants", h.AddVariant)
}

type variantRequest struct {
	ID         string            `json:"id"`
	Name       string            `json:"name" binding:"required"`
	Attributes map[string]string `json:"attributes"`
	Price      *float64          `json:"price" binding:"omitempty,gte=0"`
	SKU        string            `json:"sku" binding:"required"`
	Inventory  *int              `json:"inventory" binding:"omitempty,gte=0"`
}

type createProductRequest struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name" binding:"required,min=3,max=100"`
	Description        string           `json:"description" binding:"required"`
	CategoryID         *string          `json:"categoryId"`
	Price              *float64         `json:"price" binding:"required,gte=0"`
	DiscountPercentage float64          `json:"discountPercentage" binding:"gte=0,lte=100"`
	Images             []string         `json:"images" binding:"omitempty,dive,url"`
	SKU                string           `json:"sku" binding:"required"`
	Variants           []variantRequest `json:"variants" binding:"omitempty,dive"`
	Inventory          *int             `json:"inventory" binding:"omitempty,gte=0"`
}

type updateProductRequest struct {
	Name               *string              `json:"name" binding:"omitempty,min=3,max=100"`
	Description        *string              `json:"description"`
	CategoryID         model.OptionalString `json:"categoryId"`
	Price              *float64             `json:"price" binding:"omitempty,gte=0"`
	DiscountPercentage *float64             `json:"discountPercentage" binding:"omitempty,gte=0,lte=100"`
	Images             *[]string            `json:"images" binding:"omitempty,dive,url"`
	SKU                *string              `json:"sku"`
	Variants           *[]variantRequest    `json:"variants" binding:"omitempty,dive"`
	Inventory          *int                 `json:"inventory" binding:"omitempty,gte=0"`
}

// ProductResponse adds the derived final price to the stored product.
type ProductResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	CategoryID         *string                `json:"categoryId"`
	Price              float64                `json:"price"`
	DiscountPercentage float64                `json:"discountPercentage"`
	FinalPrice         float64                `json:"finalPrice"`
	Images             []string               `json:"images"`
	SKU                string                 `json:"sku"`
	Variants           []model.ProductVariant `json:"variants"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		ID:                 req.ID,
		CategoryID:         req.CategoryID,
		SKU:                req.SKU,
		Name:               req.Name,
		Description:        req.Description,
		Price:              *req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Images:             req.Images,
		Variants:           mapVariantRequests(req.Variants),
		Inventory:          req.Inventory,
	})
	if err != nil {
		h.logger.Warn("failed to create product", zap.Error(err))
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, MapProduct(p))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, MapProduct(p))
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	h.list(c, &dto.ProductFilters{CategoryID: c.Query("category")})
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	h.list(c, &dto.ProductFilters{CategoryID: c.Param("categoryId")})
}

func (h *ProductHandler) list(c *gin.Context, filters *dto.ProductFilters) {
	products, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := MapProducts(products)
	response.List(c, out, len(out))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	input := &dto.UpdateProductInput{
		ID:                 c.Param("id"),
		CategoryID:         req.CategoryID,
		SKU:                req.SKU,
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Images:             req.Images,
		Inventory:          req.Inventory,
	}
	if req.Variants != nil {
		variants := mapVariantRequests(*req.Variants)
		input.Variants = &variants
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		h.logger.Warn("failed to update product", zap.String("product_id", input.ID), zap.Error(err))
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, MapProduct(p))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

func (h *ProductHandler) ListVariants(c *gin.Context) {
	variants, err := h.uc.ListVariants(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, variants, len(variants))
}

func (h *ProductHandler) AddVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	v, err := h.uc.AddVariant(c.Request.Context(), &dto.CreateVariantInput{
		ProductID:    c.Param("id"),
		VariantInput: mapVariantRequest(req),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, v)
}

func MapProduct(p *model.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	variants := p.Variants
	if variants == nil {
		variants = []model.ProductVariant{}
	}
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		CategoryID:         p.CategoryID,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		FinalPrice:         p.FinalPrice(),
		Images:             images,
		SKU:                p.SKU,
		Variants:           variants,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func MapProducts(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = MapProduct(&products[i])
	}
	return out
}

func mapVariantRequest(r variantRequest) dto.VariantInput {
	return dto.VariantInput{
		ID:         r.ID,
		Name:       r.Name,
		Attributes: r.Attributes,
		Price:      r.Price,
		SKU:        r.SKU,
		Inventory:  r.Inventory,
	}
}

func mapVariantRequests(reqs []variantRequest) []dto.VariantInput {
	if reqs == nil {
		return nil
	}
	out := make([]dto.VariantInput, len(reqs))
	for i, r := range reqs {
		out[i] = mapVariantRequest(r)
	}
	return out
}
