package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	inv.GET("", h.ListInventory)
	inv.PUT("", h.UpsertInventory)
	inv.GET("/movements", h.ListMovements)
	inv.GET("/:productId", h.GetProductInventory)
	inv.POST("/reserve", h.ReserveStock)
	inv.POST("/release", h.ReleaseStock)
	inv.POST("/commit", h.CommitStock)
}

type upsertInventoryRequest struct {
	ProductID         string  `json:"productId" binding:"required"`
	VariantID         *string `json:"variantId"`
	Quantity          *int    `json:"quantity" binding:"required,gte=0"`
	ReservedQuantity  *int    `json:"reservedQuantity" binding:"omitempty,gte=0"`
	LowStockThreshold *int    `json:"lowStockThreshold" binding:"omitempty,gte=0"`
}

type stockRequest struct {
	ProductID   string  `json:"productId" binding:"required"`
	VariantID   *string `json:"variantId"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	ReferenceID string  `json:"referenceId"`
	Reason      string  `json:"reason"`
}

// InventoryEntry is the wire form of a record, with derived fields spelled out.
type InventoryEntry struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"productId"`
	VariantID         *string   `json:"variantId"`
	Quantity          int       `json:"quantity"`
	ReservedQuantity  int       `json:"reservedQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	InStock           bool      `json:"inStock"`
	IsLowStock        bool      `json:"isLowStock"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	lowStock, _ := strconv.ParseBool(c.Query("lowStock"))
	items, err := h.uc.ListInventory(c.Request.Context(), &dto.InventoryFilters{
		ProductID: c.Query("productId"),
		LowStock:  lowStock,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	entries := make([]InventoryEntry, len(items))
	for i := range items {
		entries[i] = mapInventory(&items[i])
	}
	response.List(c, entries, len(entries))
}

func (h *InventoryHandler) GetProductInventory(c *gin.Context) {
	var variantID *string
	if v := c.Query("variantId"); v != "" {
		variantID = &v
	}

	inv, err := h.uc.GetInventory(c.Request.Context(), c.Param("productId"), variantID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, mapInventory(inv))
}

func (h *InventoryHandler) UpsertInventory(c *gin.Context) {
	var req upsertInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	inv, err := h.uc.UpsertInventory(c.Request.Context(), &dto.UpsertInventoryInput{
		ProductID:         req.ProductID,
		VariantID:         emptyToNil(req.VariantID),
		Quantity:          *req.Quantity,
		ReservedQuantity:  req.ReservedQuantity,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, mapInventory(inv))
}

func (h *InventoryHandler) ReserveStock(c *gin.Context) {
	h.stockOperation(c, "reserve", h.uc.ReserveStock)
}

func (h *InventoryHandler) ReleaseStock(c *gin.Context) {
	h.stockOperation(c, "release", h.uc.ReleaseStock)
}

func (h *InventoryHandler) CommitStock(c *gin.Context) {
	h.stockOperation(c, "commit", h.uc.CommitStock)
}

type stockFunc func(ctx context.Context, input *dto.StockInput) (*model.Inventory, error)

func (h *InventoryHandler) stockOperation(c *gin.Context, op string, fn stockFunc) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	inv, err := fn(c.Request.Context(), &dto.StockInput{
		ProductID:   req.ProductID,
		VariantID:   emptyToNil(req.VariantID),
		Quantity:    req.Quantity,
		ReferenceID: req.ReferenceID,
		Reason:      req.Reason,
	})
	if err != nil {
		h.logger.Info("stock operation rejected",
			zap.String("operation", op),
			zap.String("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err),
		)
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, mapInventory(inv))
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	moves, err := h.uc.ListMovements(c.Request.Context(), &dto.MovementFilters{
		ProductID:    c.Query("productId"),
		MovementType: c.Query("type"),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	if moves == nil {
		moves = []model.InventoryMovement{}
	}
	response.List(c, moves, len(moves))
}

func mapInventory(m *model.Inventory) InventoryEntry {
	return InventoryEntry{
		ID:                m.ID,
		ProductID:         m.ProductID,
		VariantID:         m.VariantID,
		Quantity:          m.Quantity,
		ReservedQuantity:  m.ReservedQuantity,
		AvailableQuantity: m.AvailableQuantity(),
		LowStockThreshold: m.LowStockThreshold,
		InStock:           m.InStock(),
		IsLowStock:        m.IsLowStock(),
		LastUpdated:       m.LastUpdated,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
