package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/report"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/low-stock", h.LowStock)
	reports.GET("/inventory-summary", h.InventorySummary)
	reports.GET("/category-distribution", h.CategoryDistribution)
}

func (h *ReportHandler) LowStock(c *gin.Context) {
	entries, err := h.uc.LowStockReport(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, entries, len(entries))
}

func (h *ReportHandler) InventorySummary(c *gin.Context) {
	summary, err := h.uc.InventorySummary(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, summary)
}

func (h *ReportHandler) CategoryDistribution(c *gin.Context) {
	shares, err := h.uc.CategoryDistribution(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, shares, len(shares))
}
