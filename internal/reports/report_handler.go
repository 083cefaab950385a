package reports

import (
	"net/http"
	"time"

	"stockflow/pkg/metadata"
	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

// unitValueEstimate is the flat per-unit valuation used by the dashboard.
const unitValueEstimate = 150

type ReportStore interface {
	TotalUnits() (int, error)
	CountItemsByStatus(status metadata.ItemStatus) (int, error)
	CountOutboundMovementsSince(since time.Time) (int, error)
	UnitsPerCategory() ([]CategoryUnits, error)
}

type SummaryReport struct {
	TotalUnits         int             `json:"total_units"`
	LowStockItems      int             `json:"low_stock_items"`
	EstimatedValue     int             `json:"estimated_value"`
	RecentOutMovements int             `json:"recent_out_movements"`
	UnitsPerCategory   []CategoryUnits `json:"units_per_category"`
}

type ReportHandler struct {
	Repository ReportStore
}

func NewReportHandler(r ReportStore) *ReportHandler {
	return &ReportHandler{Repository: r}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports/summary", security.Authorize("viewer"), h.GetSummary)
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	totalUnits, err := h.Repository.TotalUnits()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	lowStock, err := h.Repository.CountItemsByStatus(metadata.StatusLow)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	recentOut, err := h.Repository.CountOutboundMovementsSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	perCategory, err := h.Repository.UnitsPerCategory()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, SummaryReport{
		TotalUnits:         totalUnits,
		LowStockItems:      lowStock,
		EstimatedValue:     totalUnits * unitValueEstimate,
		RecentOutMovements: recentOut,
		UnitsPerCategory:   perCategory,
	})
}
