package items

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var exportHeader = []string{
	"ID", "Name", "Brand", "Model", "Category",
	"Current Stock", "Min Threshold", "Status",
}

// ExportItemsCSV streams the full catalog as CSV, matching the columns the
// dashboard export produces.
func (h *ItemHandler) ExportItemsCSV(c *gin.Context) {
	items, err := h.ItemRepository.GetItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("inventory_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(exportHeader); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	for _, item := range *items {
		record := []string{
			strconv.Itoa(item.ID),
			item.Name,
			item.Brand,
			item.Model,
			item.Category,
			strconv.Itoa(item.CurrentStock),
			strconv.Itoa(item.MinStockThreshold),
			item.Status.String(),
		}
		if err := writer.Write(record); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	writer.Flush()
}
