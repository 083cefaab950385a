package googlesheets

import (
	"net/http"

	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	Service *SnapshotService
}

func NewSnapshotHandler(service *SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{Service: service}
}

func (h *SnapshotHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sheets/snapshot", security.Authorize("manager"), h.PushSnapshot)
}

func (h *SnapshotHandler) PushSnapshot(c *gin.Context) {
	count, err := h.Service.PushSnapshot()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to push inventory snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory snapshot pushed", "items": count})
}
