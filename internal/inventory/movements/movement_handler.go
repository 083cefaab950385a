package movements

import (
	"errors"
	"net/http"
	"strconv"

	"stockflow/pkg/auditlog"
	"stockflow/pkg/models"
	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

type MovementHandler struct {
	Service  MovementService
	AuditLog *auditlog.Auditlog
}

func NewMovementHandler(s MovementService, a *auditlog.Auditlog) *MovementHandler {
	return &MovementHandler{Service: s, AuditLog: a}
}

func (h *MovementHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/movements", security.Authorize("viewer"), h.GetMovements)
	router.GET("/movements/:id", security.Authorize("viewer"), h.GetMovement)
	router.POST("/movements", security.Authorize("manager"), h.RecordMovement)
}

func (h *MovementHandler) RecordMovement(c *gin.Context) {
	var request models.MovementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	request.CreatedBy = security.CurrentUserID(c)

	movement, err := h.Service.RecordMovement(request)
	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrLocationNotFound),
			errors.Is(err, ErrInvalidMovementType),
			errors.Is(err, ErrInsufficientStock):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to record movement"})
		}
		return
	}

	go h.AuditLog.Log("create", map[string]interface{}{
		"item_id":  movement.ItemID,
		"type":     movement.Type,
		"quantity": movement.Quantity,
		"msg":      "Recorded stock movement",
	}, movement)

	c.JSON(http.StatusCreated, movement)
}

func (h *MovementHandler) GetMovements(c *gin.Context) {
	var itemID *int
	if raw := c.Query("item_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item_id filter"})
			return
		}
		itemID = &id
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	movements, err := h.Service.GetMovements(itemID, limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
		return
	}

	c.JSON(http.StatusOK, movements)
}

func (h *MovementHandler) GetMovement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid movement ID"})
		return
	}

	movement, err := h.Service.GetMovement(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movement"})
		return
	}
	if movement == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		return
	}

	c.JSON(http.StatusOK, movement)
}
