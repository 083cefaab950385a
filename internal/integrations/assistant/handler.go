package assistant

import (
	"net/http"
	"time"

	"stockflow/internal/rate_limiter"
	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

type AnalyzeRequest struct {
	Query string `json:"query" binding:"required"`
}

type Handler struct {
	Service *Service
	limiter *rate_limiter.RateLimiter
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		Service: service,
		// Gemini calls are slow and metered, keep request bursts per client low.
		limiter: rate_limiter.NewRateLimiter(20, 5*time.Minute),
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assistant/analyze", security.Authorize("viewer"), h.Analyze)
}

func (h *Handler) Analyze(c *gin.Context) {
	if !h.limiter.IsAllowed(security.ClientKey(c)) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many analysis requests, try again later"})
		return
	}

	var request AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	analysis := h.Service.AnalyzeInventory(c.Request.Context(), request.Query)

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
