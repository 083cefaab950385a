package comments

import (
	"errors"
	"net/http"
	"strconv"

	"stockflow/pkg/metadata"
	"stockflow/pkg/models"
	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

type CommentStore interface {
	EntityExists(entityType metadata.EntityType, entityID int) (bool, error)
	CreateComment(req models.CommentRequest) (*models.Comment, error)
	GetCommentsByEntity(entityType metadata.EntityType, entityID int) (*[]models.Comment, error)
	DeleteComment(id int) error
}

type CommentHandler struct {
	Repository CommentStore
}

func NewCommentHandler(r CommentStore) *CommentHandler {
	return &CommentHandler{Repository: r}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/comments", security.Authorize("viewer"), h.GetComments)
	router.POST("/comments", security.Authorize("viewer"), h.CreateComment)
	router.DELETE("/comments/:id", security.Authorize("manager"), h.DeleteComment)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var request models.CommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	entityType, err := metadata.NewEntityType(request.EntityType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity type", "details": err.Error()})
		return
	}
	request.EntityType = entityType.String()
	request.CreatedBy = security.CurrentUserID(c)
	request.AuthorName = security.CurrentUserFullname(c)

	exists, err := h.Repository.EntityExists(entityType, request.EntityID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify entity"})
		return
	}
	if !exists {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Commented entity does not exist"})
		return
	}

	comment, err := h.Repository.CreateComment(request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	rawType := c.Query("entity_type")
	rawID := c.Query("entity_id")
	if rawType == "" || rawID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_type and entity_id are required"})
		return
	}

	entityType, err := metadata.NewEntityType(rawType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity type", "details": err.Error()})
		return
	}

	entityID, err := strconv.Atoi(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity_id"})
		return
	}

	comments, err := h.Repository.GetCommentsByEntity(entityType, entityID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := h.Repository.DeleteComment(id); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
