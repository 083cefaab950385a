package locations

import (
	"errors"
	"net/http"
	"strconv"

	"stockflow/pkg/auditlog"
	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"
	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

type LocationStore interface {
	GetLocations() (*[]models.Location, error)
	GetLocation(id int) (*models.Location, error)
	PersistLocation(req models.LocationRequest) (*models.Location, error)
	UpdateLocation(id int, req models.LocationRequest) (*models.Location, error)
	DeleteLocation(id int) error
	HasChildren(id int) (bool, error)
}

type LocationHandler struct {
	Repository LocationStore
	AuditLog   *auditlog.Auditlog
}

func NewLocationHandler(r LocationStore, a *auditlog.Auditlog) *LocationHandler {
	return &LocationHandler{Repository: r, AuditLog: a}
}

func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/locations", security.Authorize("viewer"), h.GetLocations)
	router.GET("/locations/:id", security.Authorize("viewer"), h.GetLocation)
	router.POST("/locations", security.Authorize("manager"), h.CreateLocation)
	router.PUT("/locations/:id", security.Authorize("manager"), h.UpdateLocation)
	router.DELETE("/locations/:id", security.Authorize("admin"), h.DeleteLocation)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.Repository.GetLocations()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	location, err := h.Repository.GetLocation(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch location"})
		return
	}
	if location == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var request models.LocationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	locationType, err := metadata.NewLocationType(request.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location type", "details": err.Error()})
		return
	}
	request.Type = locationType.String()

	if request.ParentID != nil {
		parent, err := h.Repository.GetLocation(*request.ParentID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify parent location"})
			return
		}
		if parent == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent location does not exist"})
			return
		}
		// Client venues and events are leaves of the tree.
		if !parent.Type.IsInternal() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent must be an internal location"})
			return
		}
	}

	location, err := h.Repository.PersistLocation(request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	go h.AuditLog.Log("create", map[string]interface{}{
		"name": location.Name,
		"type": location.Type,
		"msg":  "Created location",
	}, location)

	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var request models.LocationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	locationType, err := metadata.NewLocationType(request.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location type", "details": err.Error()})
		return
	}
	request.Type = locationType.String()

	if request.ParentID != nil {
		if *request.ParentID == id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Location cannot be its own parent"})
			return
		}
		parent, err := h.Repository.GetLocation(*request.ParentID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify parent location"})
			return
		}
		if parent == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent location does not exist"})
			return
		}
		if !parent.Type.IsInternal() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent must be an internal location"})
			return
		}
	}

	location, err := h.Repository.UpdateLocation(id, request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}
	if location == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	go h.AuditLog.Log("update", map[string]interface{}{
		"name": location.Name,
		"msg":  "Updated location",
	}, location)

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	hasChildren, err := h.Repository.HasChildren(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check location children"})
		return
	}
	if hasChildren {
		c.JSON(http.StatusConflict, gin.H{"error": "Location still has child locations"})
		return
	}

	if err := h.Repository.DeleteLocation(id); err != nil {
		var fkErr *custom_error.ForeignKeyViolationError
		if errors.As(err, &fkErr) {
			c.JSON(http.StatusConflict, gin.H{"error": "Location is referenced by existing movements"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	deleted := models.Location{ID: id}
	go h.AuditLog.Log("delete", map[string]interface{}{
		"msg": "Deleted location",
	}, &deleted)

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
