package items

import (
	"net/http"
	"strconv"

	"stockflow/internal/inventory/ledger"
	"stockflow/internal/repository"
	"stockflow/pkg/auditlog"
	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"
	"stockflow/pkg/security"

	"github.com/gin-gonic/gin"
)

// ItemStore is the persistence surface the handler needs; implemented by
// ItemRepository.
type ItemStore interface {
	GetItems() (*[]models.Item, error)
	GetItemsBy(filter *repository.Filter, search string) (*[]models.Item, error)
	GetItem(id int) (*models.Item, error)
	PersistItem(req models.ItemRequest) (*models.Item, error)
	UpdateItem(req *models.PatchItemRequest, status *metadata.ItemStatus) (*models.Item, error)
	DeleteItem(id int) error
}

type AuditReader interface {
	GetResourceLog(id int, resourceType string) (*[]models.AuditLog, error)
}

type ItemHandler struct {
	ItemRepository ItemStore
	AuditReader    AuditReader
	AuditLog       *auditlog.Auditlog
}

func NewItemHandler(ir ItemStore, ar AuditReader, a *auditlog.Auditlog) *ItemHandler {
	return &ItemHandler{
		ItemRepository: ir,
		AuditReader:    ar,
		AuditLog:       a,
	}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", security.Authorize("viewer"), h.GetItems)
	router.GET("/items/export", security.Authorize("viewer"), h.ExportItemsCSV)
	router.GET("/items/:id", security.Authorize("viewer"), h.GetItem)
	router.GET("/items/:id/history", security.Authorize("viewer"), h.GetItemHistory)
	router.POST("/items", security.Authorize("manager"), h.CreateItem)
	router.PATCH("/items/:id", security.Authorize("manager"), h.UpdateItem)
	router.DELETE("/items/:id", security.Authorize("admin"), h.DeleteItem)
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	var query struct {
		Category string `form:"category"`
		Status   string `form:"status"`
		Search   string `form:"search"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	filter := repository.NewFilter()

	if query.Category != "" {
		filter.Equals("category", query.Category)
	}
	if query.Status != "" {
		status, err := metadata.NewItemStatus(query.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item status", "details": err.Error()})
			return
		}
		filter.Equals("status", status.String())
	}

	items, err := h.ItemRepository.GetItemsBy(filter, query.Search)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.ItemRepository.GetItem(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item", "details": err.Error()})
		return
	}
	if item == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) GetItemHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	entries, err := h.AuditReader.GetResourceLog(id, "item")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req models.ItemRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.ItemRepository.PersistItem(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Item with same data already registered"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		}
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"name":     item.Name,
			"category": item.Category,
			"msg":      "Register item in catalog",
		},
		item,
	)

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req models.PatchItemRequest

	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters", "details": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	status, err := h.resolveStatusChange(&req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item status", "details": err.Error()})
		return
	}

	item, err := h.ItemRepository.UpdateItem(&req, status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update item", "details": err.Error()})
		return
	}
	if item == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	go h.AuditLog.Log(
		"update",
		map[string]interface{}{"msg": "Update item data"},
		item,
	)

	c.JSON(http.StatusOK, item)
}

// resolveStatusChange turns a requested status into the value actually
// written. Only MAINTENANCE can be set by hand; requesting any other valid
// status clears the maintenance flag by re-deriving from the current stock.
func (h *ItemHandler) resolveStatusChange(req *models.PatchItemRequest) (*metadata.ItemStatus, error) {
	if req.Status == nil {
		return nil, nil
	}

	requested, err := metadata.NewItemStatus(*req.Status)
	if err != nil {
		return nil, err
	}

	if requested == metadata.StatusMaintenance {
		return &requested, nil
	}

	item, err := h.ItemRepository.GetItem(req.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	threshold := item.MinStockThreshold
	if req.MinStockThreshold != nil {
		threshold = *req.MinStockThreshold
	}

	derived := ledger.DeriveStatus(item.CurrentStock, threshold)
	return &derived, nil
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.ItemRepository.GetItem(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item", "details": err.Error()})
		return
	}
	if item == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if err := h.ItemRepository.DeleteItem(id); err != nil {
		if _, ok := err.(*custom_error.ForeignKeyViolationError); ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Item has recorded movements and cannot be deleted", "details": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"delete",
		map[string]interface{}{"name": item.Name, "msg": "Remove item from catalog"},
		item,
	)

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
