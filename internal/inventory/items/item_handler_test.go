package items

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockflow/internal/repository"
	"stockflow/pkg/auditlog"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockItemStore struct {
	mock.Mock
}

func (m *mockItemStore) GetItems() (*[]models.Item, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.Item), args.Error(1)
}

func (m *mockItemStore) GetItemsBy(filter *repository.Filter, search string) (*[]models.Item, error) {
	args := m.Called(filter, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.Item), args.Error(1)
}

func (m *mockItemStore) GetItem(id int) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockItemStore) PersistItem(req models.ItemRequest) (*models.Item, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockItemStore) UpdateItem(req *models.PatchItemRequest, status *metadata.ItemStatus) (*models.Item, error) {
	args := m.Called(req, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockItemStore) DeleteItem(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockAuditReader struct {
	mock.Mock
}

func (m *mockAuditReader) GetResourceLog(id int, resourceType string) (*[]models.AuditLog, error) {
	args := m.Called(id, resourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.AuditLog), args.Error(1)
}

type noopPersister struct{}

func (noopPersister) PersistLog(models.AuditLog, interface{}) error { return nil }

func newTestHandler(store *mockItemStore) *ItemHandler {
	return NewItemHandler(store, new(mockAuditReader), auditlog.NewAuditLog(noopPersister{}, zap.NewNop()))
}

func TestCreateItemStartsUnavailableWithZeroStock(t *testing.T) {
	store := new(mockItemStore)
	handler := newTestHandler(store)

	store.On("PersistItem", mock.AnythingOfType("models.ItemRequest")).Return(&models.Item{
		ID:           1,
		Name:         "Wireless Mic Shure SM58",
		Category:     "Audio",
		CurrentStock: 0,
		Status:       metadata.StatusUnavailable,
	}, nil)

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	body := []byte(`{"name": "Wireless Mic Shure SM58", "brand": "Shure", "model": "SM58-LC", "category": "Audio", "min_stock_threshold": 5}`)
	c.Request = httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.CreateItem(c)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"UNAVAILABLE"`)
	store.AssertExpectations(t)
}

func TestResolveStatusChangeAllowsMaintenanceOnly(t *testing.T) {
	store := new(mockItemStore)
	handler := newTestHandler(store)

	maintenance := "MAINTENANCE"
	status, err := handler.resolveStatusChange(&models.PatchItemRequest{ID: 1, Status: &maintenance})

	assert.NoError(t, err)
	assert.Equal(t, metadata.StatusMaintenance, *status)
	store.AssertNotCalled(t, "GetItem", mock.Anything)
}

func TestResolveStatusChangeRederivesNonMaintenance(t *testing.T) {
	store := new(mockItemStore)
	handler := newTestHandler(store)

	// Item holds 3 with threshold 5: requesting OK still lands on LOW.
	store.On("GetItem", 1).Return(&models.Item{
		ID:                1,
		CurrentStock:      3,
		MinStockThreshold: 5,
	}, nil)

	ok := "OK"
	status, err := handler.resolveStatusChange(&models.PatchItemRequest{ID: 1, Status: &ok})

	assert.NoError(t, err)
	assert.Equal(t, metadata.StatusLow, *status)
}

func TestResolveStatusChangeRejectsUnknownStatus(t *testing.T) {
	handler := newTestHandler(new(mockItemStore))

	broken := "BROKEN"
	_, err := handler.resolveStatusChange(&models.PatchItemRequest{ID: 1, Status: &broken})

	assert.Error(t, err)
}

func TestExportItemsCSVWritesCatalog(t *testing.T) {
	store := new(mockItemStore)
	handler := newTestHandler(store)

	store.On("GetItems").Return(&[]models.Item{
		{
			ID:                1,
			Name:              "JBL Active Speaker",
			Brand:             "JBL",
			Model:             "EON615",
			Category:          "Audio",
			CurrentStock:      8,
			MinStockThreshold: 4,
			Status:            metadata.StatusOK,
		},
	}, nil)

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/items/export", nil)

	handler.ExportItemsCSV(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "inventory_export_")
	assert.Contains(t, recorder.Body.String(), "ID,Name,Brand,Model,Category,Current Stock,Min Threshold,Status")
	assert.Contains(t, recorder.Body.String(), "JBL Active Speaker")
}
