package movements

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockflow/pkg/auditlog"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockMovementService struct {
	mock.Mock
}

func (m *mockMovementService) RecordMovement(req models.MovementRequest) (*models.Movement, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movement), args.Error(1)
}

func (m *mockMovementService) GetMovements(itemID *int, limit int) (*[]models.Movement, error) {
	args := m.Called(itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.Movement), args.Error(1)
}

func (m *mockMovementService) GetMovement(id int) (*models.Movement, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movement), args.Error(1)
}

type noopPersister struct{}

func (noopPersister) PersistLog(models.AuditLog, interface{}) error { return nil }

func newTestHandler(service MovementService) *MovementHandler {
	return NewMovementHandler(service, auditlog.NewAuditLog(noopPersister{}, zap.NewNop()))
}

func performRequest(handler gin.HandlerFunc, method, target string, body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return recorder
}

func TestRecordMovementHandlerReturnsCreated(t *testing.T) {
	service := new(mockMovementService)
	handler := newTestHandler(service)

	service.On("RecordMovement", mock.AnythingOfType("models.MovementRequest")).Return(&models.Movement{
		ID:       12,
		ItemID:   1,
		Type:     metadata.MovementIn,
		Quantity: 5,
	}, nil)

	body := []byte(`{"item_id": 1, "type": "IN", "quantity": 5, "to_location_id": 2}`)
	recorder := performRequest(handler.RecordMovement, http.MethodPost, "/movements", body)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":12`)
}

func TestRecordMovementHandlerRejectsNonPositiveQuantity(t *testing.T) {
	service := new(mockMovementService)
	handler := newTestHandler(service)

	body := []byte(`{"item_id": 1, "type": "IN", "quantity": 0, "to_location_id": 2}`)
	recorder := performRequest(handler.RecordMovement, http.MethodPost, "/movements", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	service.AssertNotCalled(t, "RecordMovement", mock.Anything)
}

func TestRecordMovementHandlerMapsServiceErrors(t *testing.T) {
	testCases := []struct {
		name           string
		serviceError   error
		expectedStatus int
	}{
		{"unknown item", ErrItemNotFound, http.StatusNotFound},
		{"unknown location", ErrLocationNotFound, http.StatusBadRequest},
		{"insufficient stock", ErrInsufficientStock, http.StatusBadRequest},
		{"invalid type", ErrInvalidMovementType, http.StatusBadRequest},
		{"database failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := new(mockMovementService)
			handler := newTestHandler(service)

			service.On("RecordMovement", mock.AnythingOfType("models.MovementRequest")).Return(nil, tc.serviceError)

			body := []byte(`{"item_id": 1, "type": "OUT", "quantity": 3, "from_location_id": 2}`)
			recorder := performRequest(handler.RecordMovement, http.MethodPost, "/movements", body)

			assert.Equal(t, tc.expectedStatus, recorder.Code)
		})
	}
}

func TestGetMovementsHandlerPassesItemFilter(t *testing.T) {
	service := new(mockMovementService)
	handler := newTestHandler(service)

	service.On("GetMovements", mock.MatchedBy(func(id *int) bool {
		return id != nil && *id == 4
	}), 50).Return(&[]models.Movement{}, nil)

	recorder := performRequest(handler.GetMovements, http.MethodGet, "/movements?item_id=4", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestGetMovementHandlerReturnsNotFound(t *testing.T) {
	service := new(mockMovementService)
	handler := newTestHandler(service)

	service.On("GetMovement", 77).Return(nil, nil)

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/movements/77", nil)
	c.Params = gin.Params{{Key: "id", Value: "77"}}

	handler.GetMovement(c)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
