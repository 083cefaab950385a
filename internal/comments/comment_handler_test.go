package comments

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCommentStore struct {
	mock.Mock
}

func (m *mockCommentStore) EntityExists(entityType metadata.EntityType, entityID int) (bool, error) {
	args := m.Called(entityType, entityID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCommentStore) CreateComment(req models.CommentRequest) (*models.Comment, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockCommentStore) GetCommentsByEntity(entityType metadata.EntityType, entityID int) (*[]models.Comment, error) {
	args := m.Called(entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.Comment), args.Error(1)
}

func (m *mockCommentStore) DeleteComment(id int) error {
	args := m.Called(id)
	return args.Error(0)
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

func TestCreateCommentRejectsUnknownEntityType(t *testing.T) {
	store := new(mockCommentStore)
	handler := NewCommentHandler(store)

	body := []byte(`{"entity_type": "warehouse", "entity_id": 1, "text": "hello"}`)
	recorder := performRequest(handler.CreateComment, http.MethodPost, "/comments", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	store.AssertNotCalled(t, "CreateComment", mock.Anything)
}

func TestCreateCommentRejectsMissingEntity(t *testing.T) {
	store := new(mockCommentStore)
	handler := NewCommentHandler(store)

	store.On("EntityExists", metadata.EntityItem, 42).Return(false, nil)

	body := []byte(`{"entity_type": "item", "entity_id": 42, "text": "missing"}`)
	recorder := performRequest(handler.CreateComment, http.MethodPost, "/comments", body)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	store.AssertNotCalled(t, "CreateComment", mock.Anything)
}

func TestCreateCommentPersistsAndReturnsCreated(t *testing.T) {
	store := new(mockCommentStore)
	handler := NewCommentHandler(store)

	store.On("EntityExists", metadata.EntityItem, 1).Return(true, nil)
	store.On("CreateComment", mock.AnythingOfType("models.CommentRequest")).Return(&models.Comment{
		ID:         5,
		EntityType: metadata.EntityItem,
		EntityID:   1,
		Text:       "checked after event",
	}, nil)

	body := []byte(`{"entity_type": "item", "entity_id": 1, "text": "checked after event"}`)
	recorder := performRequest(handler.CreateComment, http.MethodPost, "/comments", body)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":5`)
	store.AssertExpectations(t)
}

func TestDeleteCommentErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		storeErr error
		want     int
	}{
		{"unknown comment answers not found", ErrCommentNotFound, http.StatusNotFound},
		{"storage failure answers server error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockCommentStore)
			handler := NewCommentHandler(store)
			store.On("DeleteComment", 3).Return(tc.storeErr)

			gin.SetMode(gin.TestMode)
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodDelete, "/comments/3", nil)
			c.Params = gin.Params{{Key: "id", Value: "3"}}

			handler.DeleteComment(c)

			assert.Equal(t, tc.want, recorder.Code)
		})
	}
}

func TestGetCommentsRequiresEntityFilter(t *testing.T) {
	store := new(mockCommentStore)
	handler := NewCommentHandler(store)

	recorder := performRequest(handler.GetComments, http.MethodGet, "/comments", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	store.AssertNotCalled(t, "GetCommentsByEntity", mock.Anything, mock.Anything)
}

func TestGetCommentsReturnsEntityThread(t *testing.T) {
	store := new(mockCommentStore)
	handler := NewCommentHandler(store)

	store.On("GetCommentsByEntity", metadata.EntityMovement, 9).Return(&[]models.Comment{
		{ID: 2, Text: "newer"},
		{ID: 1, Text: "older"},
	}, nil)

	recorder := performRequest(handler.GetComments, http.MethodGet, "/comments?entity_type=movement&entity_id=9", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	store.AssertExpectations(t)
}
