package users

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetUsers() (*[]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.User), args.Error(1)
}

func (m *mockUserStore) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) PersistUser(user models.User) (*models.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UpdateUser(id int, changes models.UserChanges) (*models.User, error) {
	args := m.Called(id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) DeleteUser(id int) error {
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

func TestCreateUserHashesPassword(t *testing.T) {
	store := new(mockUserStore)
	handler := NewUserHandler(store)

	store.On("PersistUser", mock.MatchedBy(func(user models.User) bool {
		if user.PasswordHash == "s3cret!" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")) == nil
	})).Return(&models.User{ID: 3, Username: "kasia", Role: "manager"}, nil)

	body := []byte(`{"username": "kasia", "fullname": "Kasia Nowak", "email": "kasia@example.com", "password": "s3cret!", "role": "manager"}`)
	recorder := performRequest(handler.CreateUser, http.MethodPost, "/users", body)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	store.AssertExpectations(t)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	store := new(mockUserStore)
	handler := NewUserHandler(store)

	body := []byte(`{"username": "ed", "fullname": "Ed", "email": "ed@example.com", "password": "s3cret!", "role": "owner"}`)
	recorder := performRequest(handler.CreateUser, http.MethodPost, "/users", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	store.AssertNotCalled(t, "PersistUser", mock.Anything)
}

func TestUpdateUserRequiresChanges(t *testing.T) {
	store := new(mockUserStore)
	handler := NewUserHandler(store)

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPatch, "/users/2", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	handler.UpdateUser(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	store.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestDeleteUserErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		storeErr error
		want     int
	}{
		{"referenced user answers conflict", custom_error.WrapDBError("user", "23503"), http.StatusConflict},
		{"unknown user answers not found", ErrUserNotFound, http.StatusNotFound},
		{"storage failure answers server error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockUserStore)
			handler := NewUserHandler(store)
			store.On("DeleteUser", 7).Return(tc.storeErr)

			gin.SetMode(gin.TestMode)
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodDelete, "/users/7", nil)
			c.Params = gin.Params{{Key: "id", Value: "7"}}

			handler.DeleteUser(c)

			assert.Equal(t, tc.want, recorder.Code)
		})
	}
}

func TestGetUserReturnsNotFound(t *testing.T) {
	store := new(mockUserStore)
	handler := NewUserHandler(store)

	store.On("GetUser", 99).Return(nil, nil)

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.GetUser(c)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
