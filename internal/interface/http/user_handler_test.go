package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/validation"
)

// MockUserRepo is a mock implementation of the UserRepository interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) List(ctx context.Context, search string, page, perPage int) ([]entity.User, int64, error) {
	args := m.Called(ctx, search, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) Update(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestRouter(mockRepo repo.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	svc := userapp.NewUserService(mockRepo, logger, nil, "")
	h := NewUserHandler(svc, logger)

	r := gin.New()
	r.GET("/api/users", h.Index)
	r.POST("/api/users", h.Store)
	r.GET("/api/users/search", h.Search)
	r.GET("/api/users/:id", h.Show)
	r.PUT("/api/users/:id", h.Update)
	r.DELETE("/api/users/:id", h.Destroy)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndexDefaultPerPageIsTen(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("List", mock.Anything, "", 1, 10).
		Return([]entity.User{{ID: 1, Name: "Alice", Email: "alice@example.com"}}, int64(1), nil)

	w := doJSON(newTestRouter(mockRepo), http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data        []map[string]any `json:"data"`
		Total       int64            `json:"total"`
		CurrentPage int              `json:"current_page"`
		PerPage     int              `json:"per_page"`
		LastPage    int              `json:"last_page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 10, page.PerPage)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Data, 1)
	mockRepo.AssertExpectations(t)
}

func TestIndexPassesSearchThrough(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("List", mock.Anything, "ali", 1, 5).
		Return([]entity.User{{ID: 1, Name: "Alice", Email: "alice@example.com"}}, int64(1), nil)

	w := doJSON(newTestRouter(mockRepo), http.MethodGet, "/api/users?search=ali&perPage=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestIndexRejectsNegativePerPage(t *testing.T) {
	w := doJSON(newTestRouter(new(MockUserRepo)), http.MethodGet, "/api/users?perPage=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestStoreReturnsUserWithoutPassword(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = 1
	})

	w := doJSON(newTestRouter(mockRepo), http.MethodPost, "/api/users", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, float64(1), got["id"])
	assert.Equal(t, "Alice", got["name"])
	assert.Equal(t, "alice@example.com", got["email"])
	assert.NotContains(t, got, "password")
	assert.NotContains(t, w.Body.String(), "secret123")
}

func TestStoreValidation(t *testing.T) {
	w := doJSON(newTestRouter(new(MockUserRepo)), http.MethodPost, "/api/users", gin.H{
		"name":     "Alice",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "email")
	assert.Contains(t, resp.Error, "password")
}

func TestStoreDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(repo.ErrEmailTaken)

	w := doJSON(newTestRouter(mockRepo), http.MethodPost, "/api/users", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestShowUnknownID(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("FindByID", mock.Anything, int64(999)).Return(nil, repo.ErrNotFound)

	w := doJSON(newTestRouter(mockRepo), http.MethodGet, "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShowMalformedID(t *testing.T) {
	w := doJSON(newTestRouter(new(MockUserRepo)), http.MethodGet, "/api/users/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	mockRepo := new(MockUserRepo)
	existing := &entity.User{ID: 7, Name: "Alice", Email: "alice@example.com", Password: "hash"}
	fresh := &entity.User{ID: 7, Name: "Alicia", Email: "alice@example.com", Password: "hash"}

	mockRepo.On("FindByID", mock.Anything, int64(7)).Return(existing, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Name == "Alicia" && u.Email == "alice@example.com"
	})).Return(nil)
	mockRepo.On("FindByID", mock.Anything, int64(7)).Return(fresh, nil).Once()

	w := doJSON(newTestRouter(mockRepo), http.MethodPut, "/api/users/7", gin.H{"name": "Alicia"})
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Alicia", got["name"])
	assert.Equal(t, "alice@example.com", got["email"])
	mockRepo.AssertExpectations(t)
}

func TestDestroyThenNotFound(t *testing.T) {
	mockRepo := new(MockUserRepo)
	u := &entity.User{ID: 3, Name: "Bob", Email: "bob@example.com"}

	mockRepo.On("FindByID", mock.Anything, int64(3)).Return(u, nil).Once()
	mockRepo.On("Delete", mock.Anything, int64(3)).Return(nil).Once()
	mockRepo.On("FindByID", mock.Anything, int64(3)).Return(nil, repo.ErrNotFound).Once()

	r := newTestRouter(mockRepo)

	w := doJSON(r, http.MethodDelete, "/api/users/3", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(r, http.MethodDelete, "/api/users/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestSearchRequiresQuery(t *testing.T) {
	w := doJSON(newTestRouter(new(MockUserRepo)), http.MethodGet, "/api/users/search", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
