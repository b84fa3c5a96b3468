package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/helpers"
	"github.com/oksasatya/user-management-api/pkg/validation"
)

func newAuthTestRouter(mockRepo repo.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	users := userapp.NewUserService(mockRepo, logger, nil, "")
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc := userapp.NewAuthService(users, jwt, nil, logger, nil)
	h := NewAuthHandler(svc, logger, "localhost", false)

	r := gin.New()
	r.POST("/api/login", h.Login)
	r.POST("/api/register", h.Register)
	return r
}

func TestLoginSetsCookies(t *testing.T) {
	mockRepo := new(MockUserRepo)
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	u := &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com", Password: hash}
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	w := doJSON(newAuthTestRouter(mockRepo), http.MethodPost, "/api/login", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "access_token")
	assert.Contains(t, names, "refresh_token")
	assert.NotContains(t, w.Body.String(), hash)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, repo.ErrNotFound)

	w := doJSON(newAuthTestRouter(mockRepo), http.MethodPost, "/api/login", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterCreatesAccount(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = 5
	})

	w := doJSON(newAuthTestRouter(mockRepo), http.MethodPost, "/api/register", gin.H{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(5), resp.Data["id"])
	assert.NotContains(t, resp.Data, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepo)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(repo.ErrEmailTaken)

	w := doJSON(newAuthTestRouter(mockRepo), http.MethodPost, "/api/register", gin.H{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
