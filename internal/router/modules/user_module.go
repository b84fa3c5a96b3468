package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-management-api/internal/container"
	handlers "github.com/oksasatya/user-management-api/internal/interface/http"
	"github.com/oksasatya/user-management-api/internal/interface/middleware"
	"github.com/oksasatya/user-management-api/pkg/helpers"
)

// UserModule wires the user CRUD handlers behind the auth middleware.
// Routes (under /api): GET /users, POST /users, GET /users/:id,
// PUT /users/:id, DELETE /users/:id, GET /users/search.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/users", m.Handler.Index)
		auth.POST("/users", m.Handler.Store)
		// register /users/search before /users/:id so gin does not
		// treat "search" as a path id
		auth.GET("/users/search", m.Handler.Search)
		auth.GET("/users/:id", m.Handler.Show)
		auth.PUT("/users/:id", m.Handler.Update)
		auth.DELETE("/users/:id", m.Handler.Destroy)
	}
}
