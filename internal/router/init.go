package router

import (
	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/internal/container"
	pginfra "github.com/oksasatya/user-management-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/user-management-api/internal/interface/http"
	"github.com/oksasatya/user-management-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	repo := pginfra.NewUserRepository(container.GetPGPool())
	userSvc := userapp.NewUserService(repo, container.GetLogger(), container.GetES(), cfg.ESUsersIndex)
	authSvc := userapp.NewAuthService(userSvc, container.GetJWT(), container.GetRedis(), container.GetLogger(), container.GetRabbitPub())

	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger())
	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	emailHandler := handlers.NewEmailHandler(container.GetRabbitPub(), container.GetLogger(), cfg)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	if container.GetRabbitPub() != nil {
		r.Add(modules.NewEmailModule(emailHandler, container.GetJWT()))
	}
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
