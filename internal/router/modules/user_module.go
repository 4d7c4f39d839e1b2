package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"stayloop/internal/container"
	handlers "stayloop/internal/interface/http"
	"stayloop/internal/interface/middleware"
	"stayloop/pkg/helpers"
)

// UserModule wires user HTTP handlers and JWT middleware into routes.
// Public: POST /api/register, POST /api/login, POST /api/refresh
// Protected: GET /api/users, GET /api/users/:username, PATCH /api/users/:id,
// DELETE /api/users/:id, GET /api/users/search, GET /api/profile,
// POST /api/logout

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)

		auth.GET("/users", m.Handler.List)
		auth.GET("/users/search", m.Handler.Search)
		auth.GET("/users/:username", m.Handler.Get)
		auth.PATCH("/users/:id", m.Handler.Update)
		auth.DELETE("/users/:id", m.Handler.Delete)
	}
}
