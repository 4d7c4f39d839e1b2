package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"stayloop/internal/container"
	handlers "stayloop/internal/interface/http"
	"stayloop/internal/interface/middleware"
	"stayloop/pkg/helpers"
)

// MediaModule exposes image upload for authenticated users.
type MediaModule struct {
	Handler *handlers.MediaHandler
	JWT     *helpers.JWTManager
}

func NewMediaModule(h *handlers.MediaHandler, jwt *helpers.JWTManager) *MediaModule {
	return &MediaModule{Handler: h, JWT: jwt}
}

func (m *MediaModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/uploads", m.Handler.Upload)
	}
}
