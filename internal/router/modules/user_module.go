package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/container"
	handlers "github.com/yamdb/yamdb/internal/interface/http"
	"github.com/yamdb/yamdb/internal/interface/middleware"
)

// UserModule wires the caller-facing "me" endpoints and the admin user
// directory.
// Protected: GET/PATCH /api/v1/users/me, POST /api/v1/users/me/avatar
// Admin: GET/POST /api/v1/users, GET/PATCH/DELETE /api/v1/users/:username
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RequireAuth())
	users.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByCaller(), nil))
	{
		users.GET("/me", m.Handler.Me)
		users.PATCH("/me", m.Handler.UpdateMe)
		users.POST("/me/avatar", m.Handler.UploadAvatar)

		// Directory; the handlers enforce the admin-only rule.
		users.GET("", m.Handler.List)
		users.POST("", m.Handler.Create)
		users.GET("/:username", m.Handler.Get)
		users.PATCH("/:username", m.Handler.Update)
		users.DELETE("/:username", m.Handler.Delete)
	}
}
