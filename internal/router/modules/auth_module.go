package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/container"
	handlers "github.com/yamdb/yamdb/internal/interface/http"
	"github.com/yamdb/yamdb/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits. Registration is the
	// tightest because every call sends an email.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	tokenLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/auth/email", registerLimiter, m.Handler.Register)
	rg.POST("/auth/token", tokenLimiter, m.Handler.Token)
}
