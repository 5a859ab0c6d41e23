package handler

import (
	"time"

	"piggy-bank/internal/adapter/http/middleware"
	"piggy-bank/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds everything the router needs wired in.
type RouterDeps struct {
	AuthHandler       *AuthHandler
	WalletHandler     *WalletHandler
	InstrumentHandler *InstrumentHandler
	HealthHandler     *HealthHandler
	TokenService      ports.TokenService
	RateLimitStore    middleware.RateLimitStore
	RateLimitMax      int
	RateLimitWindow   time.Duration
	MaxBodyBytes      int64
	Logger            zerolog.Logger
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.MaxBodySize(deps.MaxBodyBytes),
	)

	r.GET("/health", deps.HealthHandler.Check)

	v1 := r.Group("/api/v1")
	if deps.RateLimitStore != nil {
		v1.Use(middleware.RateLimit(deps.RateLimitStore, deps.RateLimitMax, deps.RateLimitWindow, deps.Logger))
	}

	auth := v1.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(deps.TokenService))
	{
		wallets := authed.Group("/wallets")
		{
			wallets.POST("", deps.WalletHandler.Create)
			wallets.GET("", deps.WalletHandler.List)
			wallets.GET("/:id", deps.WalletHandler.GetDetail)
			wallets.PATCH("/:id", deps.WalletHandler.Update)
			wallets.DELETE("/:id", deps.WalletHandler.Delete)
			wallets.POST("/:id/instruments", deps.InstrumentHandler.Create)
		}

		instruments := authed.Group("/instruments")
		{
			instruments.GET("/:id", deps.InstrumentHandler.Get)
			instruments.PATCH("/:id", deps.InstrumentHandler.Update)
			instruments.DELETE("/:id", deps.InstrumentHandler.Delete)
			instruments.GET("/:id/history", deps.InstrumentHandler.History)
		}
	}

	return r
}
