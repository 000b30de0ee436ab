package handler

import (
	"account-ledger/internal/adapter/http/middleware"
	"account-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Ledger         ports.LedgerService
	Gate           ports.SessionGate
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 16)) // 64 KB is plenty for ledger commands

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	sessionHandler := NewSessionHandler(deps.Gate, deps.Ledger)
	v1.POST("/session/login", sessionHandler.Login)

	// --- Session-authenticated routes ---
	sessionAuth := middleware.SessionAuth(deps.TokenSvc, deps.Gate, deps.Logger)
	accountHandler := NewAccountHandler(deps.Ledger)

	v1.POST("/session/logout", sessionAuth, sessionHandler.Logout)

	account := v1.Group("/account", sessionAuth)
	{
		account.GET("", accountHandler.Get)
		account.GET("/statement", accountHandler.Statement)
		account.POST("/deposit", accountHandler.Deposit)
		account.POST("/withdraw", accountHandler.Withdraw)
		account.POST("/transfer", accountHandler.Transfer)
		account.PUT("/pin", accountHandler.ChangePIN)
	}

	return r
}
