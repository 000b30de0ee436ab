package middleware

import (
	"net/http"
	"time"

	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"
	"account-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CtxAccountID is the context key holding the session's account id.
const CtxAccountID = "account_id"

// SessionAuth validates the bearer session token and checks the session
// gate still holds that account as the active binding. The gate, not the
// token, is the authority: a logged-out token is rejected even if unexpired.
func SessionAuth(tokenSvc ports.TokenService, gate ports.SessionGate, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		accountID, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Debug().Err(err).Msg("session token rejected")
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		if err := gate.Require(accountID); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(CtxAccountID, accountID)
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_000",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
