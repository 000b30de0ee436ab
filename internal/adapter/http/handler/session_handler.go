package handler

import (
	"net/http"

	"account-ledger/internal/adapter/http/dto"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"
	"account-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	gate   ports.SessionGate
	ledger ports.LedgerService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(gate ports.SessionGate, ledger ports.LedgerService) *SessionHandler {
	return &SessionHandler{gate: gate, ledger: ledger}
}

// Login handles POST /api/v1/session/login.
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	req.Sanitize()

	sess, err := h.gate.Authenticate(c.Request.Context(), req.AccountID, req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	snap, err := h.ledger.Snapshot(c.Request.Context(), sess.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SessionResponse{
		Token:   sess.Token,
		Expiry:  sess.ExpiresAt.Unix(),
		Account: dto.FromSnapshot(snap),
	})
}

// Logout handles POST /api/v1/session/logout.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.gate.EndSession(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "logged_out"})
}

// HealthCheck handles GET /health, verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
