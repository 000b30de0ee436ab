package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	accountID string
	err       error
}

func (s *stubTokenService) Generate(string) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s *stubTokenService) Validate(string) (string, error) {
	return s.accountID, s.err
}

type stubGate struct {
	requireErr error
}

func (g *stubGate) Authenticate(context.Context, string, string) (*ports.Session, error) {
	return nil, nil
}

func (g *stubGate) Require(string) error { return g.requireErr }

func (g *stubGate) EndSession(context.Context) error { return nil }

func authRouter(tokenErr error, requireErr error) *gin.Engine {
	r := gin.New()
	tokenSvc := &stubTokenService{accountID: "1001", err: tokenErr}
	gate := &stubGate{requireErr: requireErr}
	r.GET("/protected", sessionAuthWith(tokenSvc, gate), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account": c.GetString(CtxAccountID)})
	})
	return r
}

// sessionAuthWith adapts the stubs to the middleware's port types.
func sessionAuthWith(tokenSvc *stubTokenService, gate *stubGate) gin.HandlerFunc {
	return SessionAuth(tokenSvc, gate, zerolog.Nop())
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	r := authRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}

func TestSessionAuth_MalformedHeader(t *testing.T) {
	r := authRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}

func TestSessionAuth_RejectedToken(t *testing.T) {
	r := authRouter(apperror.ErrInvalidToken(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}

func TestSessionAuth_GateRejects(t *testing.T) {
	r := authRouter(nil, apperror.ErrInvalidSessionState())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_004")
}

func TestSessionAuth_SetsAccountID(t *testing.T) {
	r := authRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1001")
}

func TestMaxBodySize_RejectsOversized(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodySize(16))
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, body)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"field":"`+strings.Repeat("x", 64)+`"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecovery_CatchesPanic(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_000")
}
