package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"account-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-123")

	OK(c, gin.H{"balance": "100000.00"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-123", resp.RequestID)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperror.ErrInsufficientFunds())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LED_003", resp.ErrorCode)
	assert.Equal(t, "Insufficient funds", resp.Message)
	assert.Empty(t, resp.Remaining)
	assert.NotEmpty(t, resp.RequestID) // generated when not set
}

func TestError_DailyLimitIncludesRemaining(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperror.ErrDailyLimitExceeded(decimal.RequireFromString("4000")))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LED_004", resp.ErrorCode)
	assert.Equal(t, "4000.00", resp.Remaining)
}

func TestError_UnknownError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, fmt.Errorf("something broke"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_000", resp.ErrorCode)
	assert.Equal(t, "Internal server error", resp.Message)
}
